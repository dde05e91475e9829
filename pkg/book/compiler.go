package book

import (
	"fmt"
	"io"
	"maps"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/apibook/pkg/errors"
	"github.com/matzehuels/apibook/pkg/markdown"
	"github.com/matzehuels/apibook/pkg/reflection"
	"github.com/matzehuels/apibook/pkg/refs"
	"github.com/matzehuels/apibook/pkg/typefmt"
)

// Config configures a Compiler.
type Config struct {
	// BookDir is the absolute directory the book will be written to.
	// Reference targets of documented entities are anchored here.
	BookDir string

	// Examples are linked from the table of contents, in order.
	Examples []Example

	// References are extra name → target entries seeded after the built-ins.
	References map[string]string

	// Logger receives debug output and formatter reports. Nil discards.
	Logger *log.Logger
}

// Compiler turns a module node into a Book.
type Compiler struct {
	cfg       Config
	logger    *log.Logger
	formatter *typefmt.Formatter
}

// NewCompiler returns a compiler for cfg.
func NewCompiler(cfg Config) *Compiler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Compiler{
		cfg:       cfg,
		logger:    logger,
		formatter: typefmt.New(logger),
	}
}

// compilation is the state of a single Compile call.
type compilation struct {
	*Compiler
	registry *refs.Registry
	book     *Book
}

// Compile documents every top-level child of module and returns the
// finalized book. Any structural error aborts the whole compilation.
func (c *Compiler) Compile(module *reflection.Node) (*Book, error) {
	if module == nil {
		return nil, errors.New(errors.ErrCodeInternal, "compile called without a module")
	}

	registry := refs.New(c.registrySeed())

	run := &compilation{
		Compiler: c,
		registry: registry,
		book:     newBook(c.cfg.BookDir, registry),
	}
	if err := run.walk(module); err != nil {
		return nil, err
	}
	if err := run.finalize(); err != nil {
		return nil, err
	}
	return run.book, nil
}

// registrySeed returns the built-in references overlaid with the configured
// extra references.
func (c *Compiler) registrySeed() map[string]string {
	seed := refs.Builtins()
	maps.Copy(seed, c.cfg.References)
	return seed
}

func (c *compilation) walk(module *reflection.Node) error {
	for _, child := range module.Children {
		p, ok := Route(child.Kind, child.Name)
		if !ok {
			c.logger.Debug("skip entity", "name", child.Name, "kind", child.KindString)
			c.book.stats.Skipped++
			continue
		}
		if ownFile(child.Kind) {
			if err := errors.ValidateEntityName(child.Name); err != nil {
				return err
			}
		}

		doc := markdown.New(p, c.formatter)
		var err error
		switch child.Kind {
		case reflection.KindModule, reflection.KindEnumeration, reflection.KindClass, reflection.KindInterface:
			err = c.processClass(doc, child)
		case reflection.KindFunction:
			err = c.processFunction(doc, child)
		case reflection.KindTypeAlias:
			c.processAlias(doc, child)
		default:
			err = errors.New(errors.ErrCodeInternal, "no processor for routed kind %s", child.Kind)
		}
		if err != nil {
			return err
		}

		c.book.add(child.Kind.String(), doc)
		c.registry.Register(child.Name, c.abs(p), "")
		c.book.addSummary(child.Name, fmt.Sprintf("[%s](%s)", child.Name, p))
		c.book.stats.Entities++

		c.logger.Debug("documented entity", "name", child.Name, "kind", child.Kind, "path", p)
	}
	return nil
}

func (c *compilation) finalize() error {
	c.book.add(IndexGroup, c.summaryDocument())
	c.book.prepend(reflection.KindEnumeration.String(), c.enumerationsIndex())

	for _, doc := range c.book.Documents() {
		if err := doc.Finalize(c.registry, c.cfg.BookDir); err != nil {
			return err
		}
	}
	return nil
}

// abs anchors a book-relative path at the book directory.
func (c *compilation) abs(rel string) string {
	return filepath.Join(c.cfg.BookDir, filepath.FromSlash(rel))
}

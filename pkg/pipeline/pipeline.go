// Package pipeline runs an apibook build: load → compile → write.
//
// The same [Runner] backs the build, watch and serve commands, so all of them
// apply identical defaults, caching and hooks.
//
// # Stages
//
//  1. Load: read the reflection JSON and locate the documented module
//  2. Compile: discover examples and compile the module into book files
//  3. Write: copy the README and write every book file below the book dir
//
// In check mode the write stage compares instead of writing and fails with an
// OUT_OF_DATE error listing a unified diff per stale file.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "docs.json",
//	    BookDir: "docs",
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.BuildID, len(result.Files))
//
// Run individual stages:
//
//	in, err := runner.Load(ctx, opts)
//	files, stats, hit, err := runner.CompileWithCacheInfo(ctx, in, opts)
//	written, err := runner.Write(ctx, files, opts)
package pipeline

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/apibook/pkg/book"
	"github.com/matzehuels/apibook/pkg/cache"
	"github.com/matzehuels/apibook/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultInput is the reflection JSON read when no input is given.
	DefaultInput = "docs.json"

	// DefaultBookDir is the output directory of the book.
	DefaultBookDir = "docs"

	// DefaultModule is the sentinel module name the reflection tool gives
	// the documented declaration file.
	DefaultModule = `"index.d"`

	// DefaultReadme is copied to the book root as the Quick Start page.
	DefaultReadme = "README.md"

	// DefaultExamplesSubdir is the examples directory inside the book.
	DefaultExamplesSubdir = "examples"

	// TTLBook is how long a compiled book stays cached.
	TTLBook = 7 * 24 * time.Hour
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a build. Zero values take the defaults above.
type Options struct {
	Input        string            `json:"input"`
	BookDir      string            `json:"book_dir"`
	Module       string            `json:"module"`
	Readme       string            `json:"readme"`
	ExamplesDir  string            `json:"examples_dir,omitempty"` // default: <book_dir>/examples
	ExamplesGlob string            `json:"examples_glob,omitempty"`
	References   map[string]string `json:"references,omitempty"`

	// Check compares the generated book with the one on disk instead of
	// writing it.
	Check bool `json:"check,omitempty"`

	// Refresh ignores cached compile results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a build.
type Result struct {
	// BuildID identifies this run in logs and hook events.
	BuildID string

	// Files lists every book file in write order, README first.
	Files []FileResult

	// Stats contains counts and timings.
	Stats Stats

	// CacheInfo tracks what came from the cache.
	CacheInfo CacheInfo
}

// FileStatus describes what happened to one book file.
type FileStatus string

const (
	StatusWritten   FileStatus = "written"   // content changed and was written
	StatusUnchanged FileStatus = "unchanged" // cache record matched, write skipped
	StatusCurrent   FileStatus = "current"   // check mode: disk matches
	StatusOutdated  FileStatus = "outdated"  // check mode: disk differs or is missing
)

// FileResult is the outcome for one book file.
type FileResult struct {
	Path   string // book-relative, slash-separated
	Size   int
	Status FileStatus
}

// Stats contains build statistics.
type Stats struct {
	Nodes       int // reflection nodes decoded
	Entities    int // top-level entities documented
	Skipped     int // top-level children not documented
	Signatures  int
	Documents   int
	Examples    int
	Written     int
	Unchanged   int
	LoadTime    time.Duration
	CompileTime time.Duration
	WriteTime   time.Duration
}

// CacheInfo tracks cache use for a build.
type CacheInfo struct {
	CompileHit bool // book files came from the cache
	FileHits   int  // writes skipped because the file was up to date
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults, validates every field and makes
// paths absolute. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	for _, p := range []struct{ field, value string }{
		{"input", o.Input},
		{"book_dir", o.BookDir},
		{"readme", o.Readme},
		{"examples_dir", o.ExamplesDir},
	} {
		if err := errors.ValidatePath(p.field, p.value); err != nil {
			return err
		}
	}
	if err := errors.ValidateModuleName(o.Module); err != nil {
		return err
	}
	if err := errors.ValidateGlob(o.ExamplesGlob); err != nil {
		return err
	}
	for name, target := range o.References {
		if name == "" || target == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "reference %q needs a name and a target", name)
		}
	}

	for _, p := range []*string{&o.Input, &o.BookDir, &o.Readme, &o.ExamplesDir} {
		abs, err := filepath.Abs(*p)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", *p)
		}
		*p = abs
	}

	o.validated = true
	return nil
}

// SetDefaults fills empty fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Input == "" {
		o.Input = DefaultInput
	}
	if o.BookDir == "" {
		o.BookDir = DefaultBookDir
	}
	if o.Module == "" {
		o.Module = DefaultModule
	}
	if o.Readme == "" {
		o.Readme = DefaultReadme
	}
	if o.ExamplesDir == "" {
		o.ExamplesDir = filepath.Join(o.BookDir, DefaultExamplesSubdir)
	}
	if o.ExamplesGlob == "" {
		o.ExamplesGlob = book.DefaultExamplesGlob
	}
}

// BookKeyOpts returns the cache key options for a compile with examples.
func (o *Options) BookKeyOpts(examples []book.Example) cache.BookKeyOpts {
	ex := make([]string, len(examples))
	for i, e := range examples {
		ex[i] = e.Title + "\x00" + e.Path
	}
	return cache.BookKeyOpts{
		Module:     o.Module,
		BookDir:    o.BookDir,
		References: o.References,
		Examples:   ex,
	}
}

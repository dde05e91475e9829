package book

import (
	"path"
	"path/filepath"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/matzehuels/apibook/pkg/markdown"
	"github.com/matzehuels/apibook/pkg/refs"
)

// IndexGroup is the group holding the generated table of contents.
const IndexGroup = "Index"

// Book is the output of one compilation: documents grouped by the kind of
// entity that produced them, and the summary bullets of every entity.
type Book struct {
	// Dir is the absolute directory the book is written to.
	Dir string

	groups   *orderedmap.OrderedMap[string, []*markdown.Document]
	summary  *orderedmap.OrderedMap[string, []string]
	registry *refs.Registry
	stats    Stats
}

// Stats counts what a compilation produced.
type Stats struct {
	Entities   int // top-level entities documented
	Skipped    int // top-level children of kinds that are not documented
	Signatures int // call signatures rendered
	Documents  int // documents, including generated ones
}

// File is the final content of one output file.
type File struct {
	Path    string // slash-separated, relative to the book directory
	Content string
}

func newBook(dir string, registry *refs.Registry) *Book {
	return &Book{
		Dir:      dir,
		groups:   orderedmap.New[string, []*markdown.Document](),
		summary:  orderedmap.New[string, []string](),
		registry: registry,
	}
}

func (b *Book) add(group string, doc *markdown.Document) {
	docs, _ := b.groups.Get(group)
	b.groups.Set(group, append(docs, doc))
	b.stats.Documents++
}

func (b *Book) prepend(group string, doc *markdown.Document) {
	docs, _ := b.groups.Get(group)
	b.groups.Set(group, append([]*markdown.Document{doc}, docs...))
	b.stats.Documents++
}

func (b *Book) addSummary(name, bullet string) {
	bullets, _ := b.summary.Get(name)
	b.summary.Set(name, append(bullets, bullet))
}

// Groups returns the group names in the order they were first used.
func (b *Book) Groups() []string {
	names := make([]string, 0, b.groups.Len())
	for pair := b.groups.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Group returns the documents of one group, in production order.
func (b *Book) Group(name string) []*markdown.Document {
	docs, _ := b.groups.Get(name)
	return docs
}

// Documents returns every document, group by group.
func (b *Book) Documents() []*markdown.Document {
	var all []*markdown.Document
	for pair := b.groups.Oldest(); pair != nil; pair = pair.Next() {
		all = append(all, pair.Value...)
	}
	return all
}

// Summary returns the summary bullets recorded for an entity name.
func (b *Book) Summary(name string) []string {
	bullets, _ := b.summary.Get(name)
	return bullets
}

// Registry returns the reference registry the book was finalized against.
func (b *Book) Registry() *refs.Registry {
	return b.registry
}

// Stats returns the compilation counters.
func (b *Book) Stats() Stats {
	return b.stats
}

// Files joins documents that share an output path, in the order they were
// produced, and returns one File per path in order of first appearance.
func (b *Book) Files() []File {
	contents := orderedmap.New[string, []string]()
	for _, doc := range b.Documents() {
		p := path.Clean(doc.Path)
		parts, _ := contents.Get(p)
		contents.Set(p, append(parts, doc.String()))
	}

	files := make([]File, 0, contents.Len())
	for pair := contents.Oldest(); pair != nil; pair = pair.Next() {
		files = append(files, File{Path: pair.Key, Content: strings.Join(pair.Value, "\n")})
	}
	return files
}

// AbsPath returns the absolute output path of a book-relative path.
func (b *Book) AbsPath(rel string) string {
	return filepath.Join(b.Dir, filepath.FromSlash(rel))
}

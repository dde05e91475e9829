package cache

import (
	"path/filepath"
	"slices"
)

// Keyer builds cache keys.
type Keyer interface {
	// BookKey identifies a compiled book by its input hash and settings.
	BookKey(inputHash string, opts BookKeyOpts) string

	// FileKey identifies the write record of one book file.
	FileKey(bookDir, path string) string
}

// BookKeyOpts are the compile settings that change the output for a given
// reflection input.
type BookKeyOpts struct {
	Module     string            `json:"module"`
	BookDir    string            `json:"book_dir"`
	References map[string]string `json:"references,omitempty"`
	Examples   []string          `json:"examples,omitempty"` // "title\x00path" per example
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// BookKey returns "book:<hash>". References are hashed in name order so map
// iteration order never changes the key.
func (DefaultKeyer) BookKey(inputHash string, opts BookKeyOpts) string {
	names := make([]string, 0, len(opts.References))
	for name := range opts.References {
		names = append(names, name)
	}
	slices.Sort(names)
	refs := make([]string, 0, 2*len(names))
	for _, name := range names {
		refs = append(refs, name, opts.References[name])
	}
	return hashKey("book", inputHash, opts.Module, opts.BookDir, refs, opts.Examples)
}

// FileKey returns "file:<hash>" for a book-relative path.
func (DefaultKeyer) FileKey(bookDir, path string) string {
	return hashKey("file", filepath.Clean(bookDir), filepath.ToSlash(path))
}

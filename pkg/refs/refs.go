// Package refs holds the reference registry: the table that maps a symbol
// name to the place it is documented.
//
// A registry is seeded once with well-known names pointing at external
// documentation ([Builtins]) and then grows as the compiler documents
// entities. Markdown documents consult it when they are finalized; lookups
// never modify it.
package refs

import "regexp"

// Entry is a resolved reference target: a URL, or a file path for entities
// documented in the book.
type Entry struct {
	Target string
	Title  string
}

// Registry maps symbol names to entries. It is not safe for concurrent use;
// a compilation owns exactly one.
type Registry struct {
	entries map[string]Entry
}

// New returns a registry seeded with the given name → target table.
func New(seed map[string]string) *Registry {
	r := &Registry{entries: make(map[string]Entry, len(seed))}
	for name, target := range seed {
		r.Register(name, target, "")
	}
	return r
}

// Register records name → target. Empty names or targets are ignored;
// otherwise any previous entry for name is replaced.
func (r *Registry) Register(name, target, title string) {
	if name == "" || target == "" {
		return
	}
	r.entries[name] = Entry{Target: target, Title: title}
}

// Lookup returns the entry registered for name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	return len(r.entries)
}

var urlScheme = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)

// IsURL reports whether target starts with a URL scheme such as https://.
func IsURL(target string) bool {
	return urlScheme.MatchString(target)
}

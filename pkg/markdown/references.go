package markdown

import (
	"path/filepath"

	"github.com/matzehuels/apibook/pkg/errors"
	"github.com/matzehuels/apibook/pkg/refs"
)

// Link is a resolved reference definition.
type Link struct {
	Name   string
	Target string
	Title  string
}

// String renders the link as a reference-style definition.
func (l Link) String() string {
	if l.Title != "" {
		return "[" + l.Name + "]: " + l.Target + ` "` + l.Title + `"`
	}
	return "[" + l.Name + "]: " + l.Target
}

// Resolve looks up each distinct needed token, in order of first appearance.
// Tokens with no entry or an empty target are skipped. Targets that are not
// URLs are rewritten relative to the document's directory; absolute targets
// are used as-is and other targets are taken relative to bookDir.
func (d *Document) Resolve(registry *refs.Registry, bookDir string) ([]Link, error) {
	docDir := filepath.Dir(filepath.Join(bookDir, filepath.FromSlash(d.Path)))
	seen := make(map[string]bool, len(d.refsNeeded))

	var links []Link
	for _, name := range d.refsNeeded {
		if seen[name] {
			continue
		}
		seen[name] = true

		entry, ok := registry.Lookup(name)
		if !ok || entry.Target == "" {
			continue
		}

		target := entry.Target
		if !refs.IsURL(target) {
			abs := filepath.FromSlash(target)
			if !filepath.IsAbs(abs) {
				abs = filepath.Join(bookDir, abs)
			}
			rel, err := filepath.Rel(docDir, abs)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "relative target for %s in %s", name, d.Path)
			}
			target = filepath.ToSlash(rel)
		}
		links = append(links, Link{Name: name, Target: target, Title: entry.Title})
	}
	return links, nil
}

// Finalize resolves the document's references and appends a blank line
// followed by one definition per resolved link. It runs once per document;
// documents with EnableReferences unset are left untouched.
func (d *Document) Finalize(registry *refs.Registry, bookDir string) error {
	if d.finalized {
		return errors.New(errors.ErrCodeInternal, "document %s finalized twice", d.Path)
	}
	d.finalized = true

	if !d.EnableReferences {
		return nil
	}

	links, err := d.Resolve(registry, bookDir)
	if err != nil {
		return err
	}

	d.writeRaw("")
	for _, l := range links {
		d.writeRaw(l.String())
	}
	return nil
}

// Finalized reports whether Finalize has run.
func (d *Document) Finalized() bool {
	return d.finalized
}

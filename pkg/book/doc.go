// Package book compiles a reflection tree into a documentation book.
//
// # Layout
//
// [Route] decides where each entity is documented:
//
//	Class, Module                        api/<name>.md
//	Function                             api/Functions.md
//	Interface, Type alias, Enumeration   api/Interfaces.md
//
// Every entity gets its own [markdown.Document]; documents routed to the same
// path are concatenated in the order they were produced when the book is
// written. The compiler also generates SUMMARY.md (the table of contents) and
// an Enumerations.md index page.
//
// # Compiling
//
//	c := book.NewCompiler(book.Config{BookDir: "/abs/docs", Logger: logger})
//	b, err := c.Compile(module)
//	for _, f := range b.Files() {
//	    // write f.Content to filepath.Join(b.Dir, f.Path)
//	}
//
// Each call to [Compiler.Compile] starts from a fresh reference registry seeded
// with [refs.Builtins] and the configured extra references, so a compiler can
// be reused without one run leaking into the next. Entities registered while
// walking replace built-in entries with the same name.
//
// Structural problems (a function without call signatures, an entity name that
// cannot be used as a file name) abort the compilation. Types the formatter
// cannot render are logged and rendered empty.
package book

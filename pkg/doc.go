// Package pkg provides the core libraries for apibook.
//
// # Overview
//
// apibook compiles the reflection JSON emitted by a TypeScript documentation
// extractor into a cross-linked Markdown book. The pkg directory is organized
// into three areas:
//
//  1. Domain logic: [reflection], [typefmt], [refs], [markdown], [book]
//  2. Orchestration: [pipeline], [config], [watch], [preview]
//  3. Support: [cache], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The data flow through apibook:
//
//	docs.json
//	    ↓
//	[reflection] package (decode the node tree, locate the module)
//	    ↓
//	[book] package (route entities to files, render pages)
//	    ↓  uses [typefmt] for type expressions and [markdown] for pages
//	    ↓
//	[markdown] finalize (resolve [Name] tokens through [refs])
//	    ↓
//	[pipeline] package (README copy, cache, write or check)
//	    ↓
//	docs/README.md, docs/SUMMARY.md, docs/api/*.md, docs/Enumerations.md
//
// # Quick Start
//
// Compile a module into book files:
//
//	import (
//	    "github.com/matzehuels/apibook/pkg/book"
//	    "github.com/matzehuels/apibook/pkg/reflection"
//	)
//
//	root, _ := reflection.ReadJSON(f)
//	module, _ := root.Module(`"index.d"`)
//	b, _ := book.NewCompiler(book.Config{BookDir: "docs"}).Compile(module)
//	for _, file := range b.Files() {
//	    fmt.Println(file.Path)
//	}
//
// Or run the whole build with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Input: "docs.json"})
//
// # Main Packages
//
// [reflection] - The reflection node tree, the closed set of entity kinds and
// JSON decoding.
//
// [typefmt] - Renders type expressions as Markdown with [Name] reference
// tokens: unions, arrays, generics, function types and object literals.
//
// [refs] - The reference registry mapping names to link targets, seeded with
// built-in targets for common runtime types.
//
// [markdown] - Line-oriented document builder that collects reference tokens
// and appends resolved link definitions when finalized.
//
// [book] - Routes each top-level entity to a book file, renders its page and
// builds the summary and Enumerations index.
//
// [pipeline] - load → compile → write, with check mode, caching and hooks.
//
// [config] - apibook.toml loading and merging with command-line flags.
//
// [watch] - Debounced file watching for rebuilds.
//
// [preview] - HTML preview server for a built book.
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/book/...       # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [reflection]: https://pkg.go.dev/github.com/matzehuels/apibook/pkg/reflection
// [typefmt]: https://pkg.go.dev/github.com/matzehuels/apibook/pkg/typefmt
// [refs]: https://pkg.go.dev/github.com/matzehuels/apibook/pkg/refs
// [markdown]: https://pkg.go.dev/github.com/matzehuels/apibook/pkg/markdown
// [book]: https://pkg.go.dev/github.com/matzehuels/apibook/pkg/book
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/apibook/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/apibook/pkg/config
// [watch]: https://pkg.go.dev/github.com/matzehuels/apibook/pkg/watch
// [preview]: https://pkg.go.dev/github.com/matzehuels/apibook/pkg/preview
// [cache]: https://pkg.go.dev/github.com/matzehuels/apibook/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/apibook/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/apibook/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/apibook/pkg/buildinfo
package pkg

// Package markdown builds the Markdown documents of the book.
//
// # Documents
//
// A [Document] is an append-only list of lines destined for one book path.
// Structural writers (headings, bullets, parameter lines, tables, comments)
// append text; several documents may target the same path and are
// concatenated when the book is written.
//
// # References
//
// Rendered type names appear as reference tokens in bracket form, [Element].
// Resolution runs in two phases:
//
//  1. While writing, every token found in text written with [Document.WriteLine]
//     (and the writers built on it) is appended to the list returned by
//     [Document.ReferencesNeeded].
//  2. [Document.Finalize] looks each distinct token up in a [refs.Registry] and
//     appends reference-style link definitions:
//
//     [Element]: https://developer.mozilla.org/en-US/docs/Web/API/element
//     [Browser]: Browser.md
//
// Tokens without a registry entry are dropped, so a document may mention
// entities that were never documented. Documents with EnableReferences unset
// (the generated table of contents) skip the second phase.
package markdown

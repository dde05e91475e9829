// Package reflection decodes the reflection tree that describes a library's
// public API.
//
// # Overview
//
// The reflection tree is produced by an external static-analysis tool and
// stored as JSON. Every node has a name and a kindString; depending on the
// kind it carries children, call signatures, parameters, a type expression,
// flags, a comment, or a default value:
//
//	{
//	  "name": "visit",
//	  "kindString": "Function",
//	  "signatures": [{
//	    "name": "visit",
//	    "kindString": "Call signature",
//	    "parameters": [{
//	      "name": "url",
//	      "kindString": "Parameter",
//	      "flags": {},
//	      "type": {"type": "intrinsic", "name": "string"}
//	    }],
//	    "type": {"type": "reference", "name": "Promise",
//	             "typeArguments": [{"type": "intrinsic", "name": "void"}]}
//	  }]
//	}
//
// # Kinds
//
// kindString values decode to the closed [Kind] enum. Unrecognized strings
// become [KindUnknown]; consumers switch over Kind with an explicit default.
//
// # Type Expressions
//
// The "type" field decodes to a [TypeExpr], a closed set of variants:
// [Intrinsic], [Reference], [StringLiteral], [Array], [Union],
// [ReflectionType], plus [Unknown] for unrecognized tags so that a single odd
// type does not abort decoding.
//
// # Import
//
// Use [ImportJSON] to read a file or [ReadJSON] for any io.Reader, then
// [Node.Module] to find the documented module:
//
//	root, err := reflection.ImportJSON("docs.json")
//	if err != nil {
//	    return err
//	}
//	mod, err := root.Module(`"index.d"`)
package reflection

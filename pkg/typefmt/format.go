// Package typefmt renders reflection type expressions as display strings.
//
// Rendering is pure: the same expression always yields the same string and
// the expression is never modified. Named references render in bracket form
// ([Name]) so that Markdown documents can pick them up as reference tokens and
// link them at finalization.
//
//	f := typefmt.New(logger)
//	f.Format(reflection.NewArray(reflection.NewIntrinsic("string")))  // "string[]"
//	f.Format(reflection.NewReference("Promise", reflection.NewIntrinsic("void")))
//	// "[Promise]<void>"
package typefmt

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/matzehuels/apibook/pkg/reflection"
)

// promiseName is the reference name rendered as a deferred value wrapper.
const promiseName = "Promise"

// Formatter renders type expressions. Expressions it cannot render are
// reported on its logger and render as the empty string.
type Formatter struct {
	logger *log.Logger
}

// New returns a Formatter reporting to logger. A nil logger discards reports.
func New(logger *log.Logger) *Formatter {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Formatter{logger: logger}
}

// Format renders t.
func (f *Formatter) Format(t reflection.TypeExpr) string {
	switch t := t.(type) {
	case *reflection.Intrinsic:
		return t.Name
	case *reflection.StringLiteral:
		return t.Value
	case *reflection.Array:
		return f.Format(t.ElementType) + "[]"
	case *reflection.Union:
		return f.join(t.Types)
	case *reflection.ReflectionType:
		return f.formatDeclaration(t.Declaration)
	case *reflection.Reference:
		if t.Name == promiseName {
			return "[" + promiseName + "]<" + f.join(t.TypeArguments) + ">"
		}
		return "[" + t.Name + "]"
	case *reflection.Unknown:
		f.logger.Error("unknown type expression", "type", t.Tag)
		return ""
	case nil:
		f.logger.Error("missing type expression")
		return ""
	default:
		f.logger.Error("unsupported type expression", "type", t.TypeKind())
		return ""
	}
}

// join renders types separated by "|", preserving declared order.
func (f *Formatter) join(types []reflection.TypeExpr) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = f.Format(t)
	}
	return strings.Join(parts, "|")
}

// formatDeclaration renders an inline structural type.
func (f *Formatter) formatDeclaration(decl *reflection.Node) string {
	if decl == nil {
		f.logger.Error("reflection type without declaration")
		return ""
	}

	switch {
	case len(decl.Children) > 0:
		members := orderedmap.New[string, string]()
		for _, child := range decl.Children {
			members.Set(child.Name, f.Format(child.Type))
		}
		return literal(members)
	case len(decl.Signatures) > 0:
		return f.Format(decl.Signatures[0].Type)
	default:
		f.logger.Error("type literal has neither children nor signatures", "name", decl.Name, "kind", decl.KindString)
		return ""
	}
}

// literal renders members as a compact object literal with quoted keys and
// values, e.g. {"url":"string","opts":"[Options]"}.
func literal(members *orderedmap.OrderedMap[string, string]) string {
	var b strings.Builder
	b.WriteByte('{')
	for pair := members.Oldest(); pair != nil; pair = pair.Next() {
		if b.Len() > 1 {
			b.WriteByte(',')
		}
		b.WriteString(quote(pair.Key))
		b.WriteByte(':')
		b.WriteString(quote(pair.Value))
	}
	b.WriteByte('}')
	return b.String()
}

// quote returns s as a JSON string without HTML escaping, so that generic
// markers like [Promise]<void> stay readable.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

package book

import (
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/matzehuels/apibook/pkg/errors"
	"github.com/matzehuels/apibook/pkg/markdown"
	"github.com/matzehuels/apibook/pkg/reflection"
)

// processClass documents classes, interfaces, modules and enumerations:
// methods, then properties, then enumeration members, framed by the entity
// comment at the top and again at the bottom.
func (c *compilation) processClass(doc *markdown.Document, n *reflection.Node) error {
	doc.WriteSection(code(n.Name))
	doc.WriteComment(n.Comment)

	for _, m := range n.ChildrenOfKind(reflection.KindMethod) {
		if err := c.processMethod(doc, n.Name, m); err != nil {
			return err
		}
	}

	for _, p := range n.ChildrenOfKind(reflection.KindProperty) {
		doc.WriteParameterLine(p.Name, p.Type, p.Comment.String(), p.Flags.IsOptional)
	}

	if members := n.ChildrenOfKind(reflection.KindEnumerationMember); len(members) > 0 {
		rows := [][]string{{"Member", "Default Value", "Comment"}}
		for _, m := range members {
			rows = append(rows, []string{code(m.Name), m.DefaultValue, m.Comment.String()})
		}
		doc.WriteTable(rows)
	}

	doc.WriteLine("")
	doc.WriteComment(n.Comment)
	return nil
}

func (c *compilation) processMethod(doc *markdown.Document, parent string, m *reflection.Node) error {
	if len(m.Signatures) == 0 {
		return errors.New(errors.ErrCodeMalformedNode, "method %s.%s has no call signatures", parent, m.Name)
	}
	for _, sig := range m.Signatures {
		c.writeCallSignature(doc, sig, parent)
	}
	return nil
}

// processFunction registers every signature name against the shared
// functions file, then renders the signatures.
func (c *compilation) processFunction(doc *markdown.Document, n *reflection.Node) error {
	if len(n.Signatures) == 0 {
		return errors.New(errors.ErrCodeMalformedNode, "function %s has no call signatures", n.Name)
	}
	target := c.abs(FunctionsPath)
	for _, sig := range n.Signatures {
		c.registry.Register(sig.Name, target, "")
		c.writeCallSignature(doc, sig, "")
	}
	return nil
}

// processAlias only writes a heading; alias bodies are not rendered.
func (c *compilation) processAlias(doc *markdown.Document, n *reflection.Node) {
	doc.WriteHeading(code(n.Name), 1)
}

// writeCallSignature renders one signature as a heading such as
// `browser.visit(url[, options])` followed by a line per parameter, the
// return type and the signature comment. A non-empty owner prefixes the name
// in lower camel case.
func (c *compilation) writeCallSignature(doc *markdown.Document, sig *reflection.Node, owner string) {
	doc.WriteHeading(code(SignatureLabel(sig, owner)), 4)

	for _, p := range sig.Parameters {
		if p.Name == "" || p.Type == nil {
			continue
		}
		doc.WriteParameterLine(p.Name, p.Type, p.Comment.String(), p.Flags.IsOptional)
	}
	if sig.Type != nil {
		doc.WriteParameterLine("returns:", sig.Type, "", false)
	}

	doc.WriteLine("")
	doc.WriteComment(sig.Comment)
	c.book.stats.Signatures++
}

// SignatureLabel returns name(required[, optional]) for a call signature.
func SignatureLabel(sig *reflection.Node, owner string) string {
	name := sig.Name
	if owner != "" {
		name = strcase.ToLowerCamel(owner) + "." + name
	}

	var required, optional []string
	for _, p := range sig.Parameters {
		if p.Flags.IsOptional {
			optional = append(optional, p.Name)
		} else {
			required = append(required, p.Name)
		}
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteString("(")
	b.WriteString(strings.Join(required, ", "))
	if len(optional) > 0 {
		b.WriteString("[, ")
		b.WriteString(strings.Join(optional, ", "))
		b.WriteString("]")
	}
	b.WriteString(")")
	return b.String()
}

func code(s string) string {
	return "`" + s + "`"
}

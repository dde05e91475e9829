package reflection

import (
	"strings"

	"github.com/matzehuels/apibook/pkg/errors"
)

// Comment is the documentation attached to a node.
type Comment struct {
	ShortText string `json:"shortText,omitempty"`
	Text      string `json:"text,omitempty"`
}

// String joins the non-empty short and long text with a blank line.
// A nil comment renders as the empty string.
func (c *Comment) String() string {
	if c == nil {
		return ""
	}
	var parts []string
	if c.ShortText != "" {
		parts = append(parts, c.ShortText)
	}
	if c.Text != "" {
		parts = append(parts, c.Text)
	}
	return strings.Join(parts, "\n\n")
}

// Flags holds the node flags apibook cares about.
type Flags struct {
	IsOptional bool `json:"isOptional,omitempty"`
	IsExported bool `json:"isExported,omitempty"`
	IsStatic   bool `json:"isStatic,omitempty"`
}

// Node is one entry of the reflection tree.
//
// Which optional fields carry meaning depends on Kind: functions and methods
// have Signatures, call signatures have Parameters and a return Type,
// properties, parameters and variables have a Type, enumeration members may
// have a DefaultValue. Absent fields decode to their zero values.
type Node struct {
	ID           int
	Name         string
	Kind         Kind
	KindString   string
	Comment      *Comment
	Children     []*Node
	Signatures   []*Node
	Parameters   []*Node
	Type         TypeExpr
	Flags        Flags
	DefaultValue string
}

// ChildrenOfKind returns the direct children of n with the given kind,
// in declaration order.
func (n *Node) ChildrenOfKind(k Kind) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == k {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the first direct child named name, or nil.
func (n *Node) Find(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Module returns the top-level module named name. A reflection tree without
// it cannot be documented, so its absence is a MISSING_MODULE error.
func (n *Node) Module(name string) (*Node, error) {
	m := n.Find(name)
	if m == nil {
		return nil, errors.New(errors.ErrCodeMissingModule, "module %s not found in reflection tree", name)
	}
	return m, nil
}

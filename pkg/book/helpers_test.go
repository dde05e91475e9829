package book

import (
	"strings"

	"github.com/matzehuels/apibook/pkg/reflection"
)

const testBookDir = "/book"

func node(kind reflection.Kind, name string, children ...*reflection.Node) *reflection.Node {
	return &reflection.Node{Name: name, Kind: kind, KindString: kind.String(), Children: children}
}

func module(children ...*reflection.Node) *reflection.Node {
	return node(reflection.KindModule, `"index.d"`, children...)
}

func param(name string, t reflection.TypeExpr, optional bool) *reflection.Node {
	p := &reflection.Node{Name: name, Kind: reflection.KindParameter, Type: t}
	p.Flags.IsOptional = optional
	return p
}

func signature(name string, ret reflection.TypeExpr, params ...*reflection.Node) *reflection.Node {
	return &reflection.Node{Name: name, Kind: reflection.KindCallSignature, Parameters: params, Type: ret}
}

func function(name string, sigs ...*reflection.Node) *reflection.Node {
	n := node(reflection.KindFunction, name)
	n.Signatures = sigs
	return n
}

func method(name string, sigs ...*reflection.Node) *reflection.Node {
	n := node(reflection.KindMethod, name)
	n.Signatures = sigs
	return n
}

func property(name string, t reflection.TypeExpr, optional bool, comment string) *reflection.Node {
	n := node(reflection.KindProperty, name)
	n.Type = t
	n.Flags.IsOptional = optional
	if comment != "" {
		n.Comment = &reflection.Comment{ShortText: comment}
	}
	return n
}

func member(name, def string) *reflection.Node {
	n := node(reflection.KindEnumerationMember, name)
	n.DefaultValue = def
	return n
}

func fileContent(b *Book, p string) (string, bool) {
	for _, f := range b.Files() {
		if f.Path == p {
			return f.Content, true
		}
	}
	return "", false
}

func lines(s string) []string {
	return strings.Split(s, "\n")
}

package reflection

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// rawNode mirrors the reflection JSON of a node. The type field is decoded
// separately because its shape depends on its tag.
type rawNode struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	KindString   string          `json:"kindString"`
	Comment      *Comment        `json:"comment"`
	Children     []*Node         `json:"children"`
	Signatures   []*Node         `json:"signatures"`
	Parameters   []*Node         `json:"parameters"`
	Type         json.RawMessage `json:"type"`
	Flags        Flags           `json:"flags"`
	DefaultValue string          `json:"defaultValue"`
}

// UnmarshalJSON decodes a reflection node and its type expression.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t, err := decodeType(raw.Type)
	if err != nil {
		return fmt.Errorf("%s type: %w", raw.Name, err)
	}
	*n = Node{
		ID:           raw.ID,
		Name:         raw.Name,
		Kind:         ParseKind(raw.KindString),
		KindString:   raw.KindString,
		Comment:      raw.Comment,
		Children:     raw.Children,
		Signatures:   raw.Signatures,
		Parameters:   raw.Parameters,
		Type:         t,
		Flags:        raw.Flags,
		DefaultValue: raw.DefaultValue,
	}
	return nil
}

// rawType is the union of every field a type variant may carry.
type rawType struct {
	Type          string            `json:"type"`
	Name          string            `json:"name"`
	Value         string            `json:"value"`
	TypeArguments []json.RawMessage `json:"typeArguments"`
	ElementType   json.RawMessage   `json:"elementType"`
	Types         []json.RawMessage `json:"types"`
	Declaration   *Node             `json:"declaration"`
}

// decodeType decodes a type expression. An absent or null type yields nil.
func decodeType(data json.RawMessage) (TypeExpr, error) {
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil
	}

	var raw rawType
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	switch TypeKind(raw.Type) {
	case TypeIntrinsic:
		return &Intrinsic{Name: raw.Name}, nil
	case TypeStringLiteral:
		return &StringLiteral{Value: raw.Value}, nil
	case TypeReference:
		args, err := decodeTypes(raw.TypeArguments)
		if err != nil {
			return nil, fmt.Errorf("reference %s: %w", raw.Name, err)
		}
		return &Reference{Name: raw.Name, TypeArguments: args}, nil
	case TypeArray:
		elem, err := decodeType(raw.ElementType)
		if err != nil {
			return nil, fmt.Errorf("array element: %w", err)
		}
		return &Array{ElementType: elem}, nil
	case TypeUnion:
		types, err := decodeTypes(raw.Types)
		if err != nil {
			return nil, fmt.Errorf("union: %w", err)
		}
		return &Union{Types: types}, nil
	case TypeReflection:
		return &ReflectionType{Declaration: raw.Declaration}, nil
	default:
		return &Unknown{Tag: raw.Type}, nil
	}
}

func decodeTypes(list []json.RawMessage) ([]TypeExpr, error) {
	if len(list) == 0 {
		return nil, nil
	}
	out := make([]TypeExpr, 0, len(list))
	for i, data := range list {
		t, err := decodeType(data)
		if err != nil {
			return nil, fmt.Errorf("#%d: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

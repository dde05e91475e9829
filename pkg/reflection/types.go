package reflection

// TypeKind is the variant tag of a [TypeExpr].
type TypeKind string

// Type tags as they appear in the reflection JSON "type" field.
const (
	TypeIntrinsic     TypeKind = "intrinsic"
	TypeReference     TypeKind = "reference"
	TypeStringLiteral TypeKind = "stringLiteral"
	TypeArray         TypeKind = "array"
	TypeUnion         TypeKind = "union"
	TypeReflection    TypeKind = "reflection"
)

// TypeExpr describes the type of a documented value.
//
// The set of implementations is closed: *Intrinsic, *Reference,
// *StringLiteral, *Array, *Union, *ReflectionType, and *Unknown for tags the
// decoder does not recognize.
type TypeExpr interface {
	// TypeKind returns the variant tag.
	TypeKind() TypeKind
	typeExpr()
}

type exprBase struct{}

func (exprBase) typeExpr() {}

// Intrinsic is a built-in type such as string or void.
type Intrinsic struct {
	exprBase
	Name string
}

// TypeKind returns TypeIntrinsic.
func (*Intrinsic) TypeKind() TypeKind { return TypeIntrinsic }

// Reference names another type, optionally with type arguments.
// A reference named "Promise" wraps a deferred value of its type arguments.
type Reference struct {
	exprBase
	Name          string
	TypeArguments []TypeExpr
}

// TypeKind returns TypeReference.
func (*Reference) TypeKind() TypeKind { return TypeReference }

// StringLiteral is a literal string type.
type StringLiteral struct {
	exprBase
	Value string
}

// TypeKind returns TypeStringLiteral.
func (*StringLiteral) TypeKind() TypeKind { return TypeStringLiteral }

// Array is a list of ElementType.
type Array struct {
	exprBase
	ElementType TypeExpr
}

// TypeKind returns TypeArray.
func (*Array) TypeKind() TypeKind { return TypeArray }

// Union is one of Types, in declared order.
type Union struct {
	exprBase
	Types []TypeExpr
}

// TypeKind returns TypeUnion.
func (*Union) TypeKind() TypeKind { return TypeUnion }

// ReflectionType is an inline structural type. Declaration is a Type literal
// node with either Variable children or Call signature signatures.
type ReflectionType struct {
	exprBase
	Declaration *Node
}

// TypeKind returns TypeReflection.
func (*ReflectionType) TypeKind() TypeKind { return TypeReflection }

// Unknown is a type whose tag the decoder does not recognize.
type Unknown struct {
	exprBase
	Tag string
}

// TypeKind returns the raw tag.
func (u *Unknown) TypeKind() TypeKind { return TypeKind(u.Tag) }

// Constructors used by tests and fixtures.

// NewIntrinsic returns an intrinsic type.
func NewIntrinsic(name string) *Intrinsic { return &Intrinsic{Name: name} }

// NewReference returns a reference to name with optional type arguments.
func NewReference(name string, args ...TypeExpr) *Reference {
	return &Reference{Name: name, TypeArguments: args}
}

// NewStringLiteral returns a string literal type.
func NewStringLiteral(value string) *StringLiteral { return &StringLiteral{Value: value} }

// NewArray returns an array of elem.
func NewArray(elem TypeExpr) *Array { return &Array{ElementType: elem} }

// NewUnion returns a union of types.
func NewUnion(types ...TypeExpr) *Union { return &Union{Types: types} }

// NewReflection returns an inline structural type.
func NewReflection(decl *Node) *ReflectionType { return &ReflectionType{Declaration: decl} }

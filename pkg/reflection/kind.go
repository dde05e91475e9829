package reflection

// Kind identifies what a reflection node documents. The set is closed: any
// kindString the reflection tool emits that is not listed here decodes to
// KindUnknown, and the raw string stays available on [Node.KindString].
type Kind int

const (
	KindUnknown Kind = iota
	KindModule
	KindClass
	KindInterface
	KindFunction
	KindEnumeration
	KindEnumerationMember
	KindTypeAlias
	KindMethod
	KindProperty
	KindCallSignature
	KindTypeLiteral
	KindVariable
	KindParameter
)

var kindNames = [...]string{
	KindUnknown:           "Unknown",
	KindModule:            "Module",
	KindClass:             "Class",
	KindInterface:         "Interface",
	KindFunction:          "Function",
	KindEnumeration:       "Enumeration",
	KindEnumerationMember: "Enumeration member",
	KindTypeAlias:         "Type alias",
	KindMethod:            "Method",
	KindProperty:          "Property",
	KindCallSignature:     "Call signature",
	KindTypeLiteral:       "Type literal",
	KindVariable:          "Variable",
	KindParameter:         "Parameter",
}

var kindFromString = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		if Kind(k) != KindUnknown {
			m[name] = Kind(k)
		}
	}
	return m
}()

// ParseKind maps a reflection kindString to a Kind.
// Unrecognized strings return KindUnknown.
func ParseKind(s string) Kind {
	return kindFromString[s]
}

// String returns the reflection kindString for k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

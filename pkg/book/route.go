package book

import (
	"path"

	"github.com/matzehuels/apibook/pkg/reflection"
)

// Book-relative paths of the shared and generated documents.
const (
	APIDir           = "api"
	FunctionsPath    = "api/Functions.md"
	InterfacesPath   = "api/Interfaces.md"
	SummaryPath      = "SUMMARY.md"
	EnumerationsPath = "Enumerations.md"
	ReadmePath       = "README.md"
)

// Route returns the slash-separated, book-relative path documenting an entity
// of kind k named name. Kinds that are not documented at top level report
// false.
func Route(k reflection.Kind, name string) (string, bool) {
	switch k {
	case reflection.KindClass, reflection.KindModule:
		return path.Join(APIDir, name+".md"), true
	case reflection.KindFunction:
		return FunctionsPath, true
	case reflection.KindInterface, reflection.KindTypeAlias, reflection.KindEnumeration:
		return InterfacesPath, true
	default:
		return "", false
	}
}

// ownFile reports whether entities of kind k get a file named after them.
func ownFile(k reflection.Kind) bool {
	return k == reflection.KindClass || k == reflection.KindModule
}

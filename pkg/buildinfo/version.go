// Package buildinfo reports which apibook build is running.
//
// Release builds stamp the values through ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/apibook/pkg/buildinfo.Version=$(git describe --tags) \
//	    -X github.com/matzehuels/apibook/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/apibook/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/apibook
//
// Version also scopes the compile cache: books cached by one release are
// never served to another. Unstamped builds report "dev" and share one
// scope, so run "apibook cache clear" after changing the compiler locally.
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// IsRelease reports whether the binary was stamped with a version.
func IsRelease() bool {
	return Version != "dev" && Version != ""
}

// CacheScope is the prefix applied to compile cache keys.
func CacheScope() string {
	return Version + ":"
}

// String returns the build information as "key: value" lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

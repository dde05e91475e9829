package errors

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gobwas/glob"
)

// ValidateEntityName validates a documented entity name before it is turned
// into a file name (api/<name>.md).
//
// The rules are conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateEntityName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "entity name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidName, "entity name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "entity name %q contains control characters", name)
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "entity name %q contains invalid characters: %q", name, pattern)
		}
	}

	return nil
}

// ValidatePath validates a configured file or directory path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(field, path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "%s cannot be empty", field)
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "%s too long (max %d characters)", field, maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "%s contains invalid characters", field)
		}
	}

	return nil
}

// ValidateGlob checks that pattern compiles as a slash-separated glob.
func ValidateGlob(pattern string) error {
	if pattern == "" {
		return New(ErrCodeInvalidConfig, "examples glob cannot be empty")
	}
	if _, err := glob.Compile(pattern, '/'); err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "invalid examples glob %q", pattern)
	}
	return nil
}

// moduleNameRegex matches sentinel module names produced by the reflection
// tool, optionally wrapped in double quotes ("index.d").
var moduleNameRegex = regexp.MustCompile(`^"?[A-Za-z0-9_$@][A-Za-z0-9_$./@-]*"?$`)

// ValidateModuleName validates the sentinel module name used to locate the
// documented module in the reflection tree.
func ValidateModuleName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "module name cannot be empty")
	}
	if !moduleNameRegex.MatchString(name) {
		return New(ErrCodeInvalidConfig, "invalid module name: %q", name)
	}
	return nil
}

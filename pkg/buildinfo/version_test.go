package buildinfo

import (
	"strings"
	"testing"
)

func stamp(t *testing.T, version string) {
	t.Helper()
	prev := Version
	Version = version
	t.Cleanup(func() { Version = prev })
}

func TestIsRelease(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"dev", false},
		{"", false},
		{"v1.2.3", true},
	}
	for _, tt := range tests {
		stamp(t, tt.version)
		if got := IsRelease(); got != tt.want {
			t.Errorf("IsRelease() with Version=%q = %v, want %v", tt.version, got, tt.want)
		}
	}
}

func TestCacheScope(t *testing.T) {
	stamp(t, "v1.2.3")
	if got := CacheScope(); got != "v1.2.3:" {
		t.Errorf("CacheScope() = %q, want %q", got, "v1.2.3:")
	}
}

func TestTemplate(t *testing.T) {
	stamp(t, "v1.2.3")
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version v1.2.3\n") {
		t.Errorf("Template() = %q", got)
	}
	if !strings.Contains(String(), "version: v1.2.3") {
		t.Errorf("String() = %q", String())
	}
}

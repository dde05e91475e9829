package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/apibook/pkg/errors"
	"github.com/matzehuels/apibook/pkg/pipeline"
)

const sample = `
input = "api/docs.json"
book_dir = "book"
module = '"index.d"'
examples_glob = "*.md"

[references]
Cookie = "https://example.com/cookie"
`

func TestParse(t *testing.T) {
	f, err := Parse("/proj/apibook.toml", []byte(sample))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"Input", f.Input, "api/docs.json"},
		{"BookDir", f.BookDir, "book"},
		{"Module", f.Module, `"index.d"`},
		{"ExamplesGlob", f.ExamplesGlob, "*.md"},
		{"Cookie", f.References["Cookie"], "https://example.com/cookie"},
		{"Path", f.Path, "/proj/apibook.toml"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "input = "},
		{"unknown key", "inptu = \"docs.json\""},
		{"unknown table", "[refs]\nA = \"b\""},
		{"wrong type", "book_dir = 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("apibook.toml", []byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse(%q) error = %v, want %s", tt.data, err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoadOptional(t *testing.T) {
	dir := t.TempDir()

	f, found, err := LoadOptional(filepath.Join(dir, DefaultFile))
	if err != nil || found || f != nil {
		t.Errorf("LoadOptional(missing) = %v, %v, %v, want nil, false, nil", f, found, err)
	}

	path := filepath.Join(dir, DefaultFile)
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	f, found, err = LoadOptional(path)
	if err != nil || !found {
		t.Fatalf("LoadOptional(existing) = %v, %v, want found", found, err)
	}
	if f.BookDir != "book" {
		t.Errorf("BookDir = %q, want %q", f.BookDir, "book")
	}

	if _, err := Load(filepath.Join(dir, "other.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestApply(t *testing.T) {
	f, err := Parse("/proj/apibook.toml", []byte(sample))
	if err != nil {
		t.Fatal(err)
	}

	opts := pipeline.Options{
		BookDir:    "/elsewhere",
		References: map[string]string{"Cookie": "https://override", "Extra": "https://extra"},
	}
	f.Apply(&opts)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"Input anchored at config dir", opts.Input, filepath.Join("/proj", "api/docs.json")},
		{"BookDir flag wins", opts.BookDir, "/elsewhere"},
		{"Module", opts.Module, `"index.d"`},
		{"ExamplesGlob", opts.ExamplesGlob, "*.md"},
		{"Readme untouched", opts.Readme, ""},
		{"flag reference wins", opts.References["Cookie"], "https://override"},
		{"flag reference kept", opts.References["Extra"], "https://extra"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

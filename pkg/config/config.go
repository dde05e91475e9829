// Package config loads apibook.toml.
//
// A project file looks like:
//
//	input = "docs.json"
//	book_dir = "docs"
//	module = '"index.d"'
//	readme = "README.md"
//	examples_dir = "docs/examples"
//	examples_glob = "**.md"
//
//	[references]
//	Cookie = "https://developer.mozilla.org/en-US/docs/Web/HTTP/Cookies"
//
// Relative paths are resolved against the directory holding the file.
// Unknown keys are rejected so that typos do not silently fall back to
// defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/apibook/pkg/errors"
	"github.com/matzehuels/apibook/pkg/pipeline"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "apibook.toml"

// File is the decoded content of an apibook.toml.
type File struct {
	Input        string            `toml:"input"`
	BookDir      string            `toml:"book_dir"`
	Module       string            `toml:"module"`
	Readme       string            `toml:"readme"`
	ExamplesDir  string            `toml:"examples_dir"`
	ExamplesGlob string            `toml:"examples_glob"`
	References   map[string]string `toml:"references"`

	// Path is the file the values were read from.
	Path string `toml:"-"`
}

// Load reads the config file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(path, data)
}

// LoadOptional reads path if it exists. found is false for a missing file.
func LoadOptional(path string) (f *File, found bool, err error) {
	f, err = Load(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return f, true, nil
}

// Parse decodes config data read from path.
func Parse(path string, data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	f.Path = path
	return &f, nil
}

// Apply copies values into opts for every field opts leaves empty, so that
// command-line flags win over the file. Relative paths are anchored at the
// config file's directory.
func (f *File) Apply(opts *pipeline.Options) {
	base := filepath.Dir(f.Path)
	setPath := func(dst *string, v string) {
		if *dst != "" || v == "" {
			return
		}
		if !filepath.IsAbs(v) {
			v = filepath.Join(base, v)
		}
		*dst = v
	}
	setPath(&opts.Input, f.Input)
	setPath(&opts.BookDir, f.BookDir)
	setPath(&opts.Readme, f.Readme)
	setPath(&opts.ExamplesDir, f.ExamplesDir)

	if opts.Module == "" {
		opts.Module = f.Module
	}
	if opts.ExamplesGlob == "" {
		opts.ExamplesGlob = f.ExamplesGlob
	}

	if len(f.References) > 0 {
		merged := make(map[string]string, len(f.References)+len(opts.References))
		for k, v := range f.References {
			merged[k] = v
		}
		for k, v := range opts.References {
			merged[k] = v
		}
		opts.References = merged
	}
}

// WatchPaths returns the files a rebuild depends on besides the input and
// examples: the config file itself.
func (f *File) WatchPaths() []string {
	if f == nil || f.Path == "" {
		return nil
	}
	return []string{f.Path}
}

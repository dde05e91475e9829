package book

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/apibook/pkg/errors"
)

// DefaultExamplesGlob matches every Markdown file below the examples
// directory. "**" crosses directory boundaries, "*" does not.
const DefaultExamplesGlob = "**.md"

// Example is an example page linked from the table of contents.
type Example struct {
	Title string
	Path  string // slash-separated, relative to the book directory
}

type frontMatter struct {
	Title string `yaml:"title"`
}

var frontMatterDelim = []byte("---")

// DiscoverExamples walks dir in lexical order and returns the files whose
// dir-relative slash path matches pattern and whose front-matter declares a
// title. Files without a title are skipped; files with unparsable
// front-matter are skipped with a warning. A missing dir yields no examples.
func DiscoverExamples(dir, pattern, bookDir string, logger *log.Logger) ([]Example, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if pattern == "" {
		pattern = DefaultExamplesGlob
	}
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid examples glob %q", pattern)
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		logger.Debug("no examples directory", "dir", dir)
		return nil, nil
	}

	var examples []Example
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		if !g.Match(filepath.ToSlash(rel)) {
			return nil
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		fm, ok, err := parseFrontMatter(data)
		if err != nil {
			logger.Warn("skip example with invalid front-matter", "file", p, "err", err)
			return nil
		}
		if !ok || fm.Title == "" {
			logger.Debug("skip example without title", "file", p)
			return nil
		}

		link, err := filepath.Rel(bookDir, p)
		if err != nil {
			return err
		}
		examples = append(examples, Example{Title: fm.Title, Path: filepath.ToSlash(link)})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "scan examples in %s", dir)
	}
	return examples, nil
}

// parseFrontMatter decodes a leading YAML block delimited by "---" lines.
// ok is false when the document has no front-matter.
func parseFrontMatter(data []byte) (fm frontMatter, ok bool, err error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	lines := bytes.SplitAfter(data, []byte("\n"))
	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), frontMatterDelim) {
		return fm, false, nil
	}

	var block bytes.Buffer
	for _, line := range lines[1:] {
		if bytes.Equal(bytes.TrimSpace(line), frontMatterDelim) {
			if err := yaml.Unmarshal(block.Bytes(), &fm); err != nil {
				return fm, false, err
			}
			return fm, true, nil
		}
		block.Write(line)
	}
	return fm, false, errors.New(errors.ErrCodeInvalidInput, "unterminated front-matter")
}

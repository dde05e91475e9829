package pipeline

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/apibook/pkg/cache"
	"github.com/matzehuels/apibook/pkg/errors"
	"github.com/matzehuels/apibook/pkg/observability"
)

const reflectionJSON = `{
  "name": "browser-test",
  "children": [{
    "name": "\"index.d\"",
    "kindString": "External module",
    "children": [
      {
        "name": "Browser",
        "kindString": "Class",
        "comment": {"shortText": "Drives a browser."},
        "children": [{
          "name": "visit",
          "kindString": "Method",
          "signatures": [{
            "name": "visit",
            "kindString": "Call signature",
            "parameters": [{"name": "url", "kindString": "Parameter", "flags": {},
                            "type": {"type": "intrinsic", "name": "string"}}],
            "type": {"type": "reference", "name": "Promise",
                     "typeArguments": [{"type": "intrinsic", "name": "void"}]}
          }]
        }]
      },
      {
        "name": "Device",
        "kindString": "Enumeration",
        "children": [
          {"name": "A", "kindString": "Enumeration member"},
          {"name": "B", "kindString": "Enumeration member", "defaultValue": "b"}
        ]
      },
      {
        "name": "step",
        "kindString": "Function",
        "signatures": [{
          "name": "step",
          "kindString": "Call signature",
          "parameters": [{"name": "b", "kindString": "Parameter", "flags": {},
                          "type": {"type": "reference", "name": "Browser"}}]
        }]
      }
    ]
  }]
}`

type project struct {
	dir  string
	opts Options
}

func newProject(t *testing.T) *project {
	t.Helper()
	dir := t.TempDir()
	p := &project{
		dir: dir,
		opts: Options{
			Input:   filepath.Join(dir, "docs.json"),
			BookDir: filepath.Join(dir, "docs"),
			Readme:  filepath.Join(dir, "README.md"),
		},
	}
	p.write(t, "docs.json", reflectionJSON)
	p.write(t, "README.md", "# browser-test\n")
	p.write(t, "docs/examples/intro.md", "---\ntitle: Introduction\n---\nHello\n")
	return p
}

func (p *project) write(t *testing.T, rel, content string) {
	t.Helper()
	abs := filepath.Join(p.dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
	require.NoError(t, os.WriteFile(abs, []byte(content), 0o644))
}

func (p *project) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(p.dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func newFileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	return NewRunner(c, nil, nil)
}

func TestExecute(t *testing.T) {
	p := newProject(t)
	r := NewRunner(nil, nil, nil)

	result, err := r.Execute(context.Background(), p.opts)
	require.NoError(t, err)

	assert.Len(t, result.BuildID, 36)
	assert.Equal(t, 3, result.Stats.Entities)
	assert.Equal(t, 1, result.Stats.Examples)

	var paths []string
	for _, f := range result.Files {
		paths = append(paths, f.Path)
		assert.Equal(t, StatusWritten, f.Status)
	}
	assert.Equal(t, []string{
		"README.md",
		"api/Browser.md",
		"Enumerations.md",
		"api/Interfaces.md",
		"api/Functions.md",
		"SUMMARY.md",
	}, paths)

	assert.Equal(t, "# browser-test\n", p.read(t, "docs/README.md"))
	assert.Contains(t, p.read(t, "docs/api/Browser.md"), "#### `browser.visit(url)`")
	assert.Contains(t, p.read(t, "docs/api/Interfaces.md"), "| `B` | b |  |")
	assert.Contains(t, p.read(t, "docs/api/Functions.md"), "[Browser]: Browser.md")

	summary := p.read(t, "docs/SUMMARY.md")
	assert.Contains(t, summary, "[Introduction](examples/intro.md)")
	assert.Contains(t, summary, "  * [Browser](api/Browser.md)\n  * [Device](api/Interfaces.md)\n  * [step](api/Functions.md)")
}

func TestExecuteIsIdempotent(t *testing.T) {
	p := newProject(t)
	r := NewRunner(nil, nil, nil)

	_, err := r.Execute(context.Background(), p.opts)
	require.NoError(t, err)
	first := p.read(t, "docs/api/Browser.md")
	summary := p.read(t, "docs/SUMMARY.md")

	_, err = r.Execute(context.Background(), p.opts)
	require.NoError(t, err)
	assert.Equal(t, first, p.read(t, "docs/api/Browser.md"))
	assert.Equal(t, summary, p.read(t, "docs/SUMMARY.md"))
}

func TestExecuteUsesCache(t *testing.T) {
	p := newProject(t)
	r := newFileRunner(t)

	first, err := r.Execute(context.Background(), p.opts)
	require.NoError(t, err)
	assert.False(t, first.CacheInfo.CompileHit)
	assert.Equal(t, 6, first.Stats.Written)

	second, err := r.Execute(context.Background(), p.opts)
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.CompileHit)
	assert.Equal(t, 3, second.Stats.Entities)
	assert.Equal(t, 0, second.Stats.Written)
	assert.Equal(t, 6, second.Stats.Unchanged)

	// A file modified behind apibook's back is rewritten.
	p.write(t, "docs/api/Browser.md", "edited")
	third, err := r.Execute(context.Background(), p.opts)
	require.NoError(t, err)
	assert.Equal(t, 1, third.Stats.Written)
	assert.Contains(t, p.read(t, "docs/api/Browser.md"), "# `Browser`")

	// So is one edited without changing its length.
	orig := p.read(t, "docs/api/Browser.md")
	p.write(t, "docs/api/Browser.md", strings.Repeat("X", len(orig)))
	fourth, err := r.Execute(context.Background(), p.opts)
	require.NoError(t, err)
	assert.Equal(t, 1, fourth.Stats.Written)
	assert.Equal(t, orig, p.read(t, "docs/api/Browser.md"))
}

func TestExecuteRefresh(t *testing.T) {
	p := newProject(t)
	r := newFileRunner(t)

	_, err := r.Execute(context.Background(), p.opts)
	require.NoError(t, err)

	opts := p.opts
	opts.Refresh = true
	result, err := r.Execute(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, result.CacheInfo.CompileHit)
}

func TestExecuteCheck(t *testing.T) {
	p := newProject(t)
	r := NewRunner(nil, nil, nil)

	check := p.opts
	check.Check = true

	_, err := r.Execute(context.Background(), check)
	var stale *errors.OutOfDateError
	require.True(t, stderrors.As(err, &stale), "error = %v", err)
	assert.Len(t, stale.Paths, 6)
	_, statErr := os.Stat(filepath.Join(p.dir, "docs", "SUMMARY.md"))
	assert.True(t, os.IsNotExist(statErr), "check mode must not write")

	_, err = r.Execute(context.Background(), p.opts)
	require.NoError(t, err)

	result, err := r.Execute(context.Background(), check)
	require.NoError(t, err)
	for _, f := range result.Files {
		assert.Equal(t, StatusCurrent, f.Status, f.Path)
	}

	p.write(t, "docs/api/Functions.md", "stale\n")
	_, err = r.Execute(context.Background(), check)
	require.True(t, stderrors.As(err, &stale))
	assert.Equal(t, []string{"api/Functions.md"}, stale.Paths)
	assert.Contains(t, stale.Diffs["api/Functions.md"], "--- a/api/Functions.md")
	assert.Contains(t, stale.Diffs["api/Functions.md"], "-stale")
	assert.Equal(t, errors.ErrCodeOutOfDate, stale.Code())
}

func TestExecuteMissingReadme(t *testing.T) {
	p := newProject(t)
	require.NoError(t, os.Remove(p.opts.Readme))

	result, err := NewRunner(nil, nil, nil).Execute(context.Background(), p.opts)
	require.NoError(t, err)
	for _, f := range result.Files {
		assert.NotEqual(t, "README.md", f.Path)
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, p *project)
		code   errors.Code
	}{
		{"missing input", func(t *testing.T, p *project) {
			require.NoError(t, os.Remove(p.opts.Input))
		}, errors.ErrCodeFileNotFound},
		{"malformed input", func(t *testing.T, p *project) {
			p.write(t, "docs.json", "{")
		}, errors.ErrCodeInvalidInput},
		{"missing module", func(t *testing.T, p *project) {
			p.write(t, "docs.json", `{"name": "x", "children": [{"name": "other"}]}`)
		}, errors.ErrCodeMissingModule},
		{"function without signatures", func(t *testing.T, p *project) {
			p.write(t, "docs.json", `{"children": [{"name": "\"index.d\"", "children": [{"name": "f", "kindString": "Function"}]}]}`)
		}, errors.ErrCodeMalformedNode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProject(t)
			tt.mutate(t, p)
			_, err := NewRunner(nil, nil, nil).Execute(context.Background(), p.opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "error = %v, want %s", err, tt.code)
		})
	}
}

func TestExecuteCanceled(t *testing.T) {
	p := newProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(nil, nil, nil).Execute(ctx, p.opts)
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnLoadStart(context.Context, string) { h.record("load") }
func (h *recordingHooks) OnCompileComplete(_ context.Context, _ string, entities int, _ time.Duration, err error) {
	if err == nil {
		h.record("compiled")
	}
}
func (h *recordingHooks) OnWriteComplete(_ context.Context, _ string, written, _ int, _ time.Duration, _ error) {
	h.record("wrote")
}

func TestExecuteHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	p := newProject(t)
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), p.opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"load", "compiled", "wrote"}, hooks.events)
}

func TestDiff(t *testing.T) {
	diff, err := Diff("SUMMARY.md", "a\nb\n", "a\nc\n")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(diff, "--- a/SUMMARY.md\n+++ b/SUMMARY.md\n"), diff)
	assert.Contains(t, diff, "-b\n")
	assert.Contains(t, diff, "+c\n")
}

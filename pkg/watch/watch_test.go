package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "docs.json")
	examples := filepath.Join(dir, "examples")
	require.NoError(t, os.MkdirAll(examples, 0o755))

	w, err := New([]string{input}, []string{examples}, nil)
	require.NoError(t, err)
	defer w.Close()

	tests := []struct {
		path string
		want bool
	}{
		{input, true},
		{filepath.Join(dir, "other.json"), false},
		{filepath.Join(examples, "intro.md"), true},
		{filepath.Join(examples, "nested", "deep.md"), true},
		{filepath.Join(examples, ".intro.md.swp"), false},
		{filepath.Join(examples, "intro.md~"), false},
		{examples + "-old", false},
	}
	for _, tt := range tests {
		if got := w.Relevant(tt.path); got != tt.want {
			t.Errorf("Relevant(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestRunDebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "docs.json")
	readme := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(input, []byte("{}"), 0o644))

	w, err := New([]string{input, readme}, nil, nil)
	require.NoError(t, err)
	w.Debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, changed []string) {
			changes <- changed
		})
	}()

	// Give the watcher a moment to start receiving.
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, os.WriteFile(input, []byte(`{"a":1}`), 0o644))
	require.NoError(t, os.WriteFile(readme, []byte("# hi"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))

	select {
	case got := <-changes:
		assert.Equal(t, []string{readme, input}, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change delivered")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestRunWatchesNewDirectories(t *testing.T) {
	dir := t.TempDir()
	examples := filepath.Join(dir, "examples")
	require.NoError(t, os.MkdirAll(examples, 0o755))

	w, err := New(nil, []string{examples}, nil)
	require.NoError(t, err)
	w.Debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []string, 8)
	go func() {
		_ = w.Run(ctx, func(_ context.Context, changed []string) { changes <- changed })
	}()

	time.Sleep(20 * time.Millisecond)
	nested := filepath.Join(examples, "advanced")
	require.NoError(t, os.Mkdir(nested, 0o755))

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("directory creation not delivered")
	}

	require.NoError(t, os.WriteFile(filepath.Join(nested, "waits.md"), []byte("x"), 0o644))
	deadline := time.After(5 * time.Second)
	for {
		select {
		case got := <-changes:
			for _, p := range got {
				if p == filepath.Join(nested, "waits.md") {
					return
				}
			}
		case <-deadline:
			t.Fatal("change in new directory not delivered")
		}
	}
}

func TestNewWithMissingTree(t *testing.T) {
	dir := t.TempDir()
	examples := filepath.Join(dir, "docs", "examples")

	w, err := New(nil, []string{examples}, nil)
	require.NoError(t, err)
	defer w.Close()

	assert.True(t, w.Relevant(filepath.Join(examples, "intro.md")))
	assert.Equal(t, dir, existingAncestor(examples))
}

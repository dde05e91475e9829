package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/matzehuels/apibook/pkg/book"
	"github.com/matzehuels/apibook/pkg/errors"
)

// Check compares files with the book on disk without writing anything.
// If any file is missing or differs, the returned error is an
// *errors.OutOfDateError carrying a unified diff per stale file.
func (r *Runner) Check(ctx context.Context, files []book.File, opts Options) ([]FileResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	results := make([]FileResult, 0, len(files))
	stale := &errors.OutOfDateError{Diffs: make(map[string]string)}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		abs := filepath.Join(opts.BookDir, filepath.FromSlash(f.Path))
		current, err := os.ReadFile(abs)
		if err != nil && !os.IsNotExist(err) {
			return results, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", f.Path)
		}
		if err == nil && string(current) == f.Content {
			results = append(results, FileResult{Path: f.Path, Size: len(f.Content), Status: StatusCurrent})
			continue
		}

		diff, derr := Diff(f.Path, string(current), f.Content)
		if derr != nil {
			return results, errors.Wrap(errors.ErrCodeInternal, derr, "diff %s", f.Path)
		}
		stale.Paths = append(stale.Paths, f.Path)
		stale.Diffs[f.Path] = diff
		results = append(results, FileResult{Path: f.Path, Size: len(f.Content), Status: StatusOutdated})
		opts.Logger.Debug("outdated", "file", f.Path)
	}

	if len(stale.Paths) > 0 {
		return results, stale
	}
	return results, nil
}

// Diff returns a unified diff from the on-disk content to the generated one.
func Diff(path, onDisk, generated string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(onDisk),
		B:        difflib.SplitLines(generated),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
}

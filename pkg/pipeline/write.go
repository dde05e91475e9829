package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/apibook/pkg/book"
	"github.com/matzehuels/apibook/pkg/cache"
	"github.com/matzehuels/apibook/pkg/errors"
	"github.com/matzehuels/apibook/pkg/observability"
)

// fileRecord is the cache record of a written book file.
type fileRecord struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// Write writes files below opts.BookDir, creating directories as needed.
// A file is skipped when the cache records the same content hash and the file
// on disk still hashes to it. Writes are not transactional: an error
// part way through leaves the files written so far in place.
func (r *Runner) Write(ctx context.Context, files []book.File, opts Options) (results []FileResult, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnWriteStart(ctx, opts.BookDir, len(files))
	start := time.Now()
	defer func() {
		written, unchanged := countStatus(results)
		hooks.OnWriteComplete(ctx, opts.BookDir, written, unchanged, time.Since(start), err)
	}()

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		abs := filepath.Join(opts.BookDir, filepath.FromSlash(f.Path))
		key := r.Keyer.FileKey(opts.BookDir, f.Path)
		rec := fileRecord{Hash: cache.Hash([]byte(f.Content)), Size: int64(len(f.Content))}

		if r.upToDate(ctx, key, abs, rec) {
			opts.Logger.Debug("unchanged", "file", f.Path)
			results = append(results, FileResult{Path: f.Path, Size: len(f.Content), Status: StatusUnchanged})
			continue
		}

		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return results, errors.Wrap(errors.ErrCodeInvalidPath, err, "create directory for %s", f.Path)
		}
		if err := os.WriteFile(abs, []byte(f.Content), 0o644); err != nil {
			return results, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", f.Path)
		}
		opts.Logger.Debug("wrote", "file", f.Path, "bytes", len(f.Content))
		results = append(results, FileResult{Path: f.Path, Size: len(f.Content), Status: StatusWritten})

		if data, err := json.Marshal(rec); err == nil {
			if err := r.Cache.Set(ctx, key, data, 0); err == nil {
				observability.Cache().OnCacheSet(ctx, "file", len(data))
			}
		}
	}
	return results, nil
}

func (r *Runner) upToDate(ctx context.Context, key, abs string, want fileRecord) bool {
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(ctx, "file")
		return false
	}
	var got fileRecord
	if err := json.Unmarshal(data, &got); err != nil || got != want {
		observability.Cache().OnCacheMiss(ctx, "file")
		return false
	}
	onDisk, err := os.ReadFile(abs)
	if err != nil || int64(len(onDisk)) != want.Size || cache.Hash(onDisk) != want.Hash {
		observability.Cache().OnCacheMiss(ctx, "file")
		return false
	}
	observability.Cache().OnCacheHit(ctx, "file")
	return true
}

func countStatus(results []FileResult) (written, unchanged int) {
	for _, f := range results {
		switch f.Status {
		case StatusWritten:
			written++
		case StatusUnchanged:
			unchanged++
		}
	}
	return written, unchanged
}

package cli

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/apibook/pkg/observability"
)

var installOnce sync.Once

// installHooks routes pipeline, cache and preview events to the CLI logger
// at debug level. Only the first CLI to run installs them.
func (c *CLI) installHooks() {
	installOnce.Do(func() {
		h := &logHooks{logger: c.Logger}
		observability.SetPipelineHooks(h)
		observability.SetCacheHooks(h)
		observability.SetHTTPHooks(h)
	})
}

// logHooks implements the observability hook interfaces on a logger.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnLoadStart(_ context.Context, input string) {
	h.logger.Debug("load", "input", input)
}

func (h *logHooks) OnLoadComplete(_ context.Context, input string, nodes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "input", input, "err", err)
		return
	}
	h.logger.Debug("load done", "input", input, "nodes", nodes, "duration", d)
}

func (h *logHooks) OnCompileStart(_ context.Context, module string) {
	h.logger.Debug("compile", "module", module)
}

func (h *logHooks) OnCompileComplete(_ context.Context, module string, entities int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("compile failed", "module", module, "err", err)
		return
	}
	h.logger.Debug("compile done", "module", module, "entities", entities, "duration", d)
}

func (h *logHooks) OnWriteStart(_ context.Context, bookDir string, files int) {
	h.logger.Debug("write", "dir", bookDir, "files", files)
}

func (h *logHooks) OnWriteComplete(_ context.Context, bookDir string, written, unchanged int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("write failed", "dir", bookDir, "err", err)
		return
	}
	h.logger.Debug("write done", "dir", bookDir, "written", written, "unchanged", unchanged, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnRequest(context.Context, string, string) {}

func (h *logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("request", "method", method, "path", path, "status", status, "duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnError(_ context.Context, method, path string, err error) {
	h.logger.Error("request failed", "method", method, "path", path, "err", err)
}

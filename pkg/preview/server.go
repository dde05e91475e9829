// Package preview serves a generated book as HTML for local browsing.
//
// Pages are rendered from the Markdown on disk on every request, so a preview
// running alongside "apibook watch" always shows the latest build. Relative
// links between pages keep their .md targets and resolve against the same
// server.
package preview

import (
	"context"
	"html/template"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/apibook/pkg/book"
	"github.com/matzehuels/apibook/pkg/errors"
	"github.com/matzehuels/apibook/pkg/observability"
)

// DefaultAddr is the listen address used by "apibook serve".
const DefaultAddr = "127.0.0.1:3000"

const shutdownTimeout = 5 * time.Second

// Server renders the book under Dir.
type Server struct {
	Dir    string
	logger *log.Logger
}

// New returns a server for the book directory dir. A nil logger discards
// output.
func New(dir string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Server{Dir: dir, logger: logger}
}

// Handler returns the HTTP handler for the book.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/", s.serveIndex)
	r.Get("/*", s.servePath)
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
// The ready callback, if set, receives the bound address once listening.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "listen on %s", addr)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	if ready != nil {
		ready(ln.Addr())
	}
	s.logger.Debug("preview listening", "addr", ln.Addr().String(), "dir", s.Dir)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	for _, name := range []string{book.ReadmePath, book.SummaryPath} {
		if _, err := os.Stat(filepath.Join(s.Dir, name)); err == nil {
			s.renderPage(w, r, name)
			return
		}
	}
	http.NotFound(w, r)
}

func (s *Server) servePath(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(path.Clean("/"+chi.URLParam(r, "*")), "/")
	full := filepath.Join(s.Dir, filepath.FromSlash(rel))

	info, err := os.Stat(full)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if info.IsDir() {
		readme := path.Join(rel, book.ReadmePath)
		if _, err := os.Stat(filepath.Join(s.Dir, filepath.FromSlash(readme))); err != nil {
			http.NotFound(w, r)
			return
		}
		rel = readme
	}

	if strings.EqualFold(path.Ext(rel), ".md") {
		s.renderPage(w, r, rel)
		return
	}
	http.ServeFile(w, r, full)
}

// renderPage renders the book-relative Markdown file rel inside the page
// layout. SUMMARY.md provides the sidebar.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, rel string) {
	src, err := os.ReadFile(filepath.Join(s.Dir, filepath.FromSlash(rel)))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	content, err := RenderMarkdown(src)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data := pageData{
		Title:   rel,
		Content: template.HTML(content),
	}
	if nav, err := os.ReadFile(filepath.Join(s.Dir, book.SummaryPath)); err == nil {
		navHTML, err := RenderMarkdown(rebaseLinks(nav, rel))
		if err != nil {
			s.fail(w, r, err)
			return
		}
		data.Nav = template.HTML(navHTML)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Warn("write page", "path", rel, "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	s.logger.Error("preview request failed", "path", r.URL.Path, "err", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

// summaryLink matches the target of an inline Markdown link.
var summaryLink = regexp.MustCompile(`\]\(([^)\s]*)\)`)

// rebaseLinks rewrites the book-relative links of SUMMARY.md so they resolve
// from the page at rel. Absolute URLs, rooted paths and fragments are kept.
func rebaseLinks(summary []byte, rel string) []byte {
	depth := strings.Count(rel, "/")
	if depth == 0 {
		return summary
	}
	prefix := strings.Repeat("../", depth)
	return summaryLink.ReplaceAllFunc(summary, func(m []byte) []byte {
		target := string(m[2 : len(m)-1])
		if target == "" || strings.HasPrefix(target, "/") || strings.HasPrefix(target, "#") {
			return m
		}
		if u, err := url.Parse(target); err == nil && u.Scheme != "" {
			return m
		}
		return []byte("](" + prefix + target + ")")
	})
}

// Package preview serves the story catalog over HTTP: an index of every
// story, the rendered pages and the theme assets.
package preview

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-auththeme/internal/logging"
	"github.com/goliatone/go-auththeme/pkg/fixture"
	"github.com/goliatone/go-auththeme/pkg/interfaces"
	"github.com/goliatone/go-auththeme/pkg/page"
	"github.com/goliatone/go-auththeme/pkg/render/template/gotemplate"
	"github.com/goliatone/go-auththeme/pkg/router"
	"github.com/goliatone/go-auththeme/pkg/stories"
	"github.com/goliatone/go-auththeme/pkg/styles"
)

const indexTemplate = "index"

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Option configures a Server.
type Option func(*Server)

// WithRouter replaces the page router. The router's style selector should
// use the same assets prefix as the server.
func WithRouter(r *router.Router) Option {
	return func(s *Server) {
		if r != nil {
			s.router = r
		}
	}
}

func WithCatalog(catalog *stories.Catalog) Option {
	return func(s *Server) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

// WithAssets serves fsys under prefix.
func WithAssets(fsys fs.FS, prefix string) Option {
	return func(s *Server) {
		if fsys != nil {
			s.assets = fsys
		}
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			s.assetsPrefix = "/" + strings.Trim(prefix, "/")
		}
	}
}

// WithBaseOverrides applies o beneath every story, e.g. a default locale.
func WithBaseOverrides(o fixture.Overrides) Option {
	return func(s *Server) {
		s.base = o
	}
}

// WithLoggerProvider routes request and render logs through provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(s *Server) {
		s.logger = logging.PreviewLogger(provider)
	}
}

// Server renders stories on demand. It is safe for concurrent use.
type Server struct {
	router       *router.Router
	catalog      *stories.Catalog
	assets       fs.FS
	assetsPrefix string
	base         fixture.Overrides
	logger       interfaces.Logger

	engine *gotemplate.Engine
	mux    *http.ServeMux
}

// New builds a server over the built-in catalog and theme assets unless
// options replace them.
func New(options ...Option) (*Server, error) {
	s := &Server{
		assets:       styles.AssetsFS(),
		assetsPrefix: styles.DefaultAssetsPrefix,
		logger:       logging.NoOp(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.catalog == nil {
		catalog, err := stories.Default()
		if err != nil {
			return nil, fmt.Errorf("preview: load stories: %w", err)
		}
		s.catalog = catalog
	}
	if s.router == nil {
		s.router = router.New()
	}

	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("preview: templates: %w", err)
	}
	engine, err := gotemplate.New(
		gotemplate.WithFS(sub),
		gotemplate.WithExtension(".tmpl"),
		gotemplate.WithSetName("auththeme-preview"),
	)
	if err != nil {
		return nil, fmt.Errorf("preview: template engine: %w", err)
	}
	s.engine = engine
	s.mux = s.routes()
	return s, nil
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /stories/{page}/{story}", s.handleStory)
	mux.Handle("GET "+s.assetsPrefix+"/", http.StripPrefix(s.assetsPrefix, http.FileServerFS(s.assets)))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Handler returns the request handler with access logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// StoryPath returns the URL path of a story.
func StoryPath(id page.ID, name string) string {
	return "/stories/" + url.PathEscape(id.Name()) + "/" + url.PathEscape(name)
}

// Render builds and routes one story. Query-style overrides such as a
// locale apply last.
func (s *Server) Render(ctx context.Context, id page.ID, name string, extra ...fixture.Overrides) (*router.RenderedPage, error) {
	story, err := s.catalog.Get(id, name)
	if err != nil {
		return nil, err
	}
	sets := append([]fixture.Overrides{s.base, story.Overrides}, extra...)
	pc, err := fixture.Build(story.Page, sets...)
	if err != nil {
		return nil, err
	}
	return s.router.Route(ctx, pc)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	groups := make([]map[string]any, 0)
	for _, id := range s.catalog.Pages() {
		list := s.catalog.List(id)
		items := make([]map[string]any, 0, len(list))
		for _, story := range list {
			items = append(items, map[string]any{
				"name":  story.Name,
				"title": story.Title,
				"href":  StoryPath(id, story.Name),
			})
		}
		groups = append(groups, map[string]any{
			"id":      id.String(),
			"name":    id.Name(),
			"stories": items,
		})
	}

	html, err := s.engine.RenderTemplate(indexTemplate, map[string]any{
		"title": "Auth theme stories",
		"total": s.catalog.Len(),
		"pages": groups,
	})
	if err != nil {
		s.fail(w, r, fmt.Errorf("preview: render index: %w", err))
		return
	}
	writeHTML(w, router.ContentType, html)
}

func (s *Server) handleStory(w http.ResponseWriter, r *http.Request) {
	id := page.ParseID(r.PathValue("page"))
	name := r.PathValue("story")

	var extra fixture.Overrides
	if locale := strings.TrimSpace(r.URL.Query().Get("locale")); locale != "" {
		extra.Locale = fixture.Ptr(locale)
	}

	out, err := s.Render(r.Context(), id, name, extra)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeHTML(w, out.ContentType, out.HTML)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("preview request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Warn("preview request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	http.Error(w, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case goerrors.IsCategory(err, goerrors.CategoryNotFound):
		return http.StatusNotFound
	case goerrors.IsCategory(err, goerrors.CategoryValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeHTML(w http.ResponseWriter, contentType, html string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("preview request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readHeaderTimeout, shutdownTimeout time.Duration) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview listening", "addr", addr, "stories", s.catalog.Len())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("preview: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("preview: shutdown: %w", err)
	}
	s.logger.Info("preview stopped")
	return nil
}

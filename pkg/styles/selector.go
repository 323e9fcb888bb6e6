// Package styles computes the style class map and the stylesheets of each
// authentication page.
package styles

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-auththeme/pkg/page"
)

// TextCodeStylesheetLoad tags stylesheet load failures.
const TextCodeStylesheetLoad = "STYLESHEET_LOAD_FAILED"

// Stylesheet is one loaded stylesheet resource.
type Stylesheet struct {
	Key     string
	Href    string
	Content []byte
}

// PageStyles is the style selection of one page.
type PageStyles struct {
	PageID      page.ID
	Classes     ClassMap
	Stylesheets []Stylesheet
	CSSVars     map[string]string
	Theme       string
	Variant     string

	selection *gotheme.Selection
}

// Template resolves a page template name through the theme, returning
// fallback when the theme does not override it.
func (p PageStyles) Template(key, fallback string) string {
	if p.selection == nil {
		return fallback
	}
	return p.selection.Template(key, fallback)
}

// Option configures a Selector.
type Option func(*Selector)

// WithAssetsFS replaces the filesystem stylesheets are loaded from.
func WithAssetsFS(fsys fs.FS) Option {
	return func(s *Selector) {
		if fsys != nil {
			s.assets = fsys
		}
	}
}

// WithManifest registers an additional theme manifest.
func WithManifest(manifest *gotheme.Manifest) Option {
	return func(s *Selector) {
		if manifest != nil {
			s.manifests = append(s.manifests, manifest)
		}
	}
}

// WithTheme selects the theme and variant used for every page.
func WithTheme(name, variant string) Option {
	return func(s *Selector) {
		s.themeName = strings.TrimSpace(name)
		s.variant = strings.TrimSpace(variant)
	}
}

// WithAssetsPrefix sets the URL prefix of the built-in theme's assets.
func WithAssetsPrefix(prefix string) Option {
	return func(s *Selector) {
		s.prefix = strings.TrimSpace(prefix)
	}
}

// WithCSSVarPrefix sets the prefix of the CSS variables derived from tokens.
func WithCSSVarPrefix(prefix string) Option {
	return func(s *Selector) {
		s.cssPrefix = prefix
	}
}

// Selector computes page styles. It is safe for concurrent use; memoization
// lives in the Session it hands out.
type Selector struct {
	assets    fs.FS
	manifests []*gotheme.Manifest
	themeName string
	variant   string
	prefix    string
	cssPrefix string

	selection *gotheme.Selection
	files     map[string]string
}

// NewSelector registers the built-in theme plus any extra manifests and
// resolves the configured theme selection.
func NewSelector(options ...Option) (*Selector, error) {
	s := &Selector{
		assets:    AssetsFS(),
		themeName: DefaultThemeName,
		variant:   DefaultThemeVariant,
		prefix:    DefaultAssetsPrefix,
		cssPrefix: "auth",
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	registry := gotheme.NewRegistry()
	if err := registry.Register(DefaultManifest(s.prefix)); err != nil {
		return nil, fmt.Errorf("styles: register default theme: %w", err)
	}
	for _, manifest := range s.manifests {
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("styles: register theme %q: %w", manifest.Name, err)
		}
	}

	selection, err := selectTheme(registry, s.themeName, s.variant)
	if err != nil {
		return nil, err
	}
	s.selection = selection
	s.files = themeFiles(selection)
	return s, nil
}

// Session returns a memo scoped to one render: repeated For calls with the
// same page ID reuse the first result.
func (s *Selector) Session() *Session {
	return &Session{selector: s, cache: map[page.ID]PageStyles{}}
}

// compute builds the styles of id, loading the base stylesheet and the page
// stylesheet.
func (s *Selector) compute(ctx context.Context, id page.ID) (PageStyles, error) {
	out := PageStyles{
		PageID:    id,
		Classes:   ClassesFor(id),
		selection: s.selection,
	}
	if s.selection != nil {
		out.Theme = s.selection.Theme
		out.Variant = s.selection.Variant
		out.CSSVars = s.selection.CSSVariables(s.cssPrefix)
	}

	keys := []string{BaseStylesheet}
	if key, ok := StylesheetKey(id); ok {
		keys = append(keys, key)
	}
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return PageStyles{}, err
		}
		sheet, err := s.load(key)
		if err != nil {
			return PageStyles{}, goerrors.Wrap(err, goerrors.CategoryInternal,
				fmt.Sprintf("styles: load %s for %s", key, id)).
				WithTextCode(TextCodeStylesheetLoad)
		}
		out.Stylesheets = append(out.Stylesheets, sheet)
	}
	return out, nil
}

func (s *Selector) load(key string) (Stylesheet, error) {
	file, ok := s.files[key]
	if !ok || strings.TrimSpace(file) == "" {
		return Stylesheet{}, fmt.Errorf("stylesheet %q not declared by theme", key)
	}
	content, err := fs.ReadFile(s.assets, strings.TrimPrefix(file, "/"))
	if err != nil {
		return Stylesheet{}, err
	}
	return Stylesheet{
		Key:     key,
		Href:    assetHref(s.selection, key, file),
		Content: content,
	}, nil
}

// Session memoizes page styles for the lifetime of one render.
type Session struct {
	selector *Selector

	mu    sync.Mutex
	cache map[page.ID]PageStyles
}

// For returns the styles of id, computing them on first use. Failed loads
// are not cached.
func (s *Session) For(ctx context.Context, id page.ID) (PageStyles, error) {
	if s == nil || s.selector == nil {
		return PageStyles{}, errors.New("styles: session has no selector")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.cache[id]; ok {
		return cached, nil
	}
	styles, err := s.selector.compute(ctx, id)
	if err != nil {
		return PageStyles{}, err
	}
	s.cache[id] = styles
	return styles, nil
}

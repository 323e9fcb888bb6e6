// Package auththeme renders the pages of an identity provider's
// authentication flow (login, registration, password reset, email
// verification, logout confirmation) from the page context the backend
// computes.
//
// Most callers only need Render:
//
//	out, err := auththeme.Render(ctx, pc)
//
// Previews and tests build contexts from stories instead:
//
//	out, err := auththeme.RenderStory(ctx, "register", "WithTermsAcceptance")
package auththeme

import (
	"context"
	"fmt"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-auththeme/pkg/fixture"
	"github.com/goliatone/go-auththeme/pkg/page"
	"github.com/goliatone/go-auththeme/pkg/router"
	"github.com/goliatone/go-auththeme/pkg/stories"
	"github.com/goliatone/go-auththeme/pkg/styles"
)

// PageContext is the input of every render.
type PageContext = page.Context

// RenderedPage is the output of every render.
type RenderedPage = router.RenderedPage

// Overrides partially describes a page context for fixtures.
type Overrides = fixture.Overrides

// NewRouter exposes the router constructor from the top-level module.
func NewRouter(options ...router.Option) *router.Router {
	return router.New(options...)
}

// Render routes pc through a router built from options.
func Render(ctx context.Context, pc *PageContext, options ...router.Option) (*RenderedPage, error) {
	return router.New(options...).Route(ctx, pc)
}

// BuildFixture returns a synthetic context for id with overrides applied.
func BuildFixture(id page.ID, overrides ...Overrides) (*PageContext, error) {
	return fixture.Build(id, overrides...)
}

// RenderStory renders one of the built-in stories. extra overrides apply
// after the story's own.
func RenderStory(ctx context.Context, pageName, storyName string, extra []Overrides, options ...router.Option) (*RenderedPage, error) {
	catalog, err := stories.Default()
	if err != nil {
		return nil, fmt.Errorf("auththeme: load stories: %w", err)
	}
	story, err := catalog.Get(page.ParseID(pageName), storyName)
	if err != nil {
		return nil, err
	}
	pc, err := story.Context(extra...)
	if err != nil {
		return nil, err
	}
	return router.New(options...).Route(ctx, pc)
}

// WithTheme selects the theme and variant of the built-in selector.
func WithTheme(name, variant string) router.Option {
	return router.WithStyleOptions(styles.WithTheme(name, variant))
}

// WithThemeManifest registers an extra go-theme manifest, typically paired
// with WithTheme to select it.
func WithThemeManifest(manifest *gotheme.Manifest) router.Option {
	return router.WithStyleOptions(styles.WithManifest(manifest))
}

// WithAssetsPrefix sets the URL prefix stylesheet links point to.
func WithAssetsPrefix(prefix string) router.Option {
	return router.WithStyleOptions(styles.WithAssetsPrefix(prefix))
}

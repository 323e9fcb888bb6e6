// Package pages holds the page renderers of the authentication theme and the
// layout Template that wraps them.
//
// A renderer turns Props into an HTML document. Renderers never fetch data:
// everything they need, including the loaded form-fields sub-renderer, is
// carried by Props.
package pages

import (
	"context"

	"github.com/goliatone/go-auththeme/pkg/fields"
	"github.com/goliatone/go-auththeme/pkg/i18n"
	"github.com/goliatone/go-auththeme/pkg/page"
	"github.com/goliatone/go-auththeme/pkg/styles"
)

// Props is the input of every page renderer.
type Props struct {
	Context *page.Context
	I18n    *i18n.Localizer
	Classes styles.ClassMap
	Styles  styles.PageStyles
	// DoUseDefaultCSS adds the framework default classes next to the
	// theme classes.
	DoUseDefaultCSS bool
	Template        Template

	DoMakeUserConfirmPassword bool
	// FormFields is the loaded field renderer. Only register receives one.
	FormFields fields.Renderer
}

// Renderer draws one page.
type Renderer interface {
	Render(ctx context.Context, props Props) (string, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, props Props) (string, error)

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, props Props) (string, error) {
	return f(ctx, props)
}

// LayoutProps is what a page hands the layout.
type LayoutProps struct {
	Props

	Header                string
	DisplayMessage        bool
	DisplayRequiredFields bool
	Body                  string
	Info                  string
	Social                string
}

// Template is the layout shared by every page.
type Template interface {
	Render(ctx context.Context, props LayoutProps) (string, error)
}

// TemplateFunc adapts a function to Template.
type TemplateFunc func(ctx context.Context, props LayoutProps) (string, error)

// Render calls f.
func (f TemplateFunc) Render(ctx context.Context, props LayoutProps) (string, error) {
	return f(ctx, props)
}

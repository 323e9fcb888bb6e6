// Package fields renders the user profile attributes of a page as form
// fields. The renderer is loaded on demand through a Loader so pages that
// never show attributes do not pay for parsing its templates.
package fields

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-auththeme/pkg/i18n"
	"github.com/goliatone/go-auththeme/pkg/page"
	"github.com/goliatone/go-auththeme/pkg/render/template"
	"github.com/goliatone/go-auththeme/pkg/render/template/gotemplate"
	"github.com/goliatone/go-auththeme/pkg/styles"
)

// TemplateName is the template rendering the field list.
const TemplateName = "user-profile-form-fields"

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded field templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// Input is what a page hands the field renderer.
type Input struct {
	Context         *page.Context
	I18n            *i18n.Localizer
	Classes         styles.ClassMap
	DoUseDefaultCSS bool
	// Exclude lists attribute names the page draws itself.
	Exclude []string
}

// Renderer draws the attributes of a page context.
type Renderer interface {
	Render(ctx context.Context, in Input) (string, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, in Input) (string, error)

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, in Input) (string, error) {
	return f(ctx, in)
}

// TemplateRenderer renders fields through a template engine.
type TemplateRenderer struct {
	engine template.TemplateRenderer
}

// New returns a renderer backed by engine. The engine must be able to
// resolve TemplateName.
func New(engine template.TemplateRenderer) (*TemplateRenderer, error) {
	if engine == nil {
		return nil, errors.New("fields: template engine is required")
	}
	return &TemplateRenderer{engine: engine}, nil
}

// NewDefault builds a renderer over the embedded templates and parses them
// eagerly.
func NewDefault() (*TemplateRenderer, error) {
	engine, err := gotemplate.New(
		gotemplate.WithFS(TemplatesFS()),
		gotemplate.WithSetName("auththeme-fields"),
	)
	if err != nil {
		return nil, fmt.Errorf("fields: create engine: %w", err)
	}
	r, err := New(engine)
	if err != nil {
		return nil, err
	}
	if _, err := engine.RenderTemplate(TemplateName, map[string]any{}); err != nil {
		return nil, fmt.Errorf("fields: parse templates: %w", err)
	}
	return r, nil
}

// Render draws every visible attribute of in.Context.
func (r *TemplateRenderer) Render(ctx context.Context, in Input) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if in.Context == nil {
		return "", errors.New("fields: page context is required")
	}

	built := BuildFields(in.Context, in.I18n, in.Exclude...)
	views := make([]map[string]any, 0, len(built))
	for _, field := range built {
		views = append(views, field.toMap())
	}

	return r.engine.RenderTemplate(TemplateName, map[string]any{
		"fields":         views,
		"classes":        classNames(in.Classes, in.DoUseDefaultCSS),
		"selectAnOption": in.I18n.Msg("selectAnOption"),
	})
}

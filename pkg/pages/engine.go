package pages

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-auththeme/pkg/render/template"
	"github.com/goliatone/go-auththeme/pkg/render/template/gotemplate"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded page templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// NewEngine builds the template engine page renderers share. Templates in
// baseDir, when set, shadow the embedded ones.
func NewEngine(baseDir string) (template.TemplateRenderer, error) {
	opts := []gotemplate.Option{
		gotemplate.WithFS(TemplatesFS()),
		gotemplate.WithSetName("auththeme-pages"),
	}
	if baseDir != "" {
		opts = append(opts, gotemplate.WithBaseDir(baseDir))
	}
	engine, err := gotemplate.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("pages: create engine: %w", err)
	}
	return engine, nil
}

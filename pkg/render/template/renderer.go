package template

import (
	"io"
)

// TemplateRenderer is the seam page renderers use to execute templates. The
// pongo2 backed engine in the gotemplate package is the default
// implementation; tests and embedders may supply their own.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

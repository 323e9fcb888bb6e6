package pages

import (
	"context"

	"github.com/goliatone/go-auththeme/pkg/render/template"
)

// NewDefault renders any page the theme has no dedicated renderer for: a
// generic card titled from the page ID that shows the backend message.
func NewDefault(engine template.TemplateRenderer) Renderer {
	return newTemplatePage(engine, "default", defaultView)
}

func defaultView(_ context.Context, props Props) (view, error) {
	pc := props.Context
	return view{
		header:         props.I18n.Msg("defaultPageTitle", pc.PageID.Name()),
		displayMessage: true,
		data: map[string]any{
			"action": pc.URL.LoginAction,
		},
	}, nil
}

package pages

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-auththeme/pkg/i18n"
	"github.com/goliatone/go-auththeme/pkg/page"
	"github.com/goliatone/go-auththeme/pkg/render/template"
)

// view is what a page computes before its templates run.
type view struct {
	header                string
	data                  map[string]any
	displayMessage        bool
	displayRequiredFields bool
	info                  bool
	social                bool
}

type viewFunc func(ctx context.Context, props Props) (view, error)

// templatePage renders <name>.tmpl as the body and, when the view asks for
// them, <name>-info.tmpl and <name>-social.tmpl, then hands the result to
// the layout.
type templatePage struct {
	engine template.TemplateRenderer
	name   string
	build  viewFunc
	layout Template
}

func newTemplatePage(engine template.TemplateRenderer, name string, build viewFunc) *templatePage {
	return &templatePage{
		engine: engine,
		name:   name,
		build:  build,
		layout: NewTemplate(engine),
	}
}

func (p *templatePage) Render(ctx context.Context, props Props) (string, error) {
	if props.Context == nil {
		return "", errors.New("pages: page context is required")
	}
	if props.I18n == nil {
		return "", errors.New("pages: localizer is required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	v, err := p.build(ctx, props)
	if err != nil {
		return "", err
	}
	data := commonData(props)
	for key, value := range v.data {
		data[key] = value
	}

	body, err := p.engine.RenderTemplate(p.name, data)
	if err != nil {
		return "", fmt.Errorf("pages: render %s: %w", p.name, err)
	}
	layout := LayoutProps{
		Props:                 props,
		Header:                v.header,
		DisplayMessage:        v.displayMessage,
		DisplayRequiredFields: v.displayRequiredFields,
		Body:                  body,
	}
	if v.info {
		if layout.Info, err = p.engine.RenderTemplate(p.name+"-info", data); err != nil {
			return "", fmt.Errorf("pages: render %s info: %w", p.name, err)
		}
	}
	if v.social {
		if layout.Social, err = p.engine.RenderTemplate(p.name+"-social", data); err != nil {
			return "", fmt.Errorf("pages: render %s social: %w", p.name, err)
		}
	}

	tpl := props.Template
	if tpl == nil {
		tpl = p.layout
	}
	return tpl.Render(ctx, layout)
}

// commonData seeds the values every page template sees.
func commonData(props Props) map[string]any {
	data := props.I18n.TemplateFuncs(i18n.TemplateFuncsConfig{})
	data["kc"] = props.Classes.Resolve(props.DoUseDefaultCSS)
	data["pageId"] = props.Context.PageID.String()
	data["lang"] = props.I18n.Locale()
	data["url"] = map[string]any{
		"loginAction":              props.Context.URL.LoginAction,
		"loginUrl":                 props.Context.URL.LoginURL,
		"registrationAction":       props.Context.URL.RegistrationAction,
		"registrationUrl":          props.Context.URL.RegistrationURL,
		"loginResetCredentialsUrl": props.Context.URL.LoginResetCredentialsURL,
		"loginRestartFlowUrl":      props.Context.URL.LoginRestartFlowURL,
		"logoutConfirmAction":      props.Context.URL.LogoutConfirmAction,
		"resourcesPath":            props.Context.URL.ResourcesPath,
	}
	return data
}

// fieldError returns the sanitized message of the first named field in error.
func fieldError(props Props, names ...string) string {
	msg, ok := page.FirstError(props.Context.FieldMessages(), names...)
	if !ok {
		return ""
	}
	return string(props.I18n.AdvancedHTML(msg))
}

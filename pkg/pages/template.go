package pages

import (
	"context"
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/goliatone/go-auththeme/pkg/render/template"
)

// LayoutTemplateName is the template the default layout executes.
const LayoutTemplateName = "layout"

type layout struct {
	engine template.TemplateRenderer
}

// NewTemplate returns the default layout executing LayoutTemplateName.
func NewTemplate(engine template.TemplateRenderer) Template {
	return &layout{engine: engine}
}

func (l *layout) Render(ctx context.Context, props LayoutProps) (string, error) {
	if l.engine == nil {
		return "", errors.New("pages: layout has no template engine")
	}
	if props.Context == nil || props.I18n == nil {
		return "", errors.New("pages: layout needs a page context and a localizer")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pc := props.Context
	data := commonData(props.Props)

	sheets := make([]string, 0, len(props.Styles.Stylesheets))
	for _, sheet := range props.Styles.Stylesheets {
		sheets = append(sheets, sheet.Href)
	}

	languages := []map[string]any{}
	if pc.Realm.InternationalizationEnabled {
		for _, lang := range props.I18n.Languages() {
			languages = append(languages, map[string]any{
				"tag":    lang.Tag,
				"label":  lang.Label,
				"url":    lang.URL,
				"active": lang.Active,
			})
		}
	}

	hasMessage := props.DisplayMessage && pc.Message != nil && strings.TrimSpace(pc.Message.Summary) != ""
	message := map[string]any{}
	if hasMessage {
		message["type"] = pc.Message.Type
		message["summary"] = string(props.I18n.AdvancedHTML(pc.Message.Summary))
	}

	data["title"] = props.I18n.Msg("loginTitle", realmTitle(props))
	data["realmName"] = realmName(props)
	data["stylesheets"] = sheets
	data["cssVars"] = cssVars(props.Styles.CSSVars)
	data["scripts"] = pc.Scripts
	data["languages"] = languages
	data["currentLanguage"] = props.I18n.CurrentLanguageLabel()
	data["header"] = props.Header
	data["displayRequiredFields"] = props.DisplayRequiredFields
	data["hasMessage"] = hasMessage
	data["message"] = message
	data["body"] = props.Body
	data["info"] = props.Info
	data["social"] = props.Social
	data["theme"] = props.Styles.Theme
	data["variant"] = props.Styles.Variant

	name := props.Styles.Template(LayoutTemplateName, LayoutTemplateName)
	out, err := l.engine.RenderTemplate(name, data)
	if err != nil {
		return "", fmt.Errorf("pages: render layout: %w", err)
	}
	return out, nil
}

func realmTitle(props LayoutProps) string {
	realm := props.Context.Realm
	if realm.DisplayName != "" {
		return realm.DisplayName
	}
	return realm.Name
}

func realmName(props LayoutProps) string {
	if markup := strings.TrimSpace(props.Context.Realm.DisplayNameHTML); markup != "" {
		return string(props.I18n.AdvancedHTML(markup))
	}
	return html.EscapeString(realmTitle(props))
}

func cssVars(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		prop := name
		if !strings.HasPrefix(prop, "--") {
			prop = "--" + strings.TrimPrefix(prop, "-")
		}
		fmt.Fprintf(&b, "%s:%s;", prop, vars[name])
	}
	return b.String()
}

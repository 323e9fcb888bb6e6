package pages

import (
	"context"

	"github.com/goliatone/go-auththeme/pkg/render/template"
)

// NewLogin renders the sign-in page.
func NewLogin(engine template.TemplateRenderer) Renderer {
	return newTemplatePage(engine, "login", loginView)
}

func loginView(_ context.Context, props Props) (view, error) {
	pc := props.Context
	l := props.I18n

	usernameLabel := l.Msg("usernameOrEmail")
	switch {
	case !pc.Realm.LoginWithEmailAllowed:
		usernameLabel = l.Msg("username")
	case pc.Realm.RegistrationEmailAsUsername:
		usernameLabel = l.Msg("email")
	}

	loginError := fieldError(props, "username", "password")

	providers := make([]map[string]any, 0, len(pc.Social.Providers))
	for _, p := range pc.Social.Providers {
		label := p.DisplayName
		if label == "" {
			label = p.Alias
		}
		providers = append(providers, map[string]any{
			"alias":       p.Alias,
			"label":       l.AdvancedMsg(label),
			"loginUrl":    p.LoginURL,
			"iconClasses": p.IconClasses,
		})
	}

	return view{
		header:         l.Msg("loginAccountTitle"),
		displayMessage: !pc.FieldMessages().ExistsError("username", "password"),
		info:           pc.Realm.Password && pc.Realm.RegistrationAllowed,
		social:         pc.Realm.Password && len(providers) > 0,
		data: map[string]any{
			"realmPassword":    pc.Realm.Password,
			"rememberMe":       pc.Realm.RememberMe,
			"rememberMeOn":     pc.Login.RememberMe,
			"resetAllowed":     pc.Realm.ResetPasswordAllowed,
			"usernameLabel":    usernameLabel,
			"username":         pc.Login.Username,
			"usernameAutofill": autocompleteUsername(props),
			"loginError":       loginError,
			"providers":        providers,
		},
	}, nil
}

func autocompleteUsername(props Props) string {
	if props.Context.Realm.RegistrationEmailAsUsername {
		return "email"
	}
	return "username"
}

package fixture

import (
	"github.com/goliatone/go-auththeme/pkg/page"
)

const (
	defaultRealm   = "myrealm"
	defaultLocale  = "en"
	realmBase      = "/realms/" + defaultRealm
	loginActions   = realmBase + "/login-actions"
	resourcesPath  = "/resources/auththeme"
	defaultAppBase = "https://app.example.com/"
)

var supportedLocales = []string{"en", "fr", "it"}

// defaultAttributes are the attributes every realm profile starts with.
func defaultAttributes() []page.Attribute {
	return []page.Attribute{
		{
			Name:        page.AttributeUsername,
			DisplayName: "${username}",
			Required:    true,
			Validators: map[string]map[string]any{
				"length": {"min": 3, "max": 255},
			},
		},
		{
			Name:        page.AttributeEmail,
			DisplayName: "${email}",
			Required:    true,
			Validators: map[string]map[string]any{
				"email":  {"ignore.empty.value": true},
				"length": {"max": 255},
			},
			Annotations: map[string]any{"inputType": "html5-email"},
		},
		{
			Name:        page.AttributeFirstName,
			DisplayName: "${firstName}",
			Required:    true,
			Validators: map[string]map[string]any{
				"length": {"max": 255},
			},
		},
		{
			Name:        page.AttributeLastName,
			DisplayName: "${lastName}",
			Required:    true,
			Validators: map[string]map[string]any{
				"length": {"max": 255},
			},
		},
	}
}

// defaultContext is the structural baseline of id before overrides.
func defaultContext(id page.ID) *page.Context {
	pc := &page.Context{
		PageID: id,
		URL: page.URLs{
			LoginAction:              loginActions + "/authenticate",
			LoginURL:                 realmBase + "/protocol/openid-connect/auth",
			RegistrationAction:       loginActions + "/registration",
			RegistrationURL:          realmBase + "/protocol/openid-connect/registrations",
			LoginResetCredentialsURL: loginActions + "/reset-credentials",
			LoginRestartFlowURL:      loginActions + "/restart",
			LogoutConfirmAction:      realmBase + "/protocol/openid-connect/logout/logout-confirm",
			ResourcesPath:            resourcesPath,
		},
		Realm: page.Realm{
			Name:                        defaultRealm,
			DisplayName:                 defaultRealm,
			InternationalizationEnabled: true,
			RegistrationAllowed:         true,
			LoginWithEmailAllowed:       true,
			RememberMe:                  true,
			ResetPasswordAllowed:        true,
			Password:                    true,
		},
		Locale: page.Locale{
			CurrentLanguageTag: defaultLocale,
			Supported:          localeOptions(),
		},
		Profile:          page.Profile{Attributes: defaultAttributes()},
		PasswordRequired: true,
		Client: page.Client{
			ClientID: "account",
			Name:     "Account",
			BaseURL:  defaultAppBase,
		},
	}

	switch id {
	case page.LoginVerifyEmail:
		pc.User = page.User{Username: "john.doe", Email: "john.doe@example.com"}
	case page.LogoutConfirm:
		pc.LogoutConfirm = page.LogoutConfirmForm{Code: "mock-session-code"}
	}
	return pc
}

func localeOptions() []page.LocaleOption {
	out := make([]page.LocaleOption, 0, len(supportedLocales))
	for _, tag := range supportedLocales {
		out = append(out, page.LocaleOption{
			LanguageTag: tag,
			URL:         loginActions + "/authenticate?kc_locale=" + tag,
		})
	}
	return out
}

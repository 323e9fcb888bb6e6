package page

// Context carries everything the identity backend computed for one request.
// Contexts are built once per request (or per fixture) and never mutated by
// the renderers.
type Context struct {
	PageID ID `json:"pageId"`

	URL    URLs   `json:"url"`
	Realm  Realm  `json:"realm"`
	Locale Locale `json:"locale"`

	Profile          Profile          `json:"profile"`
	MessagesPerField MessagesPerField `json:"-"`
	Message          *Message         `json:"message,omitempty"`

	PasswordPolicies        PasswordPolicies `json:"passwordPolicies"`
	PasswordRequired        bool             `json:"passwordRequired"`
	TermsAcceptanceRequired bool             `json:"termsAcceptanceRequired"`
	RecaptchaRequired       bool             `json:"recaptchaRequired"`
	RecaptchaSiteKey        string           `json:"recaptchaSiteKey,omitempty"`
	Scripts                 []string         `json:"scripts,omitempty"`

	Login         LoginForm         `json:"login"`
	Social        Social            `json:"social"`
	User          User              `json:"user"`
	Client        Client            `json:"client"`
	LogoutConfirm LogoutConfirmForm `json:"logoutConfirm"`

	// Extension holds free-form translation overrides outside the built-in
	// message catalog.
	Extension Extension `json:"extension"`
}

// FieldMessages returns the per-field message lookup, never nil.
func (c *Context) FieldMessages() MessagesPerField {
	if c == nil || c.MessagesPerField == nil {
		return NoFieldMessages{}
	}
	return c.MessagesPerField
}

// URLs lists the backend endpoints pages link or post to.
type URLs struct {
	LoginAction              string `json:"loginAction"`
	LoginURL                 string `json:"loginUrl"`
	RegistrationAction       string `json:"registrationAction"`
	RegistrationURL          string `json:"registrationUrl"`
	LoginResetCredentialsURL string `json:"loginResetCredentialsUrl"`
	LoginRestartFlowURL      string `json:"loginRestartFlowUrl"`
	LogoutConfirmAction      string `json:"logoutConfirmAction"`
	ResourcesPath            string `json:"resourcesPath"`
}

// Realm exposes the realm policy flags relevant to rendering.
type Realm struct {
	Name                        string `json:"name"`
	DisplayName                 string `json:"displayName"`
	DisplayNameHTML             string `json:"displayNameHtml"`
	InternationalizationEnabled bool   `json:"internationalizationEnabled"`
	RegistrationAllowed         bool   `json:"registrationAllowed"`
	RegistrationEmailAsUsername bool   `json:"registrationEmailAsUsername"`
	LoginWithEmailAllowed       bool   `json:"loginWithEmailAllowed"`
	RememberMe                  bool   `json:"rememberMe"`
	ResetPasswordAllowed        bool   `json:"resetPasswordAllowed"`
	Password                    bool   `json:"password"`
}

// Locale describes the active language and the switchable alternatives.
type Locale struct {
	CurrentLanguageTag string         `json:"currentLanguageTag"`
	Supported          []LocaleOption `json:"supported,omitempty"`
}

// LocaleOption is one entry of the language switcher.
type LocaleOption struct {
	LanguageTag string `json:"languageTag"`
	URL         string `json:"url"`
}

// Message is the page-level alert computed by the backend.
type Message struct {
	Type    string `json:"type" yaml:"type"`
	Summary string `json:"summary" yaml:"summary"`
}

// PasswordPolicies mirrors the realm password policy values the forms hint at.
// Zero means the policy is not configured.
type PasswordPolicies struct {
	Length int `json:"length,omitempty"`
}

// LoginForm carries the values re-rendered on a failed login attempt.
type LoginForm struct {
	Username   string `json:"username,omitempty"`
	RememberMe bool   `json:"rememberMe,omitempty"`
}

// Social lists identity providers offered on the login page.
type Social struct {
	Providers []IdentityProvider `json:"providers,omitempty"`
}

// IdentityProvider is one external login option.
type IdentityProvider struct {
	Alias       string `json:"alias" yaml:"alias"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	LoginURL    string `json:"loginUrl" yaml:"loginUrl"`
	IconClasses string `json:"iconClasses,omitempty" yaml:"iconClasses,omitempty"`
}

type User struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

type Client struct {
	ClientID string `json:"clientId,omitempty"`
	Name     string `json:"name,omitempty"`
	BaseURL  string `json:"baseUrl,omitempty"`
}

// LogoutConfirmForm carries the session code and link policy of the logout
// confirmation page.
type LogoutConfirmForm struct {
	Code     string `json:"code,omitempty"`
	SkipLink bool   `json:"skipLink,omitempty"`
}

// Extension is the namespace for custom message overrides.
type Extension struct {
	Messages map[string]string `json:"messages,omitempty"`
}

package fixture

import (
	"maps"
	"slices"
	"sort"
	"strings"

	"dario.cat/mergo"

	"github.com/goliatone/go-auththeme/pkg/page"
)

// Overrides is a partial page context. Nil pointers and nil slices keep the
// value underneath; maps merge key by key.
type Overrides struct {
	Realm RealmOverrides `yaml:"realm,omitempty"`

	// Locale sets locale.currentLanguageTag.
	Locale *string `yaml:"locale,omitempty"`

	// Attributes overrides profile attributes by name. A nil entry marks the
	// attribute absent: it is not rendered at all.
	Attributes map[string]*AttributeOverride `yaml:"attributes,omitempty"`

	// MessagesPerField maps field names to error messages. A blank message
	// clears the error.
	MessagesPerField map[string]string `yaml:"messagesPerField,omitempty"`

	// Messages are translation overrides under the extension namespace.
	Messages map[string]string `yaml:"messages,omitempty"`

	Message *page.Message `yaml:"message,omitempty"`

	TermsAcceptanceRequired *bool    `yaml:"termsAcceptanceRequired,omitempty"`
	PasswordRequired        *bool    `yaml:"passwordRequired,omitempty"`
	PasswordMinLength       *int     `yaml:"passwordMinLength,omitempty"`
	RecaptchaRequired       *bool    `yaml:"recaptchaRequired,omitempty"`
	RecaptchaSiteKey        *string  `yaml:"recaptchaSiteKey,omitempty"`
	Scripts                 []string `yaml:"scripts,omitempty"`

	LoginUsername   *string                 `yaml:"loginUsername,omitempty"`
	RememberMe      *bool                   `yaml:"rememberMe,omitempty"`
	UserEmail       *string                 `yaml:"userEmail,omitempty"`
	SocialProviders []page.IdentityProvider `yaml:"socialProviders,omitempty"`
	LogoutCode      *string                 `yaml:"logoutCode,omitempty"`
	SkipLink        *bool                   `yaml:"skipLink,omitempty"`
	ClientBaseURL   *string                 `yaml:"clientBaseUrl,omitempty"`

	// conflicts lists attribute names given more than once after trimming.
	// Merge carries them forward so Build still rejects the set.
	conflicts []string
}

// RealmOverrides toggles realm policy flags.
type RealmOverrides struct {
	Name                        *string `yaml:"name,omitempty"`
	DisplayName                 *string `yaml:"displayName,omitempty"`
	InternationalizationEnabled *bool   `yaml:"internationalizationEnabled,omitempty"`
	RegistrationAllowed         *bool   `yaml:"registrationAllowed,omitempty"`
	RegistrationEmailAsUsername *bool   `yaml:"registrationEmailAsUsername,omitempty"`
	LoginWithEmailAllowed       *bool   `yaml:"loginWithEmailAllowed,omitempty"`
	RememberMe                  *bool   `yaml:"rememberMe,omitempty"`
	ResetPasswordAllowed        *bool   `yaml:"resetPasswordAllowed,omitempty"`
	Password                    *bool   `yaml:"password,omitempty"`
}

// AttributeOverride changes one profile attribute. By default it applies on
// top of the attribute already present; Replace starts from an empty
// attribute instead.
type AttributeOverride struct {
	Replace     bool     `yaml:"replace,omitempty"`
	DisplayName *string  `yaml:"displayName,omitempty"`
	Required    *bool    `yaml:"required,omitempty"`
	ReadOnly    *bool    `yaml:"readOnly,omitempty"`
	Value       *string  `yaml:"value,omitempty"`
	Values      []string `yaml:"values,omitempty"`
	Group       *string  `yaml:"group,omitempty"`
	// Validators and Annotations merge by key; a nil value removes the key.
	Validators  map[string]map[string]any `yaml:"validators,omitempty"`
	Annotations map[string]any            `yaml:"annotations,omitempty"`
}

// Absent marks an attribute as not rendered.
func Absent() *AttributeOverride { return nil }

// Ptr returns a pointer to v, for building overrides inline.
func Ptr[T any](v T) *T { return &v }

// Merge composes two override sets field by field, b over a. Building with
// a then b is the same as building with Merge(a, b).
func Merge(a, b Overrides) Overrides {
	attrs, conflicts := mergeAttributes(a.Attributes, b.Attributes)
	out := Overrides{
		Realm:                   mergeRealm(a.Realm, b.Realm),
		Locale:                  pick(a.Locale, b.Locale),
		Attributes:              attrs,
		MessagesPerField:        mergeStrings(a.MessagesPerField, b.MessagesPerField),
		Messages:                mergeStrings(a.Messages, b.Messages),
		Message:                 pick(a.Message, b.Message),
		TermsAcceptanceRequired: pick(a.TermsAcceptanceRequired, b.TermsAcceptanceRequired),
		PasswordRequired:        pick(a.PasswordRequired, b.PasswordRequired),
		PasswordMinLength:       pick(a.PasswordMinLength, b.PasswordMinLength),
		RecaptchaRequired:       pick(a.RecaptchaRequired, b.RecaptchaRequired),
		RecaptchaSiteKey:        pick(a.RecaptchaSiteKey, b.RecaptchaSiteKey),
		Scripts:                 pickSlice(a.Scripts, b.Scripts),
		LoginUsername:           pick(a.LoginUsername, b.LoginUsername),
		RememberMe:              pick(a.RememberMe, b.RememberMe),
		UserEmail:               pick(a.UserEmail, b.UserEmail),
		SocialProviders:         pickSlice(a.SocialProviders, b.SocialProviders),
		LogoutCode:              pick(a.LogoutCode, b.LogoutCode),
		SkipLink:                pick(a.SkipLink, b.SkipLink),
		ClientBaseURL:           pick(a.ClientBaseURL, b.ClientBaseURL),
		conflicts:               unionSorted(a.conflicts, b.conflicts, conflicts),
	}
	return out
}

// MergeAll folds Merge over sets, left to right.
func MergeAll(sets ...Overrides) Overrides {
	var out Overrides
	for _, set := range sets {
		out = Merge(out, set)
	}
	return out
}

func mergeRealm(a, b RealmOverrides) RealmOverrides {
	return RealmOverrides{
		Name:                        pick(a.Name, b.Name),
		DisplayName:                 pick(a.DisplayName, b.DisplayName),
		InternationalizationEnabled: pick(a.InternationalizationEnabled, b.InternationalizationEnabled),
		RegistrationAllowed:         pick(a.RegistrationAllowed, b.RegistrationAllowed),
		RegistrationEmailAsUsername: pick(a.RegistrationEmailAsUsername, b.RegistrationEmailAsUsername),
		LoginWithEmailAllowed:       pick(a.LoginWithEmailAllowed, b.LoginWithEmailAllowed),
		RememberMe:                  pick(a.RememberMe, b.RememberMe),
		ResetPasswordAllowed:        pick(a.ResetPasswordAllowed, b.ResetPasswordAllowed),
		Password:                    pick(a.Password, b.Password),
	}
}

func mergeAttributes(a, b map[string]*AttributeOverride) (map[string]*AttributeOverride, []string) {
	if a == nil && b == nil {
		return nil, nil
	}
	left, leftConflicts := normalizeAttributes(a)
	right, rightConflicts := normalizeAttributes(b)

	out := make(map[string]*AttributeOverride, len(left)+len(right))
	for name, override := range left {
		out[name] = override.clone()
	}
	for name, next := range right {
		prev, seen := out[name]
		switch {
		case next == nil:
			out[name] = nil
		case seen && prev == nil:
			// Absent then re-added: the attribute starts over.
			fresh := next.clone()
			fresh.Replace = true
			out[name] = fresh
		case seen && !next.Replace:
			out[name] = prev.merge(next)
		default:
			out[name] = next.clone()
		}
	}
	return out, unionSorted(leftConflicts, rightConflicts)
}

// normalizeAttributes trims attribute names and drops blank ones. Keys that
// collide after trimming are reported; the last raw key in sorted order wins
// so the result never depends on map iteration order.
func normalizeAttributes(attrs map[string]*AttributeOverride) (map[string]*AttributeOverride, []string) {
	if attrs == nil {
		return nil, nil
	}
	out := make(map[string]*AttributeOverride, len(attrs))
	var conflicts []string
	for _, raw := range slices.Sorted(maps.Keys(attrs)) {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, dup := out[name]; dup {
			conflicts = append(conflicts, name)
		}
		out[name] = attrs[raw]
	}
	return out, conflicts
}

func unionSorted(sets ...[]string) []string {
	var out []string
	for _, set := range sets {
		out = append(out, set...)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return slices.Compact(out)
}

func (o *AttributeOverride) clone() *AttributeOverride {
	if o == nil {
		return nil
	}
	c := *o
	if o.Values != nil {
		c.Values = append([]string{}, o.Values...)
	}
	c.Validators = cloneValidators(o.Validators)
	if o.Annotations != nil {
		c.Annotations = maps.Clone(o.Annotations)
	}
	return &c
}

func (o *AttributeOverride) merge(next *AttributeOverride) *AttributeOverride {
	out := o.clone()
	out.DisplayName = pick(o.DisplayName, next.DisplayName)
	out.Required = pick(o.Required, next.Required)
	out.ReadOnly = pick(o.ReadOnly, next.ReadOnly)
	out.Value = pick(o.Value, next.Value)
	out.Values = pickSlice(o.Values, next.Values)
	out.Group = pick(o.Group, next.Group)
	if next.Validators != nil {
		if out.Validators == nil {
			out.Validators = map[string]map[string]any{}
		}
		for key, cfg := range next.Validators {
			out.Validators[key] = maps.Clone(cfg)
		}
	}
	if next.Annotations != nil {
		if out.Annotations == nil {
			out.Annotations = map[string]any{}
		}
		maps.Copy(out.Annotations, next.Annotations)
	}
	return out
}

// mergeStrings overlays b on a key by key. Keys missing from b keep their
// value from a; blank values in b still win.
func mergeStrings(a, b map[string]string) map[string]string {
	if a == nil && b == nil {
		return nil
	}
	out := make(map[string]string, len(a)+len(b))
	maps.Copy(out, a)
	if len(b) == 0 {
		return out
	}
	if err := mergo.Merge(&out, b, mergo.WithOverride); err != nil {
		maps.Copy(out, b)
		return out
	}
	for key, value := range b {
		if value == "" {
			out[key] = value
		}
	}
	return out
}

func cloneValidators(in map[string]map[string]any) map[string]map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]map[string]any, len(in))
	for key, cfg := range in {
		out[key] = maps.Clone(cfg)
	}
	return out
}

func pick[T any](a, b *T) *T {
	if b != nil {
		return b
	}
	return a
}

func pickSlice[T any](a, b []T) []T {
	if b != nil {
		return b
	}
	return a
}

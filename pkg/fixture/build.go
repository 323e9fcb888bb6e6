// Package fixture builds synthetic page contexts for previews and tests: a
// structural baseline per page with partial overrides applied on top.
package fixture

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-auththeme/pkg/page"
)

// TextCodeFixtureInconsistency tags fixtures whose field messages reference
// fields the page does not have.
const TextCodeFixtureInconsistency = "FIXTURE_INCONSISTENCY"

// builtinFields are form controls every page may carry besides the profile
// attributes.
var builtinFields = map[string]struct{}{
	page.AttributeUsername: {},
	page.AttributeEmail:    {},
	"password":             {},
	"password-confirm":     {},
	"termsAccepted":        {},
	"recaptcha":            {},
	"totp":                 {},
}

// Build returns the context of id with overrides applied in order. It fails
// with a FIXTURE_INCONSISTENCY validation error when a field message names a
// field that is neither an attribute, an absent attribute nor a built-in
// form control, or when one override set names an attribute twice once
// surrounding spaces are trimmed.
func Build(id page.ID, overrides ...Overrides) (*page.Context, error) {
	b := newBuilder(id)
	for _, o := range overrides {
		b.apply(o)
	}
	return b.finish()
}

// MustBuild is Build for static fixtures; it panics on error.
func MustBuild(id page.ID, overrides ...Overrides) *page.Context {
	pc, err := Build(id, overrides...)
	if err != nil {
		panic(err)
	}
	return pc
}

// IsInconsistency reports whether err came from the consistency check.
func IsInconsistency(err error) bool {
	var target *goerrors.Error
	if !errors.As(err, &target) {
		return false
	}
	return target.TextCode == TextCodeFixtureInconsistency
}

type builder struct {
	pc       *page.Context
	defaults []string
	attrs    map[string]page.Attribute
	absent   map[string]struct{}
	fields   map[string]string
	messages map[string]string

	conflicts map[string]struct{}
}

func newBuilder(id page.ID) *builder {
	pc := defaultContext(id)
	b := &builder{
		pc:     pc,
		attrs:  make(map[string]page.Attribute, len(pc.Profile.Attributes)),
		absent: map[string]struct{}{},

		conflicts: map[string]struct{}{},
	}
	for _, attr := range pc.Profile.Attributes {
		b.defaults = append(b.defaults, attr.Name)
		b.attrs[attr.Name] = attr
	}
	return b
}

func (b *builder) apply(o Overrides) {
	pc := b.pc
	applyRealm(&pc.Realm, o.Realm)

	if o.Locale != nil {
		pc.Locale.CurrentLanguageTag = strings.TrimSpace(*o.Locale)
	}
	if o.Message != nil {
		msg := *o.Message
		pc.Message = &msg
	}
	set(&pc.TermsAcceptanceRequired, o.TermsAcceptanceRequired)
	set(&pc.PasswordRequired, o.PasswordRequired)
	set(&pc.PasswordPolicies.Length, o.PasswordMinLength)
	set(&pc.RecaptchaRequired, o.RecaptchaRequired)
	set(&pc.RecaptchaSiteKey, o.RecaptchaSiteKey)
	set(&pc.Login.Username, o.LoginUsername)
	set(&pc.Login.RememberMe, o.RememberMe)
	set(&pc.User.Email, o.UserEmail)
	set(&pc.LogoutConfirm.Code, o.LogoutCode)
	set(&pc.LogoutConfirm.SkipLink, o.SkipLink)
	set(&pc.Client.BaseURL, o.ClientBaseURL)
	if o.Scripts != nil {
		pc.Scripts = slices.Clone(o.Scripts)
	}
	if o.SocialProviders != nil {
		pc.Social.Providers = slices.Clone(o.SocialProviders)
	}

	attrs, conflicts := normalizeAttributes(o.Attributes)
	for _, name := range unionSorted(o.conflicts, conflicts) {
		b.conflicts[name] = struct{}{}
	}
	for _, name := range slices.Sorted(maps.Keys(attrs)) {
		b.applyAttribute(name, attrs[name])
	}
	if o.MessagesPerField != nil {
		b.fields = mergeStrings(b.fields, o.MessagesPerField)
	}
	if o.Messages != nil {
		b.messages = mergeStrings(b.messages, o.Messages)
	}
}

func (b *builder) applyAttribute(name string, o *AttributeOverride) {
	if o == nil {
		delete(b.attrs, name)
		b.absent[name] = struct{}{}
		return
	}
	attr, ok := b.attrs[name]
	if !ok || o.Replace {
		attr = page.Attribute{Name: name}
	} else {
		attr = attr.Clone()
	}

	set(&attr.DisplayName, o.DisplayName)
	set(&attr.Required, o.Required)
	set(&attr.ReadOnly, o.ReadOnly)
	set(&attr.Value, o.Value)
	set(&attr.Group, o.Group)
	if o.Values != nil {
		attr.Values = slices.Clone(o.Values)
	}
	for key, cfg := range o.Validators {
		if cfg == nil {
			delete(attr.Validators, key)
			continue
		}
		if attr.Validators == nil {
			attr.Validators = map[string]map[string]any{}
		}
		attr.Validators[key] = maps.Clone(cfg)
	}
	for key, value := range o.Annotations {
		if value == nil {
			delete(attr.Annotations, key)
			continue
		}
		if attr.Annotations == nil {
			attr.Annotations = map[string]any{}
		}
		attr.Annotations[key] = value
	}
	b.attrs[name] = attr
}

func (b *builder) finish() (*page.Context, error) {
	pc := b.pc
	pc.Profile.Attributes = b.ordered()
	if len(b.fields) > 0 {
		pc.MessagesPerField = page.FieldMessages(maps.Clone(b.fields))
	}
	if len(b.messages) > 0 {
		pc.Extension.Messages = maps.Clone(b.messages)
	}

	if err := pc.Profile.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "fixture: invalid profile").
			WithTextCode(TextCodeFixtureInconsistency)
	}
	if err := b.checkConsistency(); err != nil {
		return nil, err
	}
	return pc, nil
}

// ordered lists default attributes in their baseline order followed by the
// added ones sorted by name. The order depends only on the final set of
// names, so applying overrides one by one or merged gives the same profile.
func (b *builder) ordered() []page.Attribute {
	out := make([]page.Attribute, 0, len(b.attrs))
	seen := make(map[string]struct{}, len(b.defaults))
	for _, name := range b.defaults {
		seen[name] = struct{}{}
		if attr, ok := b.attrs[name]; ok {
			out = append(out, attr)
		}
	}
	extra := make([]string, 0, len(b.attrs))
	for name := range b.attrs {
		if _, ok := seen[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		out = append(out, b.attrs[name])
	}
	return out
}

func (b *builder) checkConsistency() error {
	var problems []goerrors.FieldError
	for _, name := range slices.Sorted(maps.Keys(b.conflicts)) {
		problems = append(problems, goerrors.FieldError{
			Field:   name,
			Message: "attribute given more than once in one override set",
		})
	}
	names := slices.Sorted(maps.Keys(b.fields))
	for _, name := range names {
		if _, ok := b.attrs[name]; ok {
			continue
		}
		if _, ok := b.absent[name]; ok {
			continue
		}
		if _, ok := builtinFields[name]; ok {
			continue
		}
		problems = append(problems, goerrors.FieldError{
			Field:   name,
			Message: "no attribute or form control with this name",
			Value:   b.fields[name],
		})
	}
	if len(problems) == 0 {
		return nil
	}
	return goerrors.NewValidation(
		fmt.Sprintf("fixture: %s overrides are inconsistent", b.pc.PageID),
		problems...,
	).WithTextCode(TextCodeFixtureInconsistency)
}

func applyRealm(realm *page.Realm, o RealmOverrides) {
	set(&realm.Name, o.Name)
	set(&realm.DisplayName, o.DisplayName)
	set(&realm.InternationalizationEnabled, o.InternationalizationEnabled)
	set(&realm.RegistrationAllowed, o.RegistrationAllowed)
	set(&realm.RegistrationEmailAsUsername, o.RegistrationEmailAsUsername)
	set(&realm.LoginWithEmailAllowed, o.LoginWithEmailAllowed)
	set(&realm.RememberMe, o.RememberMe)
	set(&realm.ResetPasswordAllowed, o.ResetPasswordAllowed)
	set(&realm.Password, o.Password)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

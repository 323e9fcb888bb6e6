package i18n_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-auththeme/pkg/i18n"
	"github.com/goliatone/go-auththeme/pkg/page"
)

func TestBundleMatch(t *testing.T) {
	bundle := i18n.MustDefault()

	if diff := cmp.Diff([]string{"en", "fr", "it"}, bundle.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}

	cases := map[string]string{
		"it":             "it",
		"it-IT":          "it",
		"fr-CA,fr;q=0.9": "fr",
		"de":             "en",
		"":               "en",
		"not a tag !!":   "en",
	}
	for raw, want := range cases {
		if got := bundle.Match(raw); got != want {
			t.Fatalf("Match(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestLocalizerResolution(t *testing.T) {
	bundle := i18n.MustDefault()
	pc := &page.Context{
		Locale: page.Locale{CurrentLanguageTag: "it"},
		Extension: page.Extension{Messages: map[string]string{
			"profile.attributes.dob": "Data di Nascita",
			"doRegister":             "Crea account",
		}},
	}
	l := bundle.Localizer(pc)

	if l.Locale() != "it" {
		t.Fatalf("expected it locale, got %q", l.Locale())
	}
	if got := l.Msg("firstName"); got != "Nome" {
		t.Fatalf("expected Italian label, got %q", got)
	}
	if got := l.Msg("doRegister"); got != "Crea account" {
		t.Fatalf("extension override must win, got %q", got)
	}
	if got := l.AdvancedMsg("${profile.attributes.dob}"); got != "Data di Nascita" {
		t.Fatalf("unexpected advanced message %q", got)
	}
	if got := l.AdvancedMsg("Sign up to the newsletter"); got != "Sign up to the newsletter" {
		t.Fatalf("plain display names must pass through, got %q", got)
	}
	if got := l.Msg("emailVerifyInstruction1", "john@example.com"); !strings.Contains(got, "john@example.com") {
		t.Fatalf("expected argument substitution, got %q", got)
	}
	if got := l.Msg("unknown.key"); got != "unknown.key" {
		t.Fatalf("missing keys render as the key, got %q", got)
	}

	fr := bundle.ForLocale("fr")
	if got := fr.Msg("emailInstruction"); !strings.HasPrefix(got, "Enter your username") {
		t.Fatalf("expected base locale fallback, got %q", got)
	}
}

func TestLocalizerLabelAndHTML(t *testing.T) {
	bundle := i18n.MustDefault()
	l := bundle.Localizer(&page.Context{
		Extension: page.Extension{Messages: map[string]string{
			"termsText": "<a href='https://example.com/terms' onclick='x()'>Service Terms of Use</a><script>alert(1)</script>",
		}},
	})

	if got := l.Label(page.Attribute{Name: "email"}); got != "Email" {
		t.Fatalf("unexpected email label %q", got)
	}
	if got := l.Label(page.Attribute{Name: "favoritePet"}); got != "Favorite pet" {
		t.Fatalf("unexpected humanized label %q", got)
	}

	html := string(l.HTML("termsText"))
	if !strings.Contains(html, `href="https://example.com/terms"`) {
		t.Fatalf("expected link to survive sanitizing, got %s", html)
	}
	if strings.Contains(html, "script") || strings.Contains(html, "onclick") {
		t.Fatalf("expected unsafe markup to be stripped, got %s", html)
	}
}

func TestLocalizerLanguages(t *testing.T) {
	bundle := i18n.MustDefault()
	l := bundle.Localizer(&page.Context{Locale: page.Locale{
		CurrentLanguageTag: "it",
		Supported: []page.LocaleOption{
			{LanguageTag: "en", URL: "?kc_locale=en"},
			{LanguageTag: "it", URL: "?kc_locale=it"},
		},
	}})

	langs := l.Languages()
	if len(langs) != 2 {
		t.Fatalf("expected 2 languages, got %d", len(langs))
	}
	if langs[0].Active || !langs[1].Active {
		t.Fatalf("expected it to be active: %+v", langs)
	}
	if langs[1].Label != "italiano" {
		t.Fatalf("expected self-name label, got %q", langs[1].Label)
	}
}

func TestLoadFromFSValidatesCatalogs(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/it.yaml": {Data: []byte("locale: it\nmessages:\n  a: b\n")},
	}
	if _, err := i18n.LoadFromFS(fsys, "locales"); err == nil {
		t.Fatalf("expected missing base locale error")
	}

	fsys = fstest.MapFS{
		"locales/en.yaml": {Data: []byte("locale: it\nmessages:\n  a: b\n")},
	}
	if _, err := i18n.LoadFromFS(fsys, "locales"); err == nil {
		t.Fatalf("expected locale/file name mismatch error")
	}

	fsys = fstest.MapFS{
		"locales/en.yaml": {Data: []byte("locale: en\nmessages:\n  greeting: Hello {0}\n")},
	}
	bundle, err := i18n.LoadFromFS(fsys, "locales")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, err := bundle.Translate("en", "greeting", "Ada")
	if err != nil || got != "Hello Ada" {
		t.Fatalf("unexpected translation %q (%v)", got, err)
	}
	if _, err := bundle.Translate("en", "missing"); err == nil {
		t.Fatalf("expected missing translation error")
	}
}

func TestTemplateFuncs(t *testing.T) {
	l := i18n.MustDefault().ForLocale("en")
	funcs := l.TemplateFuncs(i18n.TemplateFuncsConfig{})
	for _, name := range []string{"msg", "msgHTML", "advancedMsg", "advancedMsgHTML", "hasMsg"} {
		if _, ok := funcs[name]; !ok {
			t.Fatalf("expected helper %q", name)
		}
	}
	msg := funcs["msg"].(func(string, ...any) string)
	if got := msg("loginTitle", "Acme"); got != "Sign in to Acme" {
		t.Fatalf("unexpected msg output %q", got)
	}

	prefixed := l.TemplateFuncs(i18n.TemplateFuncsConfig{Prefix: "kc"})
	if _, ok := prefixed["kcMsg"]; !ok {
		t.Fatalf("expected prefixed helper kcMsg")
	}
}

package i18n

import (
	"fmt"
	"html/template"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/goliatone/go-auththeme/pkg/page"
)

var (
	advancedKeyPattern = regexp.MustCompile(`\$\{([^}]+)\}`)
	argPattern         = regexp.MustCompile(`\{(\d+)\}`)

	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Localizer is the translation accessor handed to page renderers. It resolves
// keys for one locale, letting extension overrides win over the catalog.
type Localizer struct {
	bundle    *Bundle
	locale    string
	overrides map[string]string
	supported []page.LocaleOption
}

// Localizer resolves the locale of pc and binds its extension overrides.
func (b *Bundle) Localizer(pc *page.Context) *Localizer {
	l := &Localizer{bundle: b, locale: BaseLocale}
	if pc == nil {
		return l
	}
	l.locale = b.Match(pc.Locale.CurrentLanguageTag)
	l.overrides = pc.Extension.Messages
	l.supported = pc.Locale.Supported
	return l
}

// ForLocale returns a localizer without extension overrides.
func (b *Bundle) ForLocale(tag string) *Localizer {
	return &Localizer{bundle: b, locale: b.Match(tag)}
}

// Locale returns the negotiated catalog locale.
func (l *Localizer) Locale() string {
	if l == nil {
		return BaseLocale
	}
	return l.locale
}

// Msg resolves key and substitutes {0}-style arguments. Missing keys render
// as the key itself.
func (l *Localizer) Msg(key string, args ...any) string {
	msg, ok := l.lookup(key)
	if !ok {
		return key
	}
	return formatArgs(msg, args...)
}

// Has reports whether key resolves to a message.
func (l *Localizer) Has(key string) bool {
	_, ok := l.lookup(key)
	return ok
}

// AdvancedMsg resolves display strings that embed keys as ${key}. Plain
// strings are treated as keys when one matches and returned as-is otherwise.
func (l *Localizer) AdvancedMsg(raw string) string {
	if strings.Contains(raw, "${") {
		return advancedKeyPattern.ReplaceAllStringFunc(raw, func(match string) string {
			key := strings.TrimSpace(match[2 : len(match)-1])
			if msg, ok := l.lookup(key); ok {
				return msg
			}
			return key
		})
	}
	if msg, ok := l.lookup(raw); ok {
		return msg
	}
	return raw
}

// HTML resolves key and returns the message sanitized for inline markup.
func (l *Localizer) HTML(key string, args ...any) template.HTML {
	return sanitize(l.Msg(key, args...))
}

// AdvancedHTML is AdvancedMsg with sanitized markup.
func (l *Localizer) AdvancedHTML(raw string) template.HTML {
	return sanitize(l.AdvancedMsg(raw))
}

// Label returns the display label of a profile attribute.
func (l *Localizer) Label(attr page.Attribute) string {
	if display := strings.TrimSpace(attr.DisplayName); display != "" {
		return l.AdvancedMsg(display)
	}
	if msg, ok := l.lookup(attr.Name); ok {
		return msg
	}
	return humanize(attr.Name)
}

// Language is one entry of the language switcher.
type Language struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// Languages lists the switchable languages declared by the page context,
// labelled in their own language.
func (l *Localizer) Languages() []Language {
	if l == nil || len(l.supported) == 0 {
		return nil
	}
	out := make([]Language, 0, len(l.supported))
	for _, option := range l.supported {
		tag, err := language.Parse(option.LanguageTag)
		label := option.LanguageTag
		if err == nil {
			if name := display.Self.Name(tag); name != "" {
				label = name
			}
		}
		out = append(out, Language{
			Tag:    option.LanguageTag,
			Label:  label,
			URL:    option.URL,
			Active: l.bundle.Match(option.LanguageTag) == l.locale,
		})
	}
	return out
}

// CurrentLanguageLabel returns the active locale's self-name ("italiano").
func (l *Localizer) CurrentLanguageLabel() string {
	tag, err := language.Parse(l.Locale())
	if err != nil {
		return l.Locale()
	}
	return display.Self.Name(tag)
}

func (l *Localizer) lookup(key string) (string, bool) {
	if l == nil {
		return "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}
	if msg, ok := l.overrides[key]; ok {
		return msg, true
	}
	return l.bundle.Lookup(l.locale, key)
}

func formatArgs(msg string, args ...any) string {
	if len(args) == 0 {
		return msg
	}
	return argPattern.ReplaceAllStringFunc(msg, func(match string) string {
		idx, err := strconv.Atoi(match[1 : len(match)-1])
		if err != nil || idx >= len(args) {
			return match
		}
		return fmt.Sprint(args[idx])
	})
}

func sanitize(raw string) template.HTML {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
		p.RequireNoReferrerOnLinks(true)
		policy = p
	})
	return template.HTML(strings.TrimSpace(policy.Sanitize(raw)))
}

func humanize(name string) string {
	if name == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range name {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		case r == '-' || r == '_':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

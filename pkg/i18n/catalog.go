// Package i18n resolves translated messages for the authentication pages.
// Catalogs are embedded YAML files, one per locale; the active locale is
// negotiated with golang.org/x/text/language and the page context's extension
// namespace overrides catalog entries.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other catalog falls back to.
const BaseLocale = "en"

// ErrMissingTranslation is reported when no catalog defines a key.
var ErrMissingTranslation = errors.New("i18n: missing translation")

//go:embed locales/*.yaml
var embeddedCatalogs embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle stores the message catalogs of every supported locale.
type Bundle struct {
	locales map[string]map[string]string
	tags    []language.Tag
	names   []string
	matcher language.Matcher
}

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
	defaultErr    error
)

// Default returns the bundle built from the embedded catalogs.
func Default() (*Bundle, error) {
	defaultOnce.Do(func() {
		defaultBundle, defaultErr = LoadFromFS(embeddedCatalogs, "locales")
	})
	return defaultBundle, defaultErr
}

// MustDefault mirrors Default but panics on error.
func MustDefault() *Bundle {
	bundle, err := Default()
	if err != nil {
		panic(err)
	}
	return bundle
}

// LoadFromFS reads every *.yaml catalog under dir.
func LoadFromFS(fsys fs.FS, dir string) (*Bundle, error) {
	if fsys == nil {
		return nil, errors.New("i18n: catalog filesystem is required")
	}
	paths, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("i18n: glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("i18n: no catalogs found in %q", dir)
	}
	sort.Strings(paths)

	bundle := &Bundle{locales: map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("i18n: read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("i18n: parse catalog %s: %w", p, err)
		}
		if err := bundle.add(p, file); err != nil {
			return nil, err
		}
	}

	if _, ok := bundle.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("i18n: base locale %q has no catalog", BaseLocale)
	}
	bundle.index()
	return bundle, nil
}

func (b *Bundle) add(p string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	fromPath := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if locale == "" {
		return fmt.Errorf("i18n: catalog %s: locale is required", p)
	}
	if locale != fromPath {
		return fmt.Errorf("i18n: catalog %s: locale %q must match file name %q", p, locale, fromPath)
	}
	if _, err := language.Parse(locale); err != nil {
		return fmt.Errorf("i18n: catalog %s: parse locale: %w", p, err)
	}
	if _, exists := b.locales[locale]; exists {
		return fmt.Errorf("i18n: catalog %s: locale %q defined twice", p, locale)
	}

	messages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		trimmed := strings.TrimSpace(key)
		if trimmed == "" {
			return fmt.Errorf("i18n: catalog %s: blank message key", p)
		}
		messages[trimmed] = value
	}
	b.locales[locale] = messages
	return nil
}

func (b *Bundle) index() {
	b.names = b.names[:0]
	for locale := range b.locales {
		if locale == BaseLocale {
			continue
		}
		b.names = append(b.names, locale)
	}
	sort.Strings(b.names)
	// The base locale goes first so the matcher falls back to it.
	b.names = append([]string{BaseLocale}, b.names...)

	b.tags = make([]language.Tag, 0, len(b.names))
	for _, name := range b.names {
		b.tags = append(b.tags, language.MustParse(name))
	}
	b.matcher = language.NewMatcher(b.tags)
}

// Locales returns the supported locale names, base locale first.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	return append([]string(nil), b.names...)
}

// Match negotiates the catalog locale for a language tag such as "it-IT".
// Unknown or malformed tags resolve to the base locale.
func (b *Bundle) Match(raw ...string) string {
	if b == nil || b.matcher == nil {
		return BaseLocale
	}
	var tags []language.Tag
	for _, value := range raw {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(value)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return BaseLocale
	}
	_, idx, confidence := b.matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(b.names) {
		return BaseLocale
	}
	return b.names[idx]
}

// Lookup returns a raw catalog message, falling back to the base locale.
func (b *Bundle) Lookup(locale, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}
	if messages, ok := b.locales[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg, true
		}
	}
	if locale != BaseLocale {
		msg, ok := b.locales[BaseLocale][key]
		return msg, ok
	}
	return "", false
}

// Translate satisfies the translator contract used by template helpers.
func (b *Bundle) Translate(locale, key string, args ...any) (string, error) {
	msg, ok := b.Lookup(b.Match(locale), key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingTranslation, key)
	}
	return formatArgs(msg, args...), nil
}

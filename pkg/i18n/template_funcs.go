package i18n

import (
	"strings"
)

// TemplateFuncsConfig customises the helper names injected into templates.
type TemplateFuncsConfig struct {
	// Prefix is prepended to every helper name (defaults to none).
	Prefix string
}

// TemplateFuncs returns the translation helpers page templates call:
//
//	msg(key, ...args) string
//	msgHTML(key, ...args) template.HTML
//	advancedMsg(raw) string
//	advancedMsgHTML(raw) template.HTML
//	hasMsg(key) bool
func (l *Localizer) TemplateFuncs(cfg TemplateFuncsConfig) map[string]any {
	prefix := strings.TrimSpace(cfg.Prefix)
	name := func(base string) string {
		if prefix == "" {
			return base
		}
		return prefix + strings.ToUpper(base[:1]) + base[1:]
	}

	return map[string]any{
		name("msg"): func(key string, args ...any) string {
			return l.Msg(key, args...)
		},
		name("msgHTML"): func(key string, args ...any) string {
			return string(l.HTML(key, args...))
		},
		name("advancedMsg"): func(raw string) string {
			return l.AdvancedMsg(raw)
		},
		name("advancedMsgHTML"): func(raw string) string {
			return string(l.AdvancedHTML(raw))
		},
		name("hasMsg"): func(key string) bool {
			return l.Has(key)
		},
	}
}

package page

import "strings"

// MessagesPerField is queried by field widgets to decide whether to render an
// error state and which message to show.
type MessagesPerField interface {
	ExistsError(fieldNames ...string) bool
	Get(fieldName string) (string, bool)
}

// FieldMessages is a map backed MessagesPerField. A field with a non-empty
// message is in error.
type FieldMessages map[string]string

func (m FieldMessages) ExistsError(fieldNames ...string) bool {
	for _, name := range fieldNames {
		if msg, ok := m[name]; ok && strings.TrimSpace(msg) != "" {
			return true
		}
	}
	return false
}

func (m FieldMessages) Get(fieldName string) (string, bool) {
	msg, ok := m[fieldName]
	if !ok || strings.TrimSpace(msg) == "" {
		return "", false
	}
	return msg, true
}

// FirstError returns the message of the first field in error.
func FirstError(messages MessagesPerField, fieldNames ...string) (string, bool) {
	if messages == nil {
		return "", false
	}
	for _, name := range fieldNames {
		if !messages.ExistsError(name) {
			continue
		}
		if msg, ok := messages.Get(name); ok {
			return msg, true
		}
	}
	return "", false
}

// NoFieldMessages reports no errors for any field.
type NoFieldMessages struct{}

func (NoFieldMessages) ExistsError(...string) bool { return false }

func (NoFieldMessages) Get(string) (string, bool) { return "", false }

package fields

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-auththeme/pkg/i18n"
	"github.com/goliatone/go-auththeme/pkg/page"
	"github.com/goliatone/go-auththeme/pkg/styles"
)

// Widget kinds the template knows how to draw.
const (
	KindInput      = "input"
	KindTextarea   = "textarea"
	KindSelect     = "select"
	KindRadios     = "radios"
	KindCheckboxes = "checkboxes"
)

// Option is one choice of a select, radio or checkbox group.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Field is the view model of one attribute.
type Field struct {
	Name         string
	ID           string
	Label        string
	Kind         string
	InputType    string
	Value        string
	Required     bool
	ReadOnly     bool
	Multiple     bool
	Options      []Option
	Autocomplete string
	Placeholder  string
	MinLength    string
	MaxLength    string
	Pattern      string
	HelperBefore string
	HelperAfter  string
	HasError     bool
	Error        string
}

func (f Field) toMap() map[string]any {
	options := make([]map[string]any, 0, len(f.Options))
	for _, opt := range f.Options {
		options = append(options, map[string]any{
			"value":    opt.Value,
			"label":    opt.Label,
			"selected": opt.Selected,
		})
	}
	return map[string]any{
		"name":         f.Name,
		"id":           f.ID,
		"label":        f.Label,
		"kind":         f.Kind,
		"inputType":    f.InputType,
		"value":        f.Value,
		"required":     f.Required,
		"readOnly":     f.ReadOnly,
		"multiple":     f.Multiple,
		"options":      options,
		"autocomplete": f.Autocomplete,
		"placeholder":  f.Placeholder,
		"minLength":    f.MinLength,
		"maxLength":    f.MaxLength,
		"pattern":      f.Pattern,
		"helperBefore": f.HelperBefore,
		"helperAfter":  f.HelperAfter,
		"hasError":     f.HasError,
		"error":        f.Error,
	}
}

var autocompleteHints = map[string]string{
	page.AttributeUsername:  "username",
	page.AttributeEmail:     "email",
	page.AttributeFirstName: "given-name",
	page.AttributeLastName:  "family-name",
}

// BuildFields converts the profile attributes into view models, skipping
// attributes the realm policy hides.
func BuildFields(pc *page.Context, l *i18n.Localizer, exclude ...string) []Field {
	if pc == nil {
		return nil
	}
	skip := make(map[string]struct{}, len(exclude)+1)
	for _, name := range exclude {
		skip[name] = struct{}{}
	}
	if pc.Realm.RegistrationEmailAsUsername {
		skip[page.AttributeUsername] = struct{}{}
	}

	messages := pc.FieldMessages()
	out := make([]Field, 0, len(pc.Profile.Attributes))
	for _, attr := range pc.Profile.Attributes {
		if _, hidden := skip[attr.Name]; hidden {
			continue
		}
		out = append(out, buildField(attr, l, messages))
	}
	return out
}

func buildField(attr page.Attribute, l *i18n.Localizer, messages page.MessagesPerField) Field {
	field := Field{
		Name:         attr.Name,
		ID:           attr.Name,
		Label:        l.Label(attr),
		Required:     attr.Required,
		ReadOnly:     attr.ReadOnly,
		Value:        attr.Value,
		Autocomplete: autocompleteHints[attr.Name],
	}

	field.Kind, field.InputType, field.Multiple = widget(attr)

	if placeholder := attr.Annotation("inputTypePlaceholder"); placeholder != "" {
		field.Placeholder = l.AdvancedMsg(placeholder)
	}
	if helper := attr.Annotation("inputHelperTextBefore"); helper != "" {
		field.HelperBefore = string(l.AdvancedHTML(helper))
	}
	if helper := attr.Annotation("inputHelperTextAfter"); helper != "" {
		field.HelperAfter = string(l.AdvancedHTML(helper))
	}

	if cfg, ok := attr.Validator("length"); ok {
		field.MinLength = numberString(cfg["min"])
		field.MaxLength = numberString(cfg["max"])
	}
	if cfg, ok := attr.Validator("pattern"); ok {
		field.Pattern = strings.TrimSpace(fmt.Sprint(cfg["pattern"]))
	}

	if field.Kind != KindInput && field.Kind != KindTextarea {
		field.Options = options(attr, l)
	}

	if messages.ExistsError(attr.Name) {
		field.HasError = true
		if msg, ok := messages.Get(attr.Name); ok {
			field.Error = string(l.AdvancedHTML(msg))
		}
	}
	return field
}

func widget(attr page.Attribute) (kind, inputType string, multiple bool) {
	declared := attr.Annotation("inputType")
	switch {
	case declared == "textarea":
		return KindTextarea, "", false
	case declared == "select":
		return KindSelect, "", false
	case declared == "multiselect":
		return KindSelect, "", true
	case declared == "select-radiobuttons":
		return KindRadios, "radio", false
	case declared == "multiselect-checkboxes":
		return KindCheckboxes, "checkbox", true
	case strings.HasPrefix(declared, "html5-"):
		return KindInput, strings.TrimPrefix(declared, "html5-"), false
	case declared != "" && declared != "text":
		return KindInput, "text", false
	}

	if _, ok := attr.Validator("options"); ok && declared == "" {
		return KindSelect, "", false
	}
	if attr.Name == page.AttributeEmail {
		return KindInput, "email", false
	}
	return KindInput, "text", false
}

func options(attr page.Attribute, l *i18n.Localizer) []Option {
	cfg, ok := attr.Validator("options")
	if !ok {
		return nil
	}
	values := stringList(cfg["options"])

	selected := map[string]struct{}{}
	if attr.Value != "" {
		selected[attr.Value] = struct{}{}
	}
	for _, v := range attr.Values {
		selected[v] = struct{}{}
	}

	labels := map[string]string{}
	if raw, ok := attr.Annotations["inputOptionLabels"].(map[string]any); ok {
		for key, value := range raw {
			labels[key] = l.AdvancedMsg(fmt.Sprint(value))
		}
	}
	prefix := attr.Annotation("inputOptionLabelsI18nPrefix")

	out := make([]Option, 0, len(values))
	for _, value := range values {
		label, ok := labels[value]
		if !ok && prefix != "" {
			label = l.Msg(prefix + "." + value)
		}
		if label == "" {
			label = value
		}
		_, isSelected := selected[value]
		out = append(out, Option{Value: value, Label: label, Selected: isSelected})
	}
	return out
}

func stringList(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		return keys
	default:
		return nil
	}
}

func numberString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strings.TrimSpace(v)
	default:
		return fmt.Sprint(v)
	}
}

// classNames resolves the class attributes the field template uses.
func classNames(classes styles.ClassMap, useDefault bool) map[string]string {
	return map[string]string{
		"group":        classes.Class(styles.KcFormGroupClass, useDefault),
		"labelWrapper": classes.Class(styles.KcLabelWrapperClass, useDefault),
		"label":        classes.Class(styles.KcLabelClass, useDefault),
		"inputWrapper": classes.Class(styles.KcInputWrapperClass, useDefault),
		"input":        classes.Class(styles.KcInputClass, useDefault),
		"error":        classes.Class(styles.KcInputErrorMessageClass, useDefault),
		"helperBefore": classes.Class(styles.KcInputHelperTextBeforeClass, useDefault),
		"helperAfter":  classes.Class(styles.KcInputHelperTextAfterClass, useDefault),
		"checkbox":     classes.Class(styles.KcCheckboxInputClass, useDefault),
	}
}

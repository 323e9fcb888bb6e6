package page

import (
	"fmt"
	"strings"
)

// Well-known attribute names provided by every realm user profile.
const (
	AttributeUsername  = "username"
	AttributeEmail     = "email"
	AttributeFirstName = "firstName"
	AttributeLastName  = "lastName"
)

// Attribute describes one user profile field.
type Attribute struct {
	Name        string                    `json:"name"`
	DisplayName string                    `json:"displayName,omitempty"`
	Required    bool                      `json:"required"`
	ReadOnly    bool                      `json:"readOnly"`
	Value       string                    `json:"value,omitempty"`
	Values      []string                  `json:"values,omitempty"`
	Group       string                    `json:"group,omitempty"`
	Validators  map[string]map[string]any `json:"validators,omitempty"`
	Annotations map[string]any            `json:"annotations,omitempty"`
}

// Annotation returns the string form of an annotation, or "" when unset.
func (a Attribute) Annotation(key string) string {
	if a.Annotations == nil {
		return ""
	}
	switch v := a.Annotations[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Validator returns the configuration of the named validator.
func (a Attribute) Validator(name string) (map[string]any, bool) {
	if a.Validators == nil {
		return nil, false
	}
	cfg, ok := a.Validators[name]
	return cfg, ok
}

// Clone returns a deep copy so fixtures can be derived without aliasing.
func (a Attribute) Clone() Attribute {
	out := a
	if a.Values != nil {
		out.Values = append([]string(nil), a.Values...)
	}
	if a.Validators != nil {
		out.Validators = make(map[string]map[string]any, len(a.Validators))
		for name, cfg := range a.Validators {
			out.Validators[name] = cloneAnyMap(cfg)
		}
	}
	out.Annotations = cloneAnyMap(a.Annotations)
	return out
}

// Profile holds the user profile attributes in display order.
type Profile struct {
	Attributes []Attribute `json:"attributes"`
}

// AttributesByName indexes the attributes by name.
func (p Profile) AttributesByName() map[string]Attribute {
	out := make(map[string]Attribute, len(p.Attributes))
	for _, attr := range p.Attributes {
		out[attr.Name] = attr
	}
	return out
}

// Attribute looks up one attribute by name.
func (p Profile) Attribute(name string) (Attribute, bool) {
	for _, attr := range p.Attributes {
		if attr.Name == name {
			return attr, true
		}
	}
	return Attribute{}, false
}

// Validate checks attribute names are present and unique.
func (p Profile) Validate() error {
	seen := make(map[string]struct{}, len(p.Attributes))
	for i, attr := range p.Attributes {
		name := strings.TrimSpace(attr.Name)
		if name == "" {
			return fmt.Errorf("page: attribute %d has no name", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("page: duplicate attribute %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func cloneAnyMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		switch v := value.(type) {
		case map[string]any:
			out[key] = cloneAnyMap(v)
		case []any:
			out[key] = append([]any(nil), v...)
		case []string:
			out[key] = append([]string(nil), v...)
		default:
			out[key] = v
		}
	}
	return out
}

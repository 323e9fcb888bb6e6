package styles

import (
	"sort"
	"strings"
)

// ClassKey names a semantic UI slot a stylesheet can target.
type ClassKey string

const (
	KcHtmlClass                  ClassKey = "kcHtmlClass"
	KcBodyClass                  ClassKey = "kcBodyClass"
	KcLoginClass                 ClassKey = "kcLoginClass"
	KcHeaderClass                ClassKey = "kcHeaderClass"
	KcHeaderWrapperClass         ClassKey = "kcHeaderWrapperClass"
	KcFormCardClass              ClassKey = "kcFormCardClass"
	KcFormHeaderClass            ClassKey = "kcFormHeaderClass"
	KcLocaleMainClass            ClassKey = "kcLocaleMainClass"
	KcContentWrapperClass        ClassKey = "kcContentWrapperClass"
	KcFormClass                  ClassKey = "kcFormClass"
	KcFormGroupClass             ClassKey = "kcFormGroupClass"
	KcLabelWrapperClass          ClassKey = "kcLabelWrapperClass"
	KcLabelClass                 ClassKey = "kcLabelClass"
	KcInputWrapperClass          ClassKey = "kcInputWrapperClass"
	KcInputClass                 ClassKey = "kcInputClass"
	KcInputErrorMessageClass     ClassKey = "kcInputErrorMessageClass"
	KcInputHelperTextBeforeClass ClassKey = "kcInputHelperTextBeforeClass"
	KcInputHelperTextAfterClass  ClassKey = "kcInputHelperTextAfterClass"
	KcCheckboxInputClass         ClassKey = "kcCheckboxInputClass"
	KcFormOptionsClass           ClassKey = "kcFormOptionsClass"
	KcFormOptionsWrapperClass    ClassKey = "kcFormOptionsWrapperClass"
	KcFormSettingClass           ClassKey = "kcFormSettingClass"
	KcFormButtonsClass           ClassKey = "kcFormButtonsClass"
	KcFormSocialAccountListClass ClassKey = "kcFormSocialAccountListClass"
	KcButtonClass                ClassKey = "kcButtonClass"
	KcButtonPrimaryClass         ClassKey = "kcButtonPrimaryClass"
	KcButtonDefaultClass         ClassKey = "kcButtonDefaultClass"
	KcButtonBlockClass           ClassKey = "kcButtonBlockClass"
	KcButtonLargeClass           ClassKey = "kcButtonLargeClass"
	KcAlertClass                 ClassKey = "kcAlertClass"
	KcAlertTitleClass            ClassKey = "kcAlertTitleClass"
	KcRecaptchaClass             ClassKey = "kcRecaptchaClass"
)

var allClassKeys = []ClassKey{
	KcHtmlClass, KcBodyClass, KcLoginClass, KcHeaderClass, KcHeaderWrapperClass,
	KcFormCardClass, KcFormHeaderClass, KcLocaleMainClass, KcContentWrapperClass,
	KcFormClass, KcFormGroupClass, KcLabelWrapperClass, KcLabelClass,
	KcInputWrapperClass, KcInputClass, KcInputErrorMessageClass,
	KcInputHelperTextBeforeClass, KcInputHelperTextAfterClass, KcCheckboxInputClass,
	KcFormOptionsClass, KcFormOptionsWrapperClass, KcFormSettingClass,
	KcFormButtonsClass, KcFormSocialAccountListClass, KcButtonClass,
	KcButtonPrimaryClass, KcButtonDefaultClass, KcButtonBlockClass,
	KcButtonLargeClass, KcAlertClass, KcAlertTitleClass, KcRecaptchaClass,
}

// ClassKeys returns every semantic class key.
func ClassKeys() []ClassKey {
	return append([]ClassKey(nil), allClassKeys...)
}

// defaultClasses is the framework default styling, applied only when a page
// opts into default CSS.
var defaultClasses = ClassMap{
	KcHtmlClass:                  "login-pf",
	KcLoginClass:                 "login-pf-page",
	KcHeaderWrapperClass:         "login-pf-header",
	KcFormCardClass:              "card-pf",
	KcLocaleMainClass:            "kc-dropdown",
	KcFormGroupClass:             "form-group",
	KcLabelWrapperClass:          "col-xs-12 col-sm-12 col-md-12 col-lg-12",
	KcLabelClass:                 "control-label",
	KcInputWrapperClass:          "col-xs-12 col-sm-12 col-md-12 col-lg-12",
	KcInputClass:                 "form-control",
	KcInputErrorMessageClass:     "help-block",
	KcInputHelperTextBeforeClass: "help-block",
	KcInputHelperTextAfterClass:  "help-block",
	KcFormOptionsClass:           "col-xs-12 col-sm-12 col-md-12 col-lg-12",
	KcFormButtonsClass:           "col-xs-12 col-sm-12 col-md-12 col-lg-12",
	KcFormSettingClass:           "login-pf-settings",
	KcButtonClass:                "btn",
	KcButtonPrimaryClass:         "btn-primary",
	KcButtonDefaultClass:         "btn-default",
	KcButtonBlockClass:           "btn-block",
	KcButtonLargeClass:           "btn-lg",
	KcAlertClass:                 "alert",
	KcAlertTitleClass:            "alert-title",
}

// DefaultClasses returns a copy of the framework default class names.
func DefaultClasses() ClassMap {
	return defaultClasses.Clone()
}

// ClassMap maps semantic keys to class name overrides. Missing or empty
// entries mean "framework default".
type ClassMap map[ClassKey]string

// Clone returns an independent copy.
func (m ClassMap) Clone() ClassMap {
	out := make(ClassMap, len(m))
	for key, value := range m {
		out[key] = value
	}
	return out
}

// With returns a copy of m overlaid by overlay.
func (m ClassMap) With(overlay ClassMap) ClassMap {
	out := m.Clone()
	for key, value := range overlay {
		out[key] = value
	}
	return out
}

// Keys returns the keys set in m, sorted.
func (m ClassMap) Keys() []ClassKey {
	keys := make([]ClassKey, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Class composes the class attribute for key: the key itself as a stable
// hook, the framework default when useDefault is set, then the override.
func (m ClassMap) Class(key ClassKey, useDefault bool) string {
	parts := []string{string(key)}
	if useDefault {
		if def := strings.TrimSpace(defaultClasses[key]); def != "" {
			parts = append(parts, def)
		}
	}
	if override := strings.TrimSpace(m[key]); override != "" {
		parts = append(parts, override)
	}
	return strings.Join(parts, " ")
}

// Resolve computes the class attribute of every key.
func (m ClassMap) Resolve(useDefault bool) map[string]string {
	out := make(map[string]string, len(allClassKeys))
	for _, key := range allClassKeys {
		out[string(key)] = m.Class(key, useDefault)
	}
	return out
}

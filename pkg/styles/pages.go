package styles

import "github.com/goliatone/go-auththeme/pkg/page"

// BaseStylesheet is the asset key of the stylesheet every page loads.
const BaseStylesheet = "stylesheet.base"

// baseClasses apply to every page.
var baseClasses = ClassMap{
	KcHtmlClass:              "auth-html",
	KcBodyClass:              "auth-body",
	KcLoginClass:             "auth-shell",
	KcHeaderClass:            "auth-header",
	KcFormCardClass:          "auth-card",
	KcFormHeaderClass:        "auth-card__header",
	KcFormGroupClass:         "auth-form-group",
	KcLabelClass:             "auth-label",
	KcInputClass:             "auth-input",
	KcInputErrorMessageClass: "auth-input-error",
	KcButtonClass:            "auth-button",
	KcButtonPrimaryClass:     "auth-button--primary",
	KcAlertClass:             "auth-alert",
}

// BaseClasses returns a copy of the page independent class set.
func BaseClasses() ClassMap {
	return baseClasses.Clone()
}

// overlay returns the page specific classes and stylesheet asset key. The
// overlays only use keys the base set leaves empty.
func overlay(id page.ID) (ClassMap, string, bool) {
	switch id {
	case page.Login:
		return ClassMap{
			KcFormSocialAccountListClass: "auth-login__social",
			KcFormOptionsWrapperClass:    "auth-login__options",
			KcFormSettingClass:           "auth-login__settings",
		}, "stylesheet.login", true
	case page.LoginResetPassword:
		return ClassMap{
			KcFormOptionsWrapperClass: "auth-reset__options",
		}, "stylesheet.login-reset-password", true
	case page.LoginVerifyEmail:
		return ClassMap{
			KcContentWrapperClass: "auth-verify__content",
		}, "stylesheet.login-verify-email", true
	case page.LogoutConfirm:
		return ClassMap{
			KcContentWrapperClass: "auth-logout__content",
			KcFormButtonsClass:    "auth-logout__buttons",
		}, "stylesheet.logout-confirm", true
	case page.Register:
		return ClassMap{
			KcFormOptionsWrapperClass:    "auth-register__options",
			KcFormButtonsClass:           "auth-register__buttons",
			KcCheckboxInputClass:         "auth-register__checkbox",
			KcInputHelperTextBeforeClass: "auth-register__helper",
			KcInputHelperTextAfterClass:  "auth-register__helper",
			KcRecaptchaClass:             "auth-register__recaptcha",
		}, "stylesheet.register", true
	default:
		return nil, "", false
	}
}

// ClassesFor computes the class map of a page: the base set overlaid with the
// page specific set. Unmatched pages get the base set only.
func ClassesFor(id page.ID) ClassMap {
	classes := BaseClasses()
	if extra, _, ok := overlay(id); ok {
		classes = classes.With(extra)
	}
	return classes
}

// StylesheetKey returns the asset key of the page stylesheet, if any.
func StylesheetKey(id page.ID) (string, bool) {
	_, key, ok := overlay(id)
	return key, ok
}

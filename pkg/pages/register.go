package pages

import (
	"context"
	"errors"
	"strconv"

	"github.com/goliatone/go-auththeme/pkg/fields"
	"github.com/goliatone/go-auththeme/pkg/render/template"
)

// Fields the register form draws outside the profile attributes.
var registerFormFields = []string{"password", "password-confirm", "termsAccepted", "recaptcha"}

// NewRegister renders the registration page. Props.FormFields must hold a
// loaded field renderer.
func NewRegister(engine template.TemplateRenderer) Renderer {
	return newTemplatePage(engine, "register", registerView)
}

func registerView(ctx context.Context, props Props) (view, error) {
	if props.FormFields == nil {
		return view{}, errors.New("pages: register needs a loaded form fields renderer")
	}
	pc := props.Context
	l := props.I18n

	formFields, err := props.FormFields.Render(ctx, fields.Input{
		Context:         pc,
		I18n:            l,
		Classes:         props.Classes,
		DoUseDefaultCSS: props.DoUseDefaultCSS,
	})
	if err != nil {
		return view{}, err
	}

	minLength := ""
	passwordHint := ""
	if n := pc.PasswordPolicies.Length; n > 0 {
		minLength = strconv.Itoa(n)
		passwordHint = l.Msg("invalidPasswordMinLengthMessage", n)
	}

	inError := make([]string, 0, len(pc.Profile.Attributes)+len(registerFormFields))
	for _, attr := range pc.Profile.Attributes {
		inError = append(inError, attr.Name)
	}
	inError = append(inError, registerFormFields...)

	return view{
		header:                l.Msg("registerTitle"),
		displayMessage:        !pc.FieldMessages().ExistsError(inError...),
		displayRequiredFields: true,
		data: map[string]any{
			"formFields":        formFields,
			"passwordRequired":  pc.PasswordRequired,
			"confirmPassword":   props.DoMakeUserConfirmPassword,
			"passwordMinLength": minLength,
			"passwordHint":      passwordHint,
			"passwordError":     fieldError(props, "password"),
			"confirmError":      fieldError(props, "password-confirm"),
			"termsRequired":     pc.TermsAcceptanceRequired,
			"termsText":         string(l.HTML("termsText")),
			"termsError":        fieldError(props, "termsAccepted"),
			"recaptchaRequired": pc.RecaptchaRequired && pc.RecaptchaSiteKey != "",
			"recaptchaSiteKey":  pc.RecaptchaSiteKey,
			"recaptchaError":    fieldError(props, "recaptcha"),
		},
	}, nil
}

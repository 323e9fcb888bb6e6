package pages

import (
	"context"

	"github.com/goliatone/go-auththeme/pkg/render/template"
)

// NewLoginResetPassword renders the forgot-password page.
func NewLoginResetPassword(engine template.TemplateRenderer) Renderer {
	return newTemplatePage(engine, "login-reset-password", resetPasswordView)
}

// NewLoginVerifyEmail renders the email verification notice.
func NewLoginVerifyEmail(engine template.TemplateRenderer) Renderer {
	return newTemplatePage(engine, "login-verify-email", verifyEmailView)
}

// NewLogoutConfirm renders the logout confirmation page.
func NewLogoutConfirm(engine template.TemplateRenderer) Renderer {
	return newTemplatePage(engine, "logout-confirm", logoutConfirmView)
}

func resetPasswordView(_ context.Context, props Props) (view, error) {
	pc := props.Context
	l := props.I18n

	label := l.Msg("usernameOrEmail")
	instruction := l.Msg("emailInstruction")
	switch {
	case !pc.Realm.LoginWithEmailAllowed:
		label = l.Msg("username")
		instruction = l.Msg("emailInstructionUsername")
	case pc.Realm.RegistrationEmailAsUsername:
		label = l.Msg("email")
	}

	return view{
		header:         l.Msg("emailForgotTitle"),
		displayMessage: !pc.FieldMessages().ExistsError("username"),
		info:           true,
		data: map[string]any{
			"usernameLabel": label,
			"username":      pc.Login.Username,
			"usernameError": fieldError(props, "username"),
			"instruction":   instruction,
		},
	}, nil
}

func verifyEmailView(_ context.Context, props Props) (view, error) {
	l := props.I18n
	return view{
		header:         l.Msg("emailVerifyTitle"),
		displayMessage: true,
		info:           true,
		data: map[string]any{
			"instruction": l.Msg("emailVerifyInstruction1", props.Context.User.Email),
		},
	}, nil
}

func logoutConfirmView(_ context.Context, props Props) (view, error) {
	pc := props.Context
	return view{
		header:         props.I18n.Msg("logoutConfirmTitle"),
		displayMessage: true,
		data: map[string]any{
			"sessionCode":  pc.LogoutConfirm.Code,
			"showBackLink": !pc.LogoutConfirm.SkipLink && pc.Client.BaseURL != "",
			"clientUrl":    pc.Client.BaseURL,
		},
	}, nil
}

package page

import "strings"

// ID identifies which authentication page is being rendered. Values outside
// the known set are valid and resolve to the default page.
type ID string

const (
	Login              ID = "login.ftl"
	LoginResetPassword ID = "login-reset-password.ftl"
	LoginVerifyEmail   ID = "login-verify-email.ftl"
	LogoutConfirm      ID = "logout-confirm.ftl"
	Register           ID = "register.ftl"
)

const templateSuffix = ".ftl"

var known = []ID{Login, LoginResetPassword, LoginVerifyEmail, LogoutConfirm, Register}

// Known returns the page identifiers that have a dedicated renderer.
func Known() []ID {
	out := make([]ID, len(known))
	copy(out, known)
	return out
}

// IsKnown reports whether id has a dedicated renderer.
func (id ID) IsKnown() bool {
	for _, candidate := range known {
		if candidate == id {
			return true
		}
	}
	return false
}

// Name returns the identifier without the template suffix ("login").
func (id ID) Name() string {
	return strings.TrimSuffix(string(id), templateSuffix)
}

func (id ID) String() string {
	return string(id)
}

// ParseID normalises user input into an ID. Bare names ("register") and the
// template form ("register.ftl") are both accepted.
func ParseID(raw string) ID {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if !strings.HasSuffix(trimmed, templateSuffix) {
		trimmed += templateSuffix
	}
	return ID(trimmed)
}

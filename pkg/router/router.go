// Package router dispatches a page context to the renderer of its page,
// after resolving its styles, translations and lazily loaded sub-renderers.
package router

import (
	"context"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-auththeme/internal/logging"
	"github.com/goliatone/go-auththeme/pkg/fields"
	"github.com/goliatone/go-auththeme/pkg/i18n"
	"github.com/goliatone/go-auththeme/pkg/interfaces"
	"github.com/goliatone/go-auththeme/pkg/page"
	"github.com/goliatone/go-auththeme/pkg/pages"
	"github.com/goliatone/go-auththeme/pkg/render/template"
	"github.com/goliatone/go-auththeme/pkg/styles"
)

// TextCodePageContextRequired tags Route calls without a page context.
const TextCodePageContextRequired = "PAGE_CONTEXT_REQUIRED"

// ContentType of every rendered page.
const ContentType = "text/html; charset=utf-8"

// Renderer names reported in RenderedPage.Renderer.
const (
	RendererLogin              = "login"
	RendererLoginResetPassword = "login-reset-password"
	RendererLoginVerifyEmail   = "login-verify-email"
	RendererLogoutConfirm      = "logout-confirm"
	RendererRegister           = "register"
	RendererDefault            = "default"
)

// Pages holds one renderer per dedicated page plus the fallback. Nil fields
// keep the built-in renderer.
type Pages struct {
	Login              pages.Renderer
	LoginResetPassword pages.Renderer
	LoginVerifyEmail   pages.Renderer
	LogoutConfirm      pages.Renderer
	Register           pages.Renderer
	Default            pages.Renderer
	Template           pages.Template
}

// DefaultPages returns the built-in renderers over engine.
func DefaultPages(engine template.TemplateRenderer) Pages {
	return Pages{
		Login:              pages.NewLogin(engine),
		LoginResetPassword: pages.NewLoginResetPassword(engine),
		LoginVerifyEmail:   pages.NewLoginVerifyEmail(engine),
		LogoutConfirm:      pages.NewLogoutConfirm(engine),
		Register:           pages.NewRegister(engine),
		Default:            pages.NewDefault(engine),
		Template:           pages.NewTemplate(engine),
	}
}

func (p Pages) with(overrides Pages) Pages {
	if overrides.Login != nil {
		p.Login = overrides.Login
	}
	if overrides.LoginResetPassword != nil {
		p.LoginResetPassword = overrides.LoginResetPassword
	}
	if overrides.LoginVerifyEmail != nil {
		p.LoginVerifyEmail = overrides.LoginVerifyEmail
	}
	if overrides.LogoutConfirm != nil {
		p.LogoutConfirm = overrides.LogoutConfirm
	}
	if overrides.Register != nil {
		p.Register = overrides.Register
	}
	if overrides.Default != nil {
		p.Default = overrides.Default
	}
	if overrides.Template != nil {
		p.Template = overrides.Template
	}
	return p
}

// RenderedPage is the outcome of one Route call.
type RenderedPage struct {
	PageID      page.ID
	Renderer    string
	ContentType string
	HTML        string
	Stylesheets []styles.Stylesheet
	Duration    time.Duration
}

// Option customises the router.
type Option func(*Router)

// WithPages replaces individual page renderers.
func WithPages(overrides Pages) Option {
	return func(r *Router) {
		r.overrides = overrides
	}
}

// WithSelector injects the style selector.
func WithSelector(selector *styles.Selector) Option {
	return func(r *Router) {
		r.selector = selector
	}
}

// WithStyleOptions configures the default style selector. Ignored when
// WithSelector is set.
func WithStyleOptions(options ...styles.Option) Option {
	return func(r *Router) {
		r.styleOptions = append(r.styleOptions, options...)
	}
}

// WithBundle injects the translation bundle.
func WithBundle(bundle *i18n.Bundle) Option {
	return func(r *Router) {
		r.bundle = bundle
	}
}

// WithFormFields injects the form-fields loader.
func WithFormFields(loader *fields.Loader) Option {
	return func(r *Router) {
		r.formFields = loader
	}
}

// WithEngine injects the template engine the built-in pages use.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(r *Router) {
		r.engine = engine
	}
}

// WithTemplatesDir lets templates on disk shadow the embedded ones.
func WithTemplatesDir(dir string) Option {
	return func(r *Router) {
		r.templatesDir = dir
	}
}

// WithLoggerProvider wires logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(r *Router) {
		r.logger = logging.RouterLogger(provider)
	}
}

// Router selects and runs the renderer of each page context. It is safe for
// concurrent use; every Route call gets its own style memo.
type Router struct {
	pages        Pages
	overrides    Pages
	selector     *styles.Selector
	styleOptions []styles.Option
	bundle       *i18n.Bundle
	formFields   *fields.Loader
	engine       template.TemplateRenderer
	templatesDir string
	logger       interfaces.Logger

	initialiseErr error
}

// New builds a Router. Missing dependencies get the built-in defaults; a
// failure to build them surfaces on the first Route call.
func New(options ...Option) *Router {
	r := &Router{logger: logging.NoOp()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	r.applyDefaults()
	return r
}

func (r *Router) applyDefaults() {
	if r.selector == nil {
		selector, err := styles.NewSelector(r.styleOptions...)
		if err != nil {
			r.initialiseErr = fmt.Errorf("router: default style selector: %w", err)
			return
		}
		r.selector = selector
	}
	if r.bundle == nil {
		bundle, err := i18n.Default()
		if err != nil {
			r.initialiseErr = fmt.Errorf("router: default translations: %w", err)
			return
		}
		r.bundle = bundle
	}
	if r.formFields == nil {
		r.formFields = fields.NewLoader(nil)
	}
	if r.engine == nil {
		engine, err := pages.NewEngine(r.templatesDir)
		if err != nil {
			r.initialiseErr = fmt.Errorf("router: default page engine: %w", err)
			return
		}
		r.engine = engine
	}
	r.pages = DefaultPages(r.engine).with(r.overrides)
}

// Err reports a failure to build the default dependencies. Route returns
// the same error.
func (r *Router) Err() error {
	return r.initialiseErr
}

// Route renders pc with the renderer of its page. Exactly one renderer runs
// per call. Page IDs without a dedicated renderer fall back to the default
// page.
func (r *Router) Route(ctx context.Context, pc *page.Context) (*RenderedPage, error) {
	if ctx == nil {
		return nil, errors.New("router: context is required")
	}
	if pc == nil {
		return nil, goerrors.New("router: page context is required", goerrors.CategoryValidation).
			WithTextCode(TextCodePageContextRequired)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.initialiseErr != nil {
		return nil, r.initialiseErr
	}

	started := time.Now()
	session := r.selector.Session()
	props := pages.Props{
		Context:  pc,
		I18n:     r.bundle.Localizer(pc),
		Template: r.pages.Template,
	}

	var (
		name     string
		renderer pages.Renderer
		err      error
	)
	switch pc.PageID {
	case page.Login:
		name, renderer = RendererLogin, r.pages.Login
		err = r.resolveStyles(ctx, session, pc.PageID, &props)
	case page.LoginResetPassword:
		name, renderer = RendererLoginResetPassword, r.pages.LoginResetPassword
		err = r.resolveStyles(ctx, session, pc.PageID, &props)
	case page.LoginVerifyEmail:
		name, renderer = RendererLoginVerifyEmail, r.pages.LoginVerifyEmail
		err = r.resolveStyles(ctx, session, pc.PageID, &props)
	case page.LogoutConfirm:
		name, renderer = RendererLogoutConfirm, r.pages.LogoutConfirm
		err = r.resolveStyles(ctx, session, pc.PageID, &props)
	case page.Register:
		name, renderer = RendererRegister, r.pages.Register
		props.DoMakeUserConfirmPassword = true
		err = r.resolveRegister(ctx, session, pc.PageID, &props)
	default:
		name, renderer = RendererDefault, r.pages.Default
		props.DoUseDefaultCSS = true
		props.DoMakeUserConfirmPassword = true
		err = r.resolveStyles(ctx, session, pc.PageID, &props)
	}

	logger := logging.WithFields(r.logger.WithContext(ctx), map[string]any{
		"page_id":  pc.PageID.String(),
		"renderer": name,
	})
	if err != nil {
		logger.Error("page resources failed to load", "error", err)
		return nil, err
	}

	html, err := renderer.Render(ctx, props)
	if err != nil {
		logger.Error("page render failed", "error", err)
		return nil, fmt.Errorf("router: render %s: %w", pc.PageID, err)
	}

	out := &RenderedPage{
		PageID:      pc.PageID,
		Renderer:    name,
		ContentType: ContentType,
		HTML:        html,
		Stylesheets: props.Styles.Stylesheets,
		Duration:    time.Since(started),
	}
	logger.Debug("page rendered", "duration", out.Duration, "bytes", len(html))
	return out, nil
}

func (r *Router) resolveStyles(ctx context.Context, session *styles.Session, id page.ID, props *pages.Props) error {
	pageStyles, err := session.For(ctx, id)
	if err != nil {
		return err
	}
	props.Styles = pageStyles
	props.Classes = pageStyles.Classes
	return nil
}

// resolveRegister loads the stylesheet and the form fields concurrently and
// waits for both.
func (r *Router) resolveRegister(ctx context.Context, session *styles.Session, id page.ID, props *pages.Props) error {
	var (
		pageStyles styles.PageStyles
		formFields fields.Renderer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pageStyles, err = session.For(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		formFields, err = r.formFields.Load(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	props.Styles = pageStyles
	props.Classes = pageStyles.Classes
	props.FormFields = formFields
	return nil
}

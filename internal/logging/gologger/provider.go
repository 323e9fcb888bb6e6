// Package gologger backs the theme's loggers with
// github.com/goliatone/go-logger, configured from the logging section of the
// theme config.
package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-auththeme/internal/config"
	"github.com/goliatone/go-auththeme/internal/logging"
	"github.com/goliatone/go-auththeme/pkg/interfaces"
)

var formatOptions = map[string]func() glog.Option{
	"":        func() glog.Option { return glog.WithLoggerTypeJSON() },
	"json":    func() glog.Option { return glog.WithLoggerTypeJSON() },
	"console": func() glog.Option { return glog.WithLoggerTypeConsole() },
	"pretty":  func() glog.Option { return glog.WithLoggerTypePretty() },
}

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

// Provider hands out go-logger loggers named after the theme components
// (router, preview, cli). Each name is built once.
type Provider struct {
	root *glog.BaseLogger

	mu    sync.Mutex
	named map[string]interfaces.Logger
}

// New builds a provider from cfg. Config validation already restricts the
// format; New still rejects unknown ones for callers that skip it.
func New(cfg config.Logging) (*Provider, error) {
	options, err := loggerOptions(cfg)
	if err != nil {
		return nil, err
	}
	root := glog.NewLogger(options...)
	if focus := trimmed(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root, named: map[string]interfaces.Logger{}}, nil
}

func loggerOptions(cfg config.Logging) ([]glog.Option, error) {
	format, ok := formatOptions[strings.ToLower(strings.TrimSpace(cfg.Format))]
	if !ok {
		return nil, fmt.Errorf("gologger: unsupported format %q", cfg.Format)
	}
	options := []glog.Option{format()}
	if level := Level(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}
	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}
	return options, nil
}

// GetLogger returns the logger for a component; a blank name is the root.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil {
		return logging.NoOp()
	}
	name = strings.TrimSpace(name)

	p.mu.Lock()
	defer p.mu.Unlock()
	if logger, ok := p.named[name]; ok {
		return logger
	}
	var inner glog.Logger = p.root
	if name != "" {
		inner = p.root.GetLogger(name)
	}
	logger := wrap(inner)
	p.named[name] = logger
	return logger
}

// Level maps a configured level name onto go-logger's constants. Unknown
// names return "".
func Level(name string) string {
	return levels[strings.ToLower(strings.TrimSpace(name))]
}

func wrap(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &component{inner: inner}
}

type component struct {
	inner glog.Logger
}

func (c *component) Trace(msg string, args ...any) { c.inner.Trace(msg, args...) }
func (c *component) Debug(msg string, args ...any) { c.inner.Debug(msg, args...) }
func (c *component) Info(msg string, args ...any)  { c.inner.Info(msg, args...) }
func (c *component) Warn(msg string, args ...any)  { c.inner.Warn(msg, args...) }
func (c *component) Error(msg string, args ...any) { c.inner.Error(msg, args...) }
func (c *component) Fatal(msg string, args ...any) { c.inner.Fatal(msg, args...) }

// WithFields prefers go-logger's field support and falls back to key/value
// pairs in key order.
func (c *component) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return c
	}
	if with, ok := c.inner.(glog.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
		return wrap(with.WithFields(copied))
	}
	if with, ok := c.inner.(interface{ With(...any) *glog.BaseLogger }); ok {
		args := make([]any, 0, len(fields)*2)
		for _, k := range slices.Sorted(maps.Keys(fields)) {
			args = append(args, k, fields[k])
		}
		return wrap(with.With(args...))
	}
	return c
}

func (c *component) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return c
	}
	return wrap(c.inner.WithContext(ctx))
}

func trimmed(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

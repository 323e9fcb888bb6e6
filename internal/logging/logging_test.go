package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-auththeme/pkg/interfaces"
)

type recordingLogger struct {
	noopLogger
	fields []map[string]any
}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	r.fields = append(r.fields, fields)
	return r
}

func (r *recordingLogger) WithContext(context.Context) interfaces.Logger { return r }

type provider struct {
	logger *recordingLogger
	names  []string
}

func (p *provider) GetLogger(name string) interfaces.Logger {
	p.names = append(p.names, name)
	return p.logger
}

func TestModuleLoggerAttachesModuleField(t *testing.T) {
	p := &provider{logger: &recordingLogger{}}

	RouterLogger(p).Debug("dispatch")

	if len(p.names) != 1 || p.names[0] != "auththeme.router" {
		t.Fatalf("unexpected logger names %v", p.names)
	}
	if len(p.logger.fields) != 1 || p.logger.fields[0]["module"] != "auththeme.router" {
		t.Fatalf("expected module field, got %v", p.logger.fields)
	}
}

func TestModuleLoggerWithoutProviderIsNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected no-op logger, got %T", logger)
	}
	logger.WithContext(context.Background()).Info("dropped")
}

func TestWithFieldsCopiesInput(t *testing.T) {
	rec := &recordingLogger{}
	fields := map[string]any{"page_id": "login.ftl"}
	WithFields(rec, fields)
	fields["page_id"] = "register.ftl"

	if rec.fields[0]["page_id"] != "login.ftl" {
		t.Fatalf("fields must be copied, got %v", rec.fields[0])
	}
}

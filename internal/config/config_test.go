package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-auththeme/internal/config"
)

func TestDefaultsAreValid(t *testing.T) {
	if err := config.Defaults().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Preview.Addr == "" || cfg.Theme.Name == "" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auththeme.yaml")
	body := []byte(`
preview:
  addr: "0.0.0.0:9000"
  shutdownTimeout: 3s
theme:
  variant: dark
logging:
  level: debug
  format: json
locale:
  default: it
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("AUTHTHEME_LOG_LEVEL", "warn")
	t.Setenv("AUTHTHEME_PREVIEW_ASSETS_PREFIX", "/assets/theme")
	t.Setenv("AUTHTHEME_LOG_FOCUS", "auththeme.router,auththeme.preview")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := config.Defaults()
	want.Preview.Addr = "0.0.0.0:9000"
	want.Preview.ShutdownTimeout = 3 * time.Second
	want.Preview.AssetsPrefix = "/assets/theme"
	want.Theme.Variant = "dark"
	want.Logging.Level = "warn"
	want.Logging.Format = "json"
	want.Logging.Focus = []string{"auththeme.router", "auththeme.preview"}
	want.Locale.Default = "it"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyEnvWithExplicitEnvironment(t *testing.T) {
	cfg := config.Defaults()
	err := config.ApplyEnv(&cfg, map[string]string{
		"AUTHTHEME_THEME_NAME":    "custom",
		"AUTHTHEME_TEMPLATES_DIR": "/srv/templates",
		"THEME_NAME":              "ignored",
	})
	if err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.Theme.Name != "custom" || cfg.TemplatesDir != "/srv/templates" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.Preview.Addr != config.Defaults().Preview.Addr {
		t.Fatalf("unset variables must keep the current value")
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := config.Defaults()
	cfg.Preview.Addr = "not-an-address"
	cfg.Preview.AssetsPrefix = "relative"
	cfg.Logging.Format = "xml"
	cfg.Locale.Default = "!!"

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	for _, fragment := range []string{"Addr", "AssetsPrefix", "Format", "Default"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected %q in %v", fragment, err)
		}
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("preveiw:\n  addr: \":1\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

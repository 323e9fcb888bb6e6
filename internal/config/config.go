// Package config loads the settings of the preview server and the CLI:
// built-in defaults, an optional YAML file, then AUTHTHEME_* environment
// variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-auththeme/pkg/styles"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "AUTHTHEME_"

// TextCodeInvalidConfig tags configuration validation failures.
const TextCodeInvalidConfig = "INVALID_CONFIG"

var (
	logLevels  = []any{"trace", "debug", "info", "warn", "warning", "error", "fatal"}
	logFormats = []any{"json", "console", "pretty"}
	urlPath    = regexp.MustCompile(`^/[^\s]*$`)
)

type Config struct {
	Preview      Preview `yaml:"preview" envPrefix:"PREVIEW_"`
	Theme        Theme   `yaml:"theme" envPrefix:"THEME_"`
	Logging      Logging `yaml:"logging" envPrefix:"LOG_"`
	Locale       Locale  `yaml:"locale" envPrefix:"LOCALE_"`
	TemplatesDir string  `yaml:"templatesDir" env:"TEMPLATES_DIR"`
	StoriesDir   string  `yaml:"storiesDir" env:"STORIES_DIR"`
}

// Preview configures the HTTP preview server.
type Preview struct {
	Addr              string        `yaml:"addr" env:"ADDR"`
	AssetsPrefix      string        `yaml:"assetsPrefix" env:"ASSETS_PREFIX"`
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout" env:"READ_HEADER_TIMEOUT"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout" env:"SHUTDOWN_TIMEOUT"`
}

// Theme selects the go-theme manifest and variant.
type Theme struct {
	Name    string `yaml:"name" env:"NAME"`
	Variant string `yaml:"variant" env:"VARIANT"`
}

type Logging struct {
	Level     string   `yaml:"level" env:"LEVEL"`
	Format    string   `yaml:"format" env:"FORMAT"`
	AddSource bool     `yaml:"addSource" env:"ADD_SOURCE"`
	Focus     []string `yaml:"focus" env:"FOCUS" envSeparator:","`
}

// Locale sets the language used when a story does not pick one.
type Locale struct {
	Default string `yaml:"default" env:"DEFAULT"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Preview: Preview{
			Addr:              "127.0.0.1:8089",
			AssetsPrefix:      styles.DefaultAssetsPrefix,
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Theme: Theme{
			Name:    styles.DefaultThemeName,
			Variant: styles.DefaultThemeVariant,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		Locale: Locale{Default: "en"},
	}
}

// Load applies the YAML file at path (skipped when empty) and the
// environment on top of the defaults, then validates the result.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := decodeYAML(bytes.NewReader(raw), &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}
	if err := ApplyEnv(&cfg, nil); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overlays AUTHTHEME_* variables. environ replaces the process
// environment when non-nil.
func ApplyEnv(cfg *Config, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

func decodeYAML(r io.Reader, cfg *Config) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks every section and reports all failures at once.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Preview),
		validation.Field(&c.Theme),
		validation.Field(&c.Logging),
		validation.Field(&c.Locale),
	)
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "config: invalid configuration").
		WithTextCode(TextCodeInvalidConfig)
}

func (p Preview) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Addr, validation.Required, validation.By(hostPort)),
		validation.Field(&p.AssetsPrefix, validation.Required, validation.Match(urlPath)),
		validation.Field(&p.ReadHeaderTimeout, validation.Min(time.Duration(0))),
		validation.Field(&p.ShutdownTimeout, validation.Min(time.Duration(0))),
	)
}

func (t Theme) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.Required),
	)
}

func (l Logging) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In(logLevels...)),
		validation.Field(&l.Format, validation.In(logFormats...)),
	)
}

func (l Locale) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Default, validation.Required, validation.By(languageTag)),
	)
}

func hostPort(value any) error {
	addr, _ := value.(string)
	if addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return validation.NewError("validation_host_port", "must be a host:port address")
	}
	return nil
}

func languageTag(value any) error {
	tag, _ := value.(string)
	if tag == "" {
		return nil
	}
	if _, err := language.Parse(tag); err != nil {
		return validation.NewError("validation_language_tag", "must be a BCP 47 language tag")
	}
	return nil
}

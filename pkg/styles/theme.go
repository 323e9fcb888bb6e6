package styles

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

// Default theme identity.
const (
	DefaultThemeName    = "auththeme"
	DefaultThemeVariant = "light"
	DefaultAssetsPrefix = "/resources/auththeme"
)

//go:embed assets/css/*.css
var embeddedAssets embed.FS

// AssetsFS exposes the embedded stylesheets rooted at the asset prefix, so
// callers can serve them with http.FileServerFS.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

// DefaultManifest describes the built-in theme: its stylesheet per page, the
// design tokens and a dark variant.
func DefaultManifest(prefix string) *gotheme.Manifest {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultAssetsPrefix
	}
	return &gotheme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":       "#0b5cad",
			"surface":     "#ffffff",
			"text":        "#1d2733",
			"danger":      "#c9190b",
			"radius":      "6px",
			"font-family": "system-ui, sans-serif",
		},
		Templates: map[string]string{},
		Assets: gotheme.Assets{
			Prefix: prefix,
			Files: map[string]string{
				BaseStylesheet:                    "css/main.css",
				"stylesheet.login":                "css/login.css",
				"stylesheet.login-reset-password": "css/login-reset-password.css",
				"stylesheet.login-verify-email":   "css/login-verify-email.css",
				"stylesheet.logout-confirm":       "css/logout-confirm.css",
				"stylesheet.register":             "css/register.css",
			},
		},
		Variants: map[string]gotheme.Variant{
			DefaultThemeVariant: {},
			"dark": {
				Tokens: map[string]string{
					"surface": "#151b23",
					"text":    "#e6edf3",
					"brand":   "#58a6ff",
				},
			},
		},
	}
}

// themeFiles returns the asset files of the selection with variant overrides
// applied.
func themeFiles(selection *gotheme.Selection) map[string]string {
	out := map[string]string{}
	if selection == nil || selection.Manifest == nil {
		return out
	}
	for key, file := range selection.Manifest.Assets.Files {
		out[key] = file
	}
	if variant := strings.TrimSpace(selection.Variant); variant != "" {
		if v, ok := selection.Manifest.Variants[variant]; ok {
			for key, file := range v.Assets.Files {
				out[key] = file
			}
		}
	}
	return out
}

func assetHref(selection *gotheme.Selection, key, file string) string {
	if selection != nil {
		if url, _ := selection.Asset(key); strings.TrimSpace(url) != "" {
			return url
		}
	}
	prefix := DefaultAssetsPrefix
	if selection != nil && selection.Manifest != nil && selection.Manifest.Assets.Prefix != "" {
		prefix = selection.Manifest.Assets.Prefix
	}
	return path.Join(prefix, file)
}

func selectTheme(provider *gotheme.MemoryRegistry, name, variant string) (*gotheme.Selection, error) {
	selector := gotheme.Selector{
		Registry:       provider,
		DefaultTheme:   DefaultThemeName,
		DefaultVariant: DefaultThemeVariant,
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("styles: select theme %s/%s: %w", name, variant, err)
	}
	return selection, nil
}

package auththeme

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-auththeme/pkg/page"
	"github.com/goliatone/go-auththeme/pkg/styles"
)

func TestAssetsFSContainsStylesheets(t *testing.T) {
	for _, name := range []string{"css/main.css", "css/register.css", "css/login.css"} {
		data, err := fs.ReadFile(AssetsFS(), name)
		if err != nil {
			t.Fatalf("expected %s to be readable: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("%s is empty", name)
		}
	}
}

func TestTemplatesAreExposed(t *testing.T) {
	if _, err := fs.Stat(PageTemplates(), "layout.tmpl"); err != nil {
		t.Fatalf("layout template missing: %v", err)
	}
	if _, err := fs.Stat(FieldTemplates(), "user-profile-form-fields.tmpl"); err != nil {
		t.Fatalf("form fields template missing: %v", err)
	}
}

func TestRenderFixture(t *testing.T) {
	pc, err := BuildFixture(page.Login)
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	out, err := Render(context.Background(), pc, WithTheme(styles.DefaultThemeName, "dark"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out.PageID != page.Login || !strings.Contains(out.HTML, `data-variant="dark"`) {
		t.Fatalf("unexpected render %s", out.PageID)
	}
}

func TestRenderStory(t *testing.T) {
	it := "it"
	out, err := RenderStory(context.Background(), "register", "WithTermsAcceptance", []Overrides{{Locale: &it}})
	if err != nil {
		t.Fatalf("render story: %v", err)
	}
	if !strings.Contains(out.HTML, "Service Terms of Use") {
		t.Fatalf("expected custom terms wording")
	}

	if _, err := RenderStory(context.Background(), "register", "Missing", nil); err == nil {
		t.Fatalf("expected unknown story error")
	}
}

package styles_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-auththeme/pkg/page"
	"github.com/goliatone/go-auththeme/pkg/styles"
)

func TestClassesForUnmatchedPageIsBaseOnly(t *testing.T) {
	got := styles.ClassesFor(page.ID("info.ftl"))
	if diff := cmp.Diff(styles.BaseClasses(), got); diff != "" {
		t.Fatalf("unmatched page must get the base set only (-want +got):\n%s", diff)
	}
}

func TestClassesForOverlaysOnlyAddKeys(t *testing.T) {
	base := styles.BaseClasses()
	for _, id := range page.Known() {
		classes := styles.ClassesFor(id)
		for key, value := range base {
			if classes[key] != value {
				t.Fatalf("%s: base key %s changed to %q", id, key, classes[key])
			}
		}
		if len(classes) <= len(base) {
			t.Fatalf("%s: expected page specific overlay keys", id)
		}
		if _, ok := styles.StylesheetKey(id); !ok {
			t.Fatalf("%s: expected a page stylesheet", id)
		}
	}
	if _, ok := styles.StylesheetKey("info.ftl"); ok {
		t.Fatalf("unmatched pages have no stylesheet")
	}
}

func TestClassMapClass(t *testing.T) {
	classes := styles.ClassMap{styles.KcInputClass: "auth-input"}

	if got := classes.Class(styles.KcInputClass, false); got != "kcInputClass auth-input" {
		t.Fatalf("unexpected class %q", got)
	}
	if got := classes.Class(styles.KcInputClass, true); got != "kcInputClass form-control auth-input" {
		t.Fatalf("unexpected class with defaults %q", got)
	}
	if got := classes.Class(styles.KcBodyClass, false); got != "kcBodyClass" {
		t.Fatalf("unset keys resolve to the key only, got %q", got)
	}

	resolved := classes.Resolve(false)
	if len(resolved) != len(styles.ClassKeys()) {
		t.Fatalf("expected every key resolved, got %d", len(resolved))
	}
}

func TestSessionMemoizesPerPage(t *testing.T) {
	selector := newSelector(t)
	session := selector.Session()
	ctx := context.Background()

	first, err := session.For(ctx, page.Register)
	if err != nil {
		t.Fatalf("styles for register: %v", err)
	}
	second, err := session.For(ctx, page.Register)
	if err != nil {
		t.Fatalf("styles for register (memo): %v", err)
	}
	if diff := cmp.Diff(first.Classes, second.Classes); diff != "" {
		t.Fatalf("memoized classes differ (-first +second):\n%s", diff)
	}
	if &first.Stylesheets[0] != &second.Stylesheets[0] {
		t.Fatalf("expected the memoized stylesheet slice to be reused")
	}

	keys := make([]string, 0, len(first.Stylesheets))
	for _, sheet := range first.Stylesheets {
		keys = append(keys, sheet.Key)
		if len(sheet.Content) == 0 {
			t.Fatalf("stylesheet %s loaded empty", sheet.Key)
		}
	}
	if diff := cmp.Diff([]string{styles.BaseStylesheet, "stylesheet.register"}, keys); diff != "" {
		t.Fatalf("stylesheets mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasSuffix(first.Stylesheets[1].Href, "css/register.css") {
		t.Fatalf("unexpected register href %q", first.Stylesheets[1].Href)
	}

	fresh, err := selector.Session().For(ctx, page.Register)
	if err != nil {
		t.Fatalf("fresh session: %v", err)
	}
	if &fresh.Stylesheets[0] == &first.Stylesheets[0] {
		t.Fatalf("a new session must recompute")
	}
}

func TestSessionUnmatchedLoadsBaseStylesheetOnly(t *testing.T) {
	got, err := newSelector(t).Session().For(context.Background(), page.ID("info.ftl"))
	if err != nil {
		t.Fatalf("styles for info: %v", err)
	}
	if len(got.Stylesheets) != 1 || got.Stylesheets[0].Key != styles.BaseStylesheet {
		t.Fatalf("expected base stylesheet only, got %+v", got.Stylesheets)
	}
	if got.Theme != styles.DefaultThemeName {
		t.Fatalf("unexpected theme %q", got.Theme)
	}
}

func TestSessionLoadFailureIsCategorized(t *testing.T) {
	selector, err := styles.NewSelector(styles.WithAssetsFS(fstest.MapFS{
		"css/main.css": {Data: []byte("body{}")},
	}))
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	session := selector.Session()
	if _, err := session.For(context.Background(), page.Login); err == nil {
		t.Fatalf("expected missing login stylesheet error")
	} else if !goerrors.IsCategory(err, goerrors.CategoryInternal) {
		t.Fatalf("expected internal category, got %v", err)
	}

	if _, err := session.For(context.Background(), page.ID("info.ftl")); err != nil {
		t.Fatalf("other pages must not be affected: %v", err)
	}
}

func TestSessionHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newSelector(t).Session().For(ctx, page.Login); err == nil {
		t.Fatalf("expected cancelled context error")
	}
}

func TestCSSVarPrefixRenamesVariablesOnly(t *testing.T) {
	ctx := context.Background()
	values := func(prefix string) []string {
		t.Helper()
		selector, err := styles.NewSelector(styles.WithCSSVarPrefix(prefix))
		if err != nil {
			t.Fatalf("new selector: %v", err)
		}
		got, err := selector.Session().For(ctx, page.Login)
		if err != nil {
			t.Fatalf("styles for login: %v", err)
		}
		out := make([]string, 0, len(got.CSSVars))
		for _, v := range got.CSSVars {
			out = append(out, v)
		}
		sort.Strings(out)
		return out
	}

	if diff := cmp.Diff(values("auth"), values("brand")); diff != "" {
		t.Fatalf("token values should not depend on the prefix (-auth +brand):\n%s", diff)
	}
}

func newSelector(t *testing.T) *styles.Selector {
	t.Helper()
	selector, err := styles.NewSelector()
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	return selector
}

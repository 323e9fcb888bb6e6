package stories_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-auththeme/pkg/fixture"
	"github.com/goliatone/go-auththeme/pkg/page"
	"github.com/goliatone/go-auththeme/pkg/router"
	"github.com/goliatone/go-auththeme/pkg/stories"
	"github.com/goliatone/go-auththeme/pkg/testsupport"
)

func TestDefaultCatalogCoversEveryPage(t *testing.T) {
	catalog := mustDefault(t)

	want := append(page.Known(), page.ID("info.ftl"))
	if diff := cmp.Diff(want, catalog.Pages()); diff != "" {
		t.Fatalf("pages (-want +got):\n%s", diff)
	}

	names := storyNames(catalog.List(page.Register))
	wantRegister := []string{
		"Default",
		"WithEmailAlreadyExists",
		"WithPasswordMinLength8",
		"WithFieldErrors",
		"WithTermsAcceptance",
		"WithTermsNotAccepted",
		"WithFavoritePet",
		"WithNewsletter",
		"WithEmailAsUsername",
		"WithRestrictedToMITStudents",
		"WithReadOnlyFields",
		"WithAutoGeneratedUsername",
		"WithRecaptcha",
		"WithRecaptchaFrench",
	}
	if diff := cmp.Diff(wantRegister, names); diff != "" {
		t.Fatalf("register stories (-want +got):\n%s", diff)
	}
}

func TestCatalogGet(t *testing.T) {
	catalog := mustDefault(t)

	story, err := catalog.Get("register", "withemailalreadyexists")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if story.Page != page.Register || story.Name != "WithEmailAlreadyExists" {
		t.Fatalf("unexpected story %s/%s", story.Page, story.Name)
	}

	_, err = catalog.Get(page.Register, "Missing")
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := catalog.Get("nope", "Default"); !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found for unknown page, got %v", err)
	}
}

func TestStoryContextAppliesOverrides(t *testing.T) {
	story, err := mustDefault(t).Get(page.Register, "Default")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	pc, err := story.Context()
	if err != nil {
		t.Fatalf("context: %v", err)
	}
	if !pc.Realm.RegistrationEmailAsUsername || pc.Locale.CurrentLanguageTag != "it" {
		t.Fatalf("story overrides not applied: %+v", pc.Realm)
	}
	names := make([]string, 0, len(pc.Profile.Attributes))
	for _, attr := range pc.Profile.Attributes {
		names = append(names, attr.Name)
	}
	if diff := cmp.Diff([]string{"email", "dob"}, names); diff != "" {
		t.Fatalf("attributes (-want +got):\n%s", diff)
	}
	if pc.Extension.Messages["profile.attributes.dob"] != "Data di Nascita" {
		t.Fatalf("extension messages missing: %+v", pc.Extension.Messages)
	}

	extra, err := story.Context(fixture.Overrides{Locale: fixture.Ptr("fr")})
	if err != nil {
		t.Fatalf("context with extra: %v", err)
	}
	if extra.Locale.CurrentLanguageTag != "fr" {
		t.Fatalf("extra overrides apply last")
	}
}

func TestEveryStoryRenders(t *testing.T) {
	catalog := mustDefault(t)
	r := router.New()

	for _, id := range catalog.Pages() {
		for _, story := range catalog.List(id) {
			t.Run(id.Name()+"/"+story.Name, func(t *testing.T) {
				pc, err := story.Context()
				if err != nil {
					t.Fatalf("context: %v", err)
				}
				out, err := r.Route(context.Background(), pc)
				if err != nil {
					t.Fatalf("route: %v", err)
				}
				if !strings.Contains(out.HTML, `data-page-id="`+string(id)+`"`) {
					t.Fatalf("layout missing page id marker")
				}
			})
		}
	}
}

func TestRegisterStoriesRender(t *testing.T) {
	catalog := mustDefault(t)
	r := router.New()

	cases := []struct {
		story   string
		want    []string
		notWant []string
	}{
		{
			story:   "Default",
			want:    []string{"Data di Nascita", `data-field="dob"`, `data-field="email"`, "Registrati"},
			notWant: []string{`data-field="username"`, `data-field="firstName"`},
		},
		{
			story: "WithEmailAlreadyExists",
			want:  []string{`id="input-error-email"`, "Email already exists.", `value="john.doe@gmail.com"`},
		},
		{
			story: "WithPasswordMinLength8",
			want:  []string{`minlength="8"`},
		},
		{
			story: "WithTermsAcceptance",
			want:  []string{"Service Terms of Use", `href="https://example.com/terms"`},
		},
		{
			story: "WithTermsNotAccepted",
			want:  []string{`id="input-error-terms-accepted"`, "You must accept the terms."},
		},
		{
			story: "WithFavoritePet",
			want:  []string{"Favorite Pet", "<select", `<option value="cat">Fluffy Cat</option>`, "Peaceful Fish"},
		},
		{
			story: "WithNewsletter",
			want:  []string{`type="checkbox"`, `value="yes"`, "I want my email inbox filled with spam"},
		},
		{
			story:   "WithEmailAsUsername",
			notWant: []string{`data-field="username"`},
		},
		{
			story: "WithRestrictedToMITStudents",
			want:  []string{"Please use your MIT or Berkeley email.", `mit\.edu`},
		},
		{
			story: "WithReadOnlyFields",
			want:  []string{`value="johndoe"`, " disabled"},
		},
		{
			story: "WithRecaptcha",
			want: []string{
				`data-sitekey="6LfQHvApAAAAAE73SYTd5vS0lB1Xr7zdiQ-6iBVa"`,
				"https://www.google.com/recaptcha/api.js?hl=en",
			},
		},
		{
			story: "WithRecaptchaFrench",
			want:  []string{"api.js?hl=fr", "Prénom"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.story, func(t *testing.T) {
			story, err := catalog.Get(page.Register, tc.story)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			pc, err := story.Context()
			if err != nil {
				t.Fatalf("context: %v", err)
			}
			out, err := r.Route(context.Background(), pc)
			if err != nil {
				t.Fatalf("route: %v", err)
			}
			testsupport.AssertContains(t, out.HTML, tc.want...)
			testsupport.AssertNotContains(t, out.HTML, tc.notWant...)
		})
	}
}

func TestLoadRejectsInconsistentStories(t *testing.T) {
	fsys := fstest.MapFS{
		"register.yaml": {Data: []byte(`
page: register
stories:
  - name: Broken
    overrides:
      messagesPerField:
        favoriteColor: Pick one.
`)},
	}
	_, err := stories.Load(fsys)
	if err == nil {
		t.Fatalf("expected load error")
	}
	if !fixture.IsInconsistency(err) {
		t.Fatalf("expected fixture inconsistency, got %v", err)
	}
}

func TestLoadRejectsUnknownKeysAndDuplicates(t *testing.T) {
	unknown := fstest.MapFS{
		"login.yaml": {Data: []byte("page: login\nstories:\n  - name: A\n    overides: {}\n")},
	}
	if _, err := stories.Load(unknown); err == nil {
		t.Fatalf("expected unknown key error")
	}

	dup := fstest.MapFS{
		"login.yaml": {Data: []byte("page: login\nstories:\n  - name: A\n  - name: a\n")},
	}
	if _, err := stories.Load(dup); err == nil {
		t.Fatalf("expected duplicate story error")
	}
}

func TestLoadUsesFileNameWhenPageIsOmitted(t *testing.T) {
	catalog, err := stories.Load(fstest.MapFS{
		"logout-confirm.yaml": {Data: []byte("stories:\n  - name: Plain\n")},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	story, err := catalog.Get(page.LogoutConfirm, "plain")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if story.Title != "Plain" {
		t.Fatalf("title defaults to the name, got %q", story.Title)
	}
	if catalog.Len() != 1 {
		t.Fatalf("expected one story, got %d", catalog.Len())
	}
}

func mustDefault(t *testing.T) *stories.Catalog {
	t.Helper()
	catalog, err := stories.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	return catalog
}

func storyNames(list []stories.Story) []string {
	out := make([]string, 0, len(list))
	for _, story := range list {
		out = append(out, story.Name)
	}
	return out
}

package preview_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-auththeme/pkg/fixture"
	"github.com/goliatone/go-auththeme/pkg/interfaces"
	"github.com/goliatone/go-auththeme/pkg/page"
	"github.com/goliatone/go-auththeme/pkg/preview"
	"github.com/goliatone/go-auththeme/pkg/router"
	"github.com/goliatone/go-auththeme/pkg/stories"
	"github.com/goliatone/go-auththeme/pkg/testsupport"
)

func TestIndexListsStories(t *testing.T) {
	srv := newTestServer(t)

	res, body := get(t, srv, "/")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("index status %d: %s", res.StatusCode, body)
	}
	if ct := res.Header.Get("Content-Type"); ct != router.ContentType {
		t.Fatalf("unexpected content type %q", ct)
	}
	testsupport.AssertContains(t, body,
		`href="/stories/register/WithEmailAlreadyExists"`,
		`href="/stories/login/Default"`,
		`href="/stories/info/Default"`,
		"register.ftl",
	)
}

func TestStoryRoute(t *testing.T) {
	srv := newTestServer(t)

	res, body := get(t, srv, "/stories/register/WithTermsNotAccepted")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("story status %d: %s", res.StatusCode, body)
	}
	testsupport.AssertContains(t, body, "You must accept the terms.", `data-page-id="register.ftl"`)
}

func TestStoryRouteLocaleQuery(t *testing.T) {
	srv := newTestServer(t)

	_, body := get(t, srv, "/stories/login/Default?locale=it")
	testsupport.AssertContains(t, body, `lang="it" data-theme=`)
}

func TestStoryRouteNotFound(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/stories/register/Nope", "/stories/nope/Default", "/missing"} {
		res, _ := get(t, srv, path)
		if res.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, res.StatusCode)
		}
	}
}

func TestStoryRouteBaseOverrides(t *testing.T) {
	s, err := preview.New(preview.WithBaseOverrides(fixture.Overrides{Locale: fixture.Ptr("fr")}))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	_, body := get(t, srv, "/stories/login/Default")
	testsupport.AssertContains(t, body, `lang="fr" data-theme=`)

	// Stories that pick a locale win over the base.
	_, body = get(t, srv, "/stories/register/Default")
	testsupport.AssertContains(t, body, `lang="it" data-theme=`)
}

func TestStoryRouteInconsistentFixture(t *testing.T) {
	catalog := stories.NewCatalog()
	catalog.MustRegister(stories.Story{Page: page.Register, Name: "Plain"})

	s, err := preview.New(preview.WithCatalog(catalog))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	_, err = s.Render(context.Background(), page.Register, "Plain", fixture.Overrides{
		MessagesPerField: map[string]string{"shoeSize": "Too big."},
	})
	if !fixture.IsInconsistency(err) {
		t.Fatalf("expected inconsistency, got %v", err)
	}
}

func TestAssetsAndHealth(t *testing.T) {
	srv := newTestServer(t)

	res, body := get(t, srv, "/resources/auththeme/css/register.css")
	if res.StatusCode != http.StatusOK || strings.TrimSpace(body) == "" {
		t.Fatalf("asset status %d body %q", res.StatusCode, body)
	}

	res, body = get(t, srv, "/healthz")
	if res.StatusCode != http.StatusOK || body != "ok" {
		t.Fatalf("health status %d body %q", res.StatusCode, body)
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	s, err := preview.New()
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.ListenAndServe(ctx, "127.0.0.1:0", time.Second, time.Second)
	}()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("listen and serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := preview.New()
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	res, err := srv.Client().Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return res, string(body)
}

type recordedEntry struct {
	level string
	msg   string
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []recordedEntry
	names   []string
}

func (l *recordingLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, recordedEntry{level: level, msg: msg})
}

func (l *recordingLogger) GetLogger(name string) interfaces.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.names = append(l.names, name)
	return l
}

func (l *recordingLogger) Trace(msg string, _ ...any)                    { l.record("trace", msg) }
func (l *recordingLogger) Debug(msg string, _ ...any)                    { l.record("debug", msg) }
func (l *recordingLogger) Info(msg string, _ ...any)                     { l.record("info", msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)                     { l.record("warn", msg) }
func (l *recordingLogger) Error(msg string, _ ...any)                    { l.record("error", msg) }
func (l *recordingLogger) Fatal(msg string, _ ...any)                    { l.record("fatal", msg) }
func (l *recordingLogger) WithContext(context.Context) interfaces.Logger { return l }
func (l *recordingLogger) WithFields(map[string]any) interfaces.Logger   { return l }

func TestLoggerProviderReceivesRequestLogs(t *testing.T) {
	logs := &recordingLogger{}
	s, err := preview.New(preview.WithLoggerProvider(logs))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	handler := s.Handler()

	for _, path := range []string{"/stories/login/Default", "/stories/login/NoSuchStory"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	logs.mu.Lock()
	defer logs.mu.Unlock()
	if len(logs.names) == 0 || logs.names[0] != "auththeme.preview" {
		t.Fatalf("expected the preview logger, got %v", logs.names)
	}
	want := []recordedEntry{
		{level: "debug", msg: "preview request"},
		{level: "warn", msg: "preview request rejected"},
		{level: "debug", msg: "preview request"},
	}
	if len(logs.entries) != len(want) {
		t.Fatalf("unexpected log entries %+v", logs.entries)
	}
	for i, entry := range want {
		if logs.entries[i] != entry {
			t.Fatalf("entry %d: got %+v, want %+v", i, logs.entries[i], entry)
		}
	}
}

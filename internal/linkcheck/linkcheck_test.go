package linkcheck

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"futarinavi/internal/config"
	"futarinavi/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestChecker(t *testing.T) (*Checker, *metrics.Metrics) {
	t.Helper()
	m := metrics.New(prometheus.NewRegistry())
	c := NewChecker("futarinavi-test", m)
	c.WaybackBase = ""
	return c, m
}

func TestCheckLink(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, "<html><head><title>婚姻届 | 港区</title></head><body></body></html>")
	})
	mux.HandleFunc("/soft404", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, "<html><head><title>ページが見つかりません</title></head></html>")
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/nohead", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		io.WriteString(w, "%PDF-1.4")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, _ := newTestChecker(t)
	cases := []struct {
		path   string
		ok     bool
		status int
		reason string
	}{
		{"/ok", true, 200, ""},
		{"/soft404", false, 200, "soft 404"},
		{"/gone", false, 404, "status 404"},
		{"/nohead", true, 200, ""},
	}
	for _, tc := range cases {
		ok, status, reason := c.CheckLink(context.Background(), srv.URL+tc.path)
		if ok != tc.ok || status != tc.status || !strings.HasPrefix(reason, tc.reason) {
			t.Errorf("%s: got (%v, %d, %q), want (%v, %d, %q...)", tc.path, ok, status, reason, tc.ok, tc.status, tc.reason)
		}
	}
}

func TestCheckLinkUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, _ := newTestChecker(t)
	ok, _, reason := c.CheckLink(context.Background(), url)
	if ok || reason != "unreachable" {
		t.Errorf("got (%v, %q)", ok, reason)
	}
}

func TestPageTitle(t *testing.T) {
	got := pageTitle(strings.NewReader("<html><head><meta charset=utf-8><title> 戸籍謄本 </title></head></html>"))
	if got != "戸籍謄本" {
		t.Errorf("pageTitle = %q", got)
	}
	if got := pageTitle(strings.NewReader("<html><head></head><body><title>x</title></body>")); got != "" {
		t.Errorf("title outside head = %q", got)
	}
}

func TestCheckAll(t *testing.T) {
	var wayback *httptest.Server
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/dead" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer site.Close()
	wayback = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wayback/available" {
			t.Errorf("wayback path = %s", r.URL.Path)
		}
		io.WriteString(w, `{"archived_snapshots":{"closest":{"available":true,"url":"https://web.archive.org/web/2025/x","timestamp":"2025"}}}`)
	}))
	defer wayback.Close()

	c, m := newTestChecker(t)
	c.WaybackBase = wayback.URL
	targets := []Target{
		{Source: SourceTask, ID: "a", URL: site.URL + "/alive"},
		{Source: SourceProgram, ID: "b", URL: site.URL + "/dead"},
		{Source: SourceTask, ID: "c", URL: site.URL + "/dead"},
	}
	if c.Last() != nil {
		t.Fatal("Last before first run should be nil")
	}
	if n := c.CheckAll(context.Background(), targets); n != 2 {
		t.Fatalf("broken = %d, want 2", n)
	}

	rep := c.Last()
	if rep.Total != 3 || rep.Verified != 1 || rep.Wayback != 2 {
		t.Errorf("report = %+v", rep)
	}
	if rep.Results[0].Source != SourceProgram || rep.Results[1].ID != "c" {
		t.Errorf("results not sorted: %+v", rep.Results)
	}
	if rep.Results[0].WaybackURL == "" {
		t.Error("missing wayback url")
	}
	if got := testutil.ToFloat64(m.BrokenLinks); got != 2 {
		t.Errorf("broken gauge = %v", got)
	}
	if s, ok := c.StatusOf(site.URL + "/alive"); !ok || !s.Verified {
		t.Errorf("StatusOf alive = %+v, %v", s, ok)
	}
}

func TestTryWaybackRecoveryUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"archived_snapshots":{}}`)
	}))
	defer srv.Close()

	c, _ := newTestChecker(t)
	c.WaybackBase = srv.URL
	if u, ok := c.TryWaybackRecovery(context.Background(), "https://example.jp/x"); ok {
		t.Errorf("unexpected snapshot %q", u)
	}
}

func TestTargets(t *testing.T) {
	ts := Targets()
	if len(ts) == 0 {
		t.Fatal("no targets")
	}
	seen := map[string]bool{}
	for _, tg := range ts {
		if !isAbsolute(tg.URL) {
			t.Errorf("relative url in targets: %+v", tg)
		}
		seen[tg.Source] = true
	}
	if !seen[SourceTask] || !seen[SourceProgram] {
		t.Errorf("sources = %v", seen)
	}
}

func TestAdminHandler(t *testing.T) {
	old := config.Cfg.AdminAPIKey
	config.Cfg.AdminAPIKey = "secret"
	defer func() { config.Cfg.AdminAPIKey = old }()

	c, _ := newTestChecker(t)

	rec := httptest.NewRecorder()
	c.AdminHandler(rec, httptest.NewRequest(http.MethodGet, "/api/admin/links", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no key: status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/links", nil)
	req.Header.Set("X-Admin-Key", "secret")
	c.AdminHandler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var body map[string]interface{}
	json.NewDecoder(rec.Body).Decode(&body)
	if body["status"] != "pending" {
		t.Errorf("body = %v", body)
	}

	rec = httptest.NewRecorder()
	c.AdminHandler(rec, httptest.NewRequest(http.MethodPost, "/api/admin/links?key=secret", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST: status %d", rec.Code)
	}
}

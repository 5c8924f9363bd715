package linkcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"futarinavi/internal/logger"
	"futarinavi/internal/metrics"
	sentryutil "futarinavi/internal/sentry"
	"futarinavi/internal/simulator"
	"futarinavi/internal/timeline"

	"golang.org/x/net/html"
)

const (
	SourceTask    = "task"
	SourceProgram = "program"

	maxConcurrent = 5
	maxBodyBytes  = 512 * 1024
)

// Japanese municipal sites often answer 200 with a "page not found" body.
var notFoundMarkers = []string{"ページが見つかりません", "お探しのページ", "404", "Not Found"}

// Target is one outbound link shown to users.
type Target struct {
	Source string `json:"source"`
	ID     string `json:"id"`
	URL    string `json:"url"`
}

// Result is the outcome for one target.
type Result struct {
	Target
	StatusCode int    `json:"status_code"`
	Reason     string `json:"reason,omitempty"`
	WaybackURL string `json:"wayback_url,omitempty"`
	CheckedAt  string `json:"checked_at"`
}

// Report summarises one full run.
type Report struct {
	CheckedAt time.Time `json:"checked_at"`
	Total     int       `json:"total"`
	Verified  int       `json:"verified"`
	Broken    int       `json:"broken"`
	Wayback   int       `json:"using_wayback"`
	Results   []Result  `json:"broken_details"`
}

// Targets lists every absolute link in the task catalog and program catalog.
func Targets() []Target {
	var out []Target
	for _, d := range timeline.Definitions() {
		if isAbsolute(d.ActionURL) {
			out = append(out, Target{Source: SourceTask, ID: d.ID, URL: d.ActionURL})
		}
	}
	for _, p := range simulator.Programs() {
		if isAbsolute(p.ApplicationURL) {
			out = append(out, Target{Source: SourceProgram, ID: p.Slug, URL: p.ApplicationURL})
		}
		for _, m := range p.ApplicationMethods {
			if isAbsolute(m.URL) && m.URL != p.ApplicationURL {
				out = append(out, Target{Source: SourceProgram, ID: p.Slug, URL: m.URL})
			}
		}
	}
	return out
}

func isAbsolute(u string) bool {
	return strings.HasPrefix(u, "https://") || strings.HasPrefix(u, "http://")
}

// Status is the cached verdict for one URL.
type Status struct {
	Verified   bool   `json:"verified"`
	VerifiedAt string `json:"verified_at"`
}

// Checker verifies links and remembers the last report.
type Checker struct {
	Client      *http.Client
	UserAgent   string
	WaybackBase string
	Metrics     *metrics.Metrics

	statusCache sync.Map // url -> Status
	mu          sync.RWMutex
	last        *Report
}

// NewChecker returns a Checker with a 10s HTTP timeout.
func NewChecker(userAgent string, m *metrics.Metrics) *Checker {
	return &Checker{
		Client: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		UserAgent:   userAgent,
		WaybackBase: defaultWaybackBase,
		Metrics:     m,
	}
}

func (c *Checker) newRequest(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Language", "ja-JP,ja;q=0.9")
	return req, nil
}

// CheckLink sends HEAD, then GETs the page to catch soft 404s. Some
// servers reject HEAD outright, so a 405 or 501 falls through to GET.
func (c *Checker) CheckLink(ctx context.Context, url string) (ok bool, status int, reason string) {
	req, err := c.newRequest(ctx, http.MethodHead, url)
	if err != nil {
		return false, 0, err.Error()
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return false, 0, "unreachable"
	}
	resp.Body.Close()
	status = resp.StatusCode
	headRejected := status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented
	if !headRejected && (status < 200 || status >= 400) {
		return false, status, fmt.Sprintf("status %d", status)
	}

	req, err = c.newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return false, status, err.Error()
	}
	resp, err = c.Client.Do(req)
	if err != nil {
		return false, status, "unreachable"
	}
	defer resp.Body.Close()
	status = resp.StatusCode
	if status < 200 || status >= 400 {
		return false, status, fmt.Sprintf("status %d", status)
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "html") {
		return true, status, ""
	}
	title := pageTitle(io.LimitReader(resp.Body, maxBodyBytes))
	for _, m := range notFoundMarkers {
		if strings.Contains(title, m) {
			return false, status, "soft 404: " + title
		}
	}
	return true, status, ""
}

// pageTitle returns the text of the first <title> element.
func pageTitle(r io.Reader) string {
	z := html.NewTokenizer(r)
	inTitle := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := z.TagName()
			inTitle = string(name) == "title"
		case html.TextToken:
			if inTitle {
				return strings.TrimSpace(string(z.Text()))
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "head" {
				return ""
			}
			inTitle = false
		}
	}
}

// CheckAll verifies targets with at most five requests in flight and
// stores the report. It returns the number of broken links.
func (c *Checker) CheckAll(ctx context.Context, targets []Target) int {
	now := time.Now()
	today := now.Format("2006-01-02")

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		verified int64
		wayback  int64
		broken   = []Result{}
	)
	sem := make(chan struct{}, maxConcurrent)

	for _, t := range targets {
		wg.Add(1)
		go func(t Target) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			ok, status, reason := c.CheckLink(ctx, t.URL)
			c.statusCache.Store(t.URL, Status{Verified: ok, VerifiedAt: today})
			if ok {
				atomic.AddInt64(&verified, 1)
				logger.Debug("linkcheck: OK", map[string]interface{}{"id": t.ID, "url": t.URL})
				return
			}

			res := Result{Target: t, StatusCode: status, Reason: reason, CheckedAt: today}
			if archived, found := c.TryWaybackRecovery(ctx, t.URL); found {
				res.WaybackURL = archived
				atomic.AddInt64(&wayback, 1)
			}
			mu.Lock()
			broken = append(broken, res)
			mu.Unlock()

			logger.Warn("linkcheck: broken", map[string]interface{}{
				"source": t.Source, "id": t.ID, "url": t.URL, "status": status, "reason": reason,
			})
			sentryutil.CaptureMessage(
				"Broken link: "+t.ID,
				sentryutil.LevelWarning(),
				map[string]string{
					"component": "linkcheck",
					"source":    t.Source,
					"id":        t.ID,
					"url":       t.URL,
					"status":    fmt.Sprintf("%d", status),
				},
			)
		}(t)
	}
	wg.Wait()

	report := &Report{
		CheckedAt: now,
		Total:     len(targets),
		Verified:  int(verified),
		Broken:    len(broken),
		Wayback:   int(wayback),
		Results:   sortResults(broken),
	}
	c.mu.Lock()
	c.last = report
	c.mu.Unlock()
	if c.Metrics != nil {
		c.Metrics.BrokenLinks.Set(float64(report.Broken))
	}

	logger.Info("linkcheck: completed", map[string]interface{}{"broken": report.Broken, "total": report.Total})
	return report.Broken
}

func sortResults(rs []Result) []Result {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Source != rs[j].Source {
			return rs[i].Source < rs[j].Source
		}
		if rs[i].ID != rs[j].ID {
			return rs[i].ID < rs[j].ID
		}
		return rs[i].URL < rs[j].URL
	})
	return rs
}

// Last returns the most recent report, or nil before the first run.
func (c *Checker) Last() *Report {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last
}

// StatusOf returns the cached verdict for url.
func (c *Checker) StatusOf(url string) (Status, bool) {
	v, ok := c.statusCache.Load(url)
	if !ok {
		return Status{}, false
	}
	return v.(Status), true
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"futarinavi/internal/articles"
	"futarinavi/internal/config"
	"futarinavi/internal/metrics"
	"futarinavi/internal/store"

	"github.com/jung-kurt/gofpdf"
	"github.com/prometheus/client_golang/prometheus"
)

func TestMain(m *testing.M) {
	dir, _ := os.MkdirTemp("", "futarinavi-handlers")
	config.Cfg.CounterPath = filepath.Join(dir, "counter.json")
	config.Cfg.StoreBackend = "memory"
	SetMetrics(metrics.New(prometheus.NewRegistry()))
	if err := articles.Load(""); err != nil {
		panic(err)
	}
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func post(h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func get(h http.HandlerFunc, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestTimelineHandler_Valid(t *testing.T) {
	w := post(TimelineHandler, "/api/timeline",
		`{"marriage_date":"2026-04-01","today":"2026-04-11","completed_ids":["marriage-registration"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res timelineResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(res.Items) != 18 {
		t.Errorf("default options should give 18 items, got %d", len(res.Items))
	}
	if res.Summary.Total != 18 || res.Summary.Completed != 1 {
		t.Errorf("summary = %+v", res.Summary)
	}
	if res.Today != "2026-04-11" {
		t.Errorf("today = %s", res.Today)
	}
	if len(res.ThisWeek) == 0 {
		t.Error("mynumber-card should be in this week at D+10")
	}
	if w.Header().Get("Cache-Control") == "" {
		t.Error("missing Cache-Control")
	}
}

func TestTimelineHandler_Options(t *testing.T) {
	w := post(TimelineHandler, "/api/timeline",
		`{"marriage_date":"2026-04-01","today":"2026-04-01","options":{"include_moving":true,"name_changed":false}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var res timelineResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	if !res.Options.IncludeMoving || res.Options.NameChanged {
		t.Errorf("options = %+v", res.Options)
	}
	for _, it := range res.Items {
		if it.ID == "passport" {
			t.Error("name-change tasks must be filtered out")
		}
	}
}

func TestTimelineHandler_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing date":   `{}`,
		"bad date":       `{"marriage_date":"2026-02-30"}`,
		"bad today":      `{"marriage_date":"2026-04-01","today":"tomorrow"}`,
		"unknown task":   `{"marriage_date":"2026-04-01","completed_ids":["nope"]}`,
		"unknown field":  `{"marriage_date":"2026-04-01","extra":1}`,
		"malformed json": `{"marriage_date":`,
	}
	for name, body := range cases {
		if w := post(TimelineHandler, "/api/timeline", body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, w.Code)
		}
	}
	if w := get(TimelineHandler, "/api/timeline"); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET: expected 405, got %d", w.Code)
	}
}

func TestDefinitionsHandler(t *testing.T) {
	w := get(DefinitionsHandler, "/api/timeline/definitions")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var defs []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &defs)
	if len(defs) != 24 {
		t.Errorf("Expected 24 definitions, got %d", len(defs))
	}
}

func TestCalendarHandler(t *testing.T) {
	w := get(CalendarHandler, "/api/timeline/calendar?marriage_date=2026-04-01&done=marriage-registration")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(body, "END:VCALENDAR\r\n") {
		t.Error("not a calendar")
	}
	if strings.Contains(body, "UID:marriage-registration@") {
		t.Error("completed task should not be exported")
	}
	if !strings.Contains(body, "UID:mynumber-card-deadline@futarinavi.jp") {
		t.Error("missing deadline event")
	}
	if !strings.Contains(body, "DTSTART;VALUE=DATE:20260415") {
		t.Error("missing D+14 deadline date")
	}

	if w := get(CalendarHandler, "/api/timeline/calendar"); w.Code != http.StatusBadRequest {
		t.Errorf("missing date: expected 400, got %d", w.Code)
	}
	if w := get(CalendarHandler, "/api/timeline/calendar?marriage_date=2026-04-01&done=bogus"); w.Code != http.StatusBadRequest {
		t.Errorf("bad done: expected 400, got %d", w.Code)
	}
}

func TestICSEscape(t *testing.T) {
	if got := icsEscape("a,b;c\nd\\"); got != `a\,b\;c\nd\\` {
		t.Errorf("icsEscape = %q", got)
	}
	if got := icsEscape("a\r\nb\rc"); got != `a\nbc` {
		t.Errorf("icsEscape CRLF = %q", got)
	}
}

func TestReportHandler(t *testing.T) {
	w := post(ReportHandler, "/api/timeline/report", `{"marriage_date":"2026-04-01","today":"2026-04-05"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Header().Get("Content-Type") != "application/pdf" {
		t.Errorf("content type = %s", w.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")) {
		t.Error("body is not a PDF")
	}
}

func multipartUpload(t *testing.T, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "certificate.pdf")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(data)
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/parse-certificate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestParseCertificateHandler(t *testing.T) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Cell(100, 10, "Registered 2025-11-22")
	var pdfBuf bytes.Buffer
	if err := doc.Output(&pdfBuf); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	ParseCertificateHandler(w, multipartUpload(t, pdfBuf.Bytes()))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res certificateResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	if !res.Found || res.MarriageDate != "2025-11-22" {
		t.Errorf("result = %+v", res)
	}

	w = httptest.NewRecorder()
	ParseCertificateHandler(w, multipartUpload(t, []byte("plain text, not a pdf")))
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-PDF: expected 400, got %d", w.Code)
	}
}

func TestPlanLifecycle(t *testing.T) {
	SetStore(store.NewMemoryStore())

	w := post(PlansHandler, "/api/plans", `{"marriage_date":"2026-04-01","options":{"include_moving":true}}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created planResponse
	json.Unmarshal(w.Body.Bytes(), &created)
	id := created.Plan.ID
	if !store.ValidID(id) {
		t.Fatalf("bad id %q", id)
	}
	if !created.Plan.Options.IncludeMoving || !created.Plan.Options.NameChanged {
		t.Errorf("options not defaulted: %+v", created.Plan.Options)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/plans/"+id+"/complete", strings.NewReader(`{"task_id":"passport"}`))
	req.SetPathValue("id", id)
	w = httptest.NewRecorder()
	PlanCompleteHandler(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("complete: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var completed planResponse
	json.Unmarshal(w.Body.Bytes(), &completed)
	if len(completed.Plan.CompletedIDs) != 1 || completed.Timeline.Summary.Completed != 1 {
		t.Errorf("complete: plan = %+v summary = %+v", completed.Plan, completed.Timeline.Summary)
	}

	req = httptest.NewRequest(http.MethodPut, "/api/plans/"+id, strings.NewReader(`{"marriage_date":"2026-05-01"}`))
	req.SetPathValue("id", id)
	w = httptest.NewRecorder()
	PlanHandler(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated planResponse
	json.Unmarshal(w.Body.Bytes(), &updated)
	if updated.Plan.MarriageDate != "2026-05-01" || len(updated.Plan.CompletedIDs) != 1 {
		t.Errorf("update kept completed ids? %+v", updated.Plan)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/plans/"+id, nil)
	req.SetPathValue("id", id)
	w = httptest.NewRecorder()
	PlanHandler(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/plans/"+id, nil)
	req.SetPathValue("id", id)
	w = httptest.NewRecorder()
	PlanHandler(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/plans/"+id, nil)
	req.SetPathValue("id", id)
	w = httptest.NewRecorder()
	PlanHandler(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", w.Code)
	}
}

func TestPlanHandler_Invalid(t *testing.T) {
	SetStore(store.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/api/plans/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	w := httptest.NewRecorder()
	PlanHandler(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("bad id: expected 404, got %d", w.Code)
	}

	if w := post(PlansHandler, "/api/plans", `{"marriage_date":"01/04/2026"}`); w.Code != http.StatusBadRequest {
		t.Errorf("bad date: expected 400, got %d", w.Code)
	}

	id := store.NewID()
	req = httptest.NewRequest(http.MethodPost, "/api/plans/"+id+"/complete", strings.NewReader(`{"task_id":"nope"}`))
	req.SetPathValue("id", id)
	w = httptest.NewRecorder()
	PlanCompleteHandler(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown task: expected 400, got %d", w.Code)
	}
}

func TestPlanCompleteHandler_Concurrent(t *testing.T) {
	SetStore(store.NewMemoryStore())
	w := post(PlansHandler, "/api/plans", `{"marriage_date":"2026-04-01","options":{"include_moving":true}}`)
	var created planResponse
	json.Unmarshal(w.Body.Bytes(), &created)
	id := created.Plan.ID

	tasks := []string{"marriage-registration", "mynumber-card", "drivers-license", "pension",
		"passport", "bank-accounts", "move-in-notice", "utilities"}
	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		go func(task string) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/plans/"+id+"/complete", strings.NewReader(`{"task_id":"`+task+`"}`))
			req.SetPathValue("id", id)
			w := httptest.NewRecorder()
			PlanCompleteHandler(w, req)
			if w.Code != http.StatusOK {
				t.Errorf("complete %s: %d", task, w.Code)
			}
		}(task)
	}
	wg.Wait()

	req := httptest.NewRequest(http.MethodGet, "/api/plans/"+id, nil)
	req.SetPathValue("id", id)
	w = httptest.NewRecorder()
	PlanHandler(w, req)
	var got planResponse
	json.Unmarshal(w.Body.Bytes(), &got)
	if len(got.Plan.CompletedIDs) != len(tasks) {
		t.Errorf("Expected %d completed tasks, got %v", len(tasks), got.Plan.CompletedIDs)
	}

	missing := store.NewID()
	req = httptest.NewRequest(http.MethodPut, "/api/plans/"+missing, strings.NewReader(`{"marriage_date":"2026-05-01"}`))
	req.SetPathValue("id", missing)
	w = httptest.NewRecorder()
	PlanHandler(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("update of missing plan: expected 404, got %d", w.Code)
	}
}

func TestSimulateHandler(t *testing.T) {
	w := post(SimulateHandler, "/api/simulate",
		`{"marriage_date":"2026-04-01","partner_a_age":28,"partner_b_age":29,"household_income":"under-300"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res simulateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.TotalAnnualEstimate != 600000 || res.TotalDisplay != "60万円" {
		t.Errorf("total = %d (%s)", res.TotalAnnualEstimate, res.TotalDisplay)
	}
	if len(res.Financial) != 1 || res.Financial[0].Program.Slug != "marriage-subsidy" {
		t.Errorf("financial = %+v", res.Financial)
	}
	if len(res.Financial)+len(res.Service) != len(res.EligiblePrograms) {
		t.Error("split does not partition the result")
	}
}

func TestSimulateHandler_Invalid(t *testing.T) {
	cases := map[string]string{
		"underage":     `{"partner_a_age":17,"partner_b_age":30,"household_income":"under-300"}`,
		"too old":      `{"partner_a_age":30,"partner_b_age":121,"household_income":"under-300"}`,
		"income band":  `{"partner_a_age":30,"partner_b_age":30,"household_income":"lots"}`,
		"district":     `{"partner_a_age":30,"partner_b_age":30,"household_income":"300-500","district":"` + strings.Repeat("区", 65) + `"}`,
		"bad date":     `{"partner_a_age":30,"partner_b_age":30,"household_income":"300-500","marriage_date":"2026-13-01"}`,
		"not json":     `nope`,
		"unknown keys": `{"partner_a_age":30,"partner_b_age":30,"household_income":"300-500","savings":1}`,
	}
	for name, body := range cases {
		if w := post(SimulateHandler, "/api/simulate", body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, w.Code)
		}
	}
}

func TestShareHandler(t *testing.T) {
	w := post(ShareHandler, "/api/simulate/share",
		`{"partner_a_age":35,"partner_b_age":33,"household_income":"300-500","district":"港区"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("encode: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var enc map[string]string
	json.Unmarshal(w.Body.Bytes(), &enc)
	token := enc["token"]
	if !strings.HasPrefix(token, "FN-") {
		t.Fatalf("Expected token with FN- prefix, got: %s", token)
	}

	w = get(ShareHandler, "/api/simulate/share?token="+token)
	if w.Code != http.StatusOK {
		t.Fatalf("decode: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var dec struct {
		Input  map[string]interface{} `json:"input"`
		Result simulateResponse       `json:"result"`
	}
	json.Unmarshal(w.Body.Bytes(), &dec)
	if dec.Input["district"] != "港区" || dec.Result.TotalAnnualEstimate != 300000 {
		t.Errorf("decoded = %+v", dec)
	}

	if w := get(ShareHandler, "/api/simulate/share?token=XX-xyz"); w.Code != http.StatusBadRequest {
		t.Errorf("bad token: expected 400, got %d", w.Code)
	}
}

func TestProgramsHandler(t *testing.T) {
	w := get(ProgramsHandler, "/api/programs")
	var all []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &all)
	if len(all) != 9 {
		t.Errorf("Expected 9 programs, got %d", len(all))
	}

	w = get(ProgramsHandler, "/api/programs?category=tax")
	var tax []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &tax)
	if len(tax) == 0 || len(tax) >= len(all) {
		t.Errorf("tax filter returned %d", len(tax))
	}
	for _, p := range tax {
		if p["category"] != "tax" {
			t.Errorf("non-tax program %v", p["slug"])
		}
	}

	w = get(ProgramsHandler, "/api/programs?category=none")
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("unknown category should be an empty list, got %s", w.Body.String())
	}
}

func TestProgramDetailAndPage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/programs/marriage-subsidy", nil)
	req.SetPathValue("slug", "marriage-subsidy")
	w := httptest.NewRecorder()
	ProgramDetailHandler(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/programs/nope", nil)
	req.SetPathValue("slug", "nope")
	w = httptest.NewRecorder()
	ProgramDetailHandler(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/programs/marriage-subsidy", nil)
	req.SetPathValue("slug", "marriage-subsidy")
	w = httptest.NewRecorder()
	ProgramPageHandler(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "<h1>") {
		t.Errorf("page: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "60万円") {
		t.Error("page should show the headline amount")
	}
}

func TestArticlesHandlers(t *testing.T) {
	w := get(ArticlesAPIHandler, "/api/articles")
	var list []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 3 {
		t.Fatalf("Expected 3 articles, got %d", len(list))
	}
	if _, ok := list[0]["html"]; ok {
		t.Error("list should not carry article bodies")
	}

	req := httptest.NewRequest(http.MethodGet, "/articles/marriage-registration-guide", nil)
	req.SetPathValue("slug", "marriage-registration-guide")
	w = httptest.NewRecorder()
	ArticlePageHandler(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "関連ガイド") {
		t.Errorf("article page: %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/articles/nope", nil)
	req.SetPathValue("slug", "nope")
	w = httptest.NewRecorder()
	ArticlePageHandler(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing article: expected 404, got %d", w.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	w := get(HealthHandler, "/api/health")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var result map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if result["status"] != "ok" {
		t.Error("Health status should be ok")
	}
	if result["tasks"].(float64) != 24 || result["programs"].(float64) != 9 {
		t.Errorf("catalog sizes = %v / %v", result["tasks"], result["programs"])
	}
}

func TestStatsHandlerCounts(t *testing.T) {
	before := getCounter()
	post(SimulateHandler, "/api/simulate", `{"partner_a_age":30,"partner_b_age":30,"household_income":"300-500"}`)
	w := get(StatsHandler, "/api/stats")
	var stats map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &stats)
	if int64(stats["simulations"].(float64)) != before.Simulations+1 {
		t.Errorf("simulations = %v, before %d", stats["simulations"], before.Simulations)
	}
}

func TestNotFoundHandler(t *testing.T) {
	w := get(NotFoundHandler, "/api/nothing")
	if w.Code != http.StatusNotFound || !strings.Contains(w.Header().Get("Content-Type"), "json") {
		t.Errorf("api 404: %d %s", w.Code, w.Header().Get("Content-Type"))
	}
	w = get(NotFoundHandler, "/nothing")
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), "ページが見つかりません") {
		t.Errorf("html 404: %d", w.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, 1, 2)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes[i] = w.Code
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.RemoteAddr = "192.0.2.2:1234"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Error("other clients have their own bucket")
	}
}

func TestRateLimiter_ForwardedFor(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	send := func(rl *RateLimiter, fwd string) int {
		h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("X-Forwarded-For", fwd)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	// Without a trusted proxy a rotating header cannot mint fresh buckets.
	rl := NewRateLimiter(ctx, 1, 1)
	if code := send(rl, "198.51.100.1"); code != http.StatusOK {
		t.Fatalf("first request = %d", code)
	}
	if code := send(rl, "198.51.100.2"); code != http.StatusTooManyRequests {
		t.Errorf("spoofed X-Forwarded-For = %d, want 429", code)
	}

	// Behind a proxy the last hop it appended is the client.
	rl = NewRateLimiter(ctx, 1, 1)
	rl.TrustProxy = true
	if code := send(rl, "203.0.113.9, 198.51.100.1"); code != http.StatusOK {
		t.Fatalf("first proxied request = %d", code)
	}
	if code := send(rl, "203.0.113.10, 198.51.100.2"); code != http.StatusOK {
		t.Errorf("distinct proxied client = %d, want 200", code)
	}
	if code := send(rl, "192.0.2.77, 198.51.100.1"); code != http.StatusTooManyRequests {
		t.Errorf("client-supplied prefix changed the key: %d", code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	req.Header.Set("X-Forwarded-For", "1.1.1.1, 2.2.2.2")
	if got := clientIP(req, false); got != "10.0.0.1" {
		t.Errorf("untrusted clientIP = %q", got)
	}
	if got := clientIP(req, true); got != "2.2.2.2" {
		t.Errorf("trusted clientIP = %q", got)
	}
	req.Header.Del("X-Forwarded-For")
	if got := clientIP(req, true); got != "10.0.0.1" {
		t.Errorf("no header clientIP = %q", got)
	}
}

func TestSitemapHandler(t *testing.T) {
	config.Cfg.BaseURL = "https://example.jp"
	w := get(SitemapHandler, "/sitemap.xml")
	body := w.Body.String()
	for _, want := range []string{"https://example.jp/programs/marriage-subsidy", "https://example.jp/articles/name-change-checklist"} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing %s", want)
		}
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"futarinavi/internal/certificate"
	"futarinavi/internal/config"
	"futarinavi/internal/dates"
	"futarinavi/internal/report"
	sentryutil "futarinavi/internal/sentry"
	"futarinavi/internal/timeline"
)

type timelineOptions struct {
	IncludeMoving *bool `json:"include_moving"`
	NameChanged   *bool `json:"name_changed"`
}

type timelineRequest struct {
	MarriageDate string          `json:"marriage_date"`
	Options      timelineOptions `json:"options"`
	CompletedIDs []string        `json:"completed_ids"`
	Today        string          `json:"today"`
}

type timelineResponse struct {
	MarriageDate string                   `json:"marriage_date"`
	Today        string                   `json:"today"`
	Options      timeline.Options         `json:"options"`
	Items        []timeline.Item          `json:"items"`
	Categories   []timeline.CategoryGroup `json:"categories"`
	Urgencies    []timeline.UrgencyGroup  `json:"urgencies"`
	ThisWeek     []timeline.Item          `json:"this_week"`
	ThisMonth    []timeline.Item          `json:"this_month"`
	Summary      timeline.Summary         `json:"summary"`
	Schedule     []timeline.Slot          `json:"schedule"`
	Documents    []string                 `json:"documents"`
}

// resolvedTimeline is a validated request turned into core inputs.
type resolvedTimeline struct {
	marriageDate time.Time
	today        time.Time
	opts         timeline.Options
	completed    timeline.CompletedSet
}

func (req timelineRequest) resolve() (resolvedTimeline, string, bool) {
	md, msg, ok := parseDate("marriage_date", req.MarriageDate)
	if !ok {
		return resolvedTimeline{}, msg, false
	}
	today, msg, ok := resolveToday(req.Today)
	if !ok {
		return resolvedTimeline{}, msg, false
	}
	if msg, ok := validateCompleted(req.CompletedIDs); !ok {
		return resolvedTimeline{}, msg, false
	}
	return resolvedTimeline{
		marriageDate: md,
		today:        today,
		opts:         timeline.OptionsFrom(req.Options.IncludeMoving, req.Options.NameChanged),
		completed:    timeline.NewCompletedSet(req.CompletedIDs...),
	}, "", true
}

func buildTimeline(rt resolvedTimeline) timelineResponse {
	items := timeline.Generate(rt.marriageDate, rt.opts, rt.completed, rt.today)
	meter.TimelineGenerations.Inc()
	slots := timeline.ModelSchedule(items)
	return timelineResponse{
		MarriageDate: dates.Format(rt.marriageDate),
		Today:        dates.Format(rt.today),
		Options:      rt.opts,
		Items:        items,
		Categories:   timeline.GroupByCategory(items),
		Urgencies:    timeline.GroupByUrgency(items),
		ThisWeek:     timeline.ThisWeek(items),
		ThisMonth:    timeline.ThisMonth(items),
		Summary:      timeline.Summarize(items, rt.marriageDate, rt.today),
		Schedule:     slots,
		Documents:    timeline.PendingDocuments(slots),
	}
}

// TimelineHandler generates the procedure timeline for a marriage date.
func TimelineHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req timelineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rt, msg, ok := req.resolve()
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	incrementTimelines()
	writeJSON(w, buildTimeline(rt))
}

// DefinitionsHandler returns the task catalog.
func DefinitionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	json.NewEncoder(w).Encode(timeline.Definitions())
}

// ---------- CalendarHandler ----------

func queryBool(r *http.Request, key string) *bool {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

// CalendarHandler exports scheduled and deadline dates as an ICS file.
func CalendarHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	md, msg, ok := parseDate("marriage_date", q.Get("marriage_date"))
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	var done []string
	if raw := q.Get("done"); raw != "" {
		done = strings.Split(raw, ",")
		if msg, ok := validateCompleted(done); !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	}
	opts := timeline.OptionsFrom(queryBool(r, "moving"), queryBool(r, "name_changed"))
	items := timeline.Generate(md, opts, timeline.NewCompletedSet(done...), config.Now())
	meter.TimelineGenerations.Inc()

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="futarinavi-schedule.ics"`)
	io.WriteString(w, buildICS(items, time.Now()))
}

func buildICS(items []timeline.Item, now time.Time) string {
	stamp := now.UTC().Format("20060102T150405Z")

	var sb strings.Builder
	sb.WriteString("BEGIN:VCALENDAR\r\n")
	sb.WriteString("VERSION:2.0\r\n")
	sb.WriteString("PRODID:-//futarinavi//JA\r\n")
	sb.WriteString("CALSCALE:GREGORIAN\r\n")
	sb.WriteString("METHOD:PUBLISH\r\n")
	sb.WriteString("X-WR-CALNAME:ふたりナビ 結婚手続き\r\n")

	for _, it := range items {
		if it.Completed {
			continue
		}
		writeEvent(&sb, it.ID+"@futarinavi.jp", stamp, it.ScheduledDate, it.Title, it.Description+" / "+it.Location, false)
		if it.DeadlineDate != nil {
			writeEvent(&sb, it.ID+"-deadline@futarinavi.jp", stamp, *it.DeadlineDate, "期限: "+it.Title, it.Location, true)
		}
	}

	sb.WriteString("END:VCALENDAR\r\n")
	return sb.String()
}

func writeEvent(sb *strings.Builder, uid, stamp string, day time.Time, summary, desc string, alarms bool) {
	start := day.Format("20060102")
	end := dates.AddDays(day, 1).Format("20060102")

	sb.WriteString("BEGIN:VEVENT\r\n")
	sb.WriteString("UID:" + uid + "\r\n")
	sb.WriteString("DTSTAMP:" + stamp + "\r\n")
	sb.WriteString("DTSTART;VALUE=DATE:" + start + "\r\n")
	sb.WriteString("DTEND;VALUE=DATE:" + end + "\r\n")
	sb.WriteString("SUMMARY:" + icsEscape(summary) + "\r\n")
	sb.WriteString("DESCRIPTION:" + icsEscape(desc) + "\r\n")
	if alarms {
		sb.WriteString("BEGIN:VALARM\r\n")
		sb.WriteString("TRIGGER:-P3D\r\n")
		sb.WriteString("ACTION:DISPLAY\r\n")
		sb.WriteString("DESCRIPTION:期限まであと3日: " + icsEscape(summary) + "\r\n")
		sb.WriteString("END:VALARM\r\n")
	}
	sb.WriteString("END:VEVENT\r\n")
}

var icsReplacer = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\r", "", "\n", `\n`)

func icsEscape(s string) string { return icsReplacer.Replace(s) }

// ---------- ReportHandler ----------

// ReportHandler renders the checklist PDF for a timeline request.
func ReportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req timelineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rt, msg, ok := req.resolve()
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	items := timeline.Generate(rt.marriageDate, rt.opts, rt.completed, rt.today)
	meter.TimelineGenerations.Inc()
	sum := timeline.Summarize(items, rt.marriageDate, rt.today)

	data, err := report.TimelinePDF(items, sum, rt.marriageDate, report.Options{
		FontPath:    config.Cfg.ReportFontPath,
		GeneratedAt: rt.today,
	})
	if err != nil {
		sentryutil.CaptureError(err, map[string]string{"handler": "report", "phase": "render"})
		InternalErrorHandler(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="futarinavi-checklist-`+dates.Format(rt.marriageDate)+`.pdf"`)
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}

// ---------- ParseCertificateHandler ----------

type certificateResponse struct {
	MarriageDate string `json:"marriage_date,omitempty"`
	Found        bool   `json:"found"`
}

// ParseCertificateHandler extracts the marriage date from an uploaded
// 婚姻届受理証明書 PDF.
func ParseCertificateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, certificate.MaxUploadBytes)
	if err := r.ParseMultipartForm(certificate.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "ファイルが大きすぎます（最大5MB）")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ファイルが見つかりません")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		sentryutil.CaptureError(err, map[string]string{"handler": "parse-certificate", "phase": "read"})
		InternalErrorHandler(w, r)
		return
	}

	text, err := certificate.ExtractText(data)
	if errors.Is(err, certificate.ErrNotPDF) {
		writeError(w, http.StatusBadRequest, "PDFファイルのみ対応しています")
		return
	}
	if err != nil {
		sentryutil.CaptureError(err, map[string]string{"handler": "parse-certificate", "phase": "pdf-parse"})
		writeJSON(w, certificateResponse{Found: false})
		return
	}

	md, ok := certificate.ExtractMarriageDate(text, config.Location())
	if !ok {
		writeJSON(w, certificateResponse{Found: false})
		return
	}
	writeJSON(w, certificateResponse{MarriageDate: dates.Format(md), Found: true})
}

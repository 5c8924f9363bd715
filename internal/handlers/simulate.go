package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"futarinavi/internal/models"
	"futarinavi/internal/simulator"

	"github.com/yuin/goldmark"
)

type simulateResponse struct {
	models.SimulatorResult
	TotalDisplay string                   `json:"total_display"`
	Financial    []models.EligibleProgram `json:"financial"`
	Service      []models.EligibleProgram `json:"service"`
}

func simulate(in models.SimulatorInput) simulateResponse {
	res := simulator.Run(in)
	meter.ObserveSimulation(res.TotalAnnualEstimate)
	fin, svc := simulator.Split(res)
	return simulateResponse{
		SimulatorResult: res,
		TotalDisplay:    simulator.FormatYen(res.TotalAnnualEstimate),
		Financial:       fin,
		Service:         svc,
	}
}

// SimulateHandler runs the benefit simulator.
func SimulateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var in models.SimulatorInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg, ok := validateSimulatorInput(in); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	incrementSimulations()
	writeJSON(w, simulate(in))
}

// ShareHandler encodes an input into a token (POST) or replays a token (GET).
func ShareHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var in models.SimulatorInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg, ok := validateSimulatorInput(in); !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		token, err := simulator.EncodeShareToken(in)
		if err != nil {
			InternalErrorHandler(w, r)
			return
		}
		writeJSON(w, map[string]string{"token": token})

	case http.MethodGet:
		in, err := simulator.DecodeShareToken(r.URL.Query().Get("token"))
		if errors.Is(err, simulator.ErrInvalidShareToken) {
			writeError(w, http.StatusBadRequest, "invalid share token")
			return
		}
		// A token can be hand-edited, so it gets the same checks as a form.
		if msg, ok := validateSimulatorInput(in); !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		writeJSON(w, map[string]interface{}{"input": in, "result": simulate(in)})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ---------- program catalog ----------

// ProgramsHandler lists programs, optionally filtered by ?category=.
func ProgramsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var list []models.Program
	if cat := r.URL.Query().Get("category"); cat != "" {
		list = simulator.ProgramsByCategory(models.ProgramCategory(cat))
	} else {
		list = simulator.Programs()
	}
	if list == nil {
		list = []models.Program{}
	}
	writeJSON(w, list)
}

// ProgramDetailHandler returns one program by slug.
func ProgramDetailHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	p, ok := simulator.ProgramBySlug(r.PathValue("slug"))
	if !ok {
		writeError(w, http.StatusNotFound, "program not found")
		return
	}
	writeJSON(w, map[string]interface{}{
		"program":      p,
		"action_items": simulator.ActionItems(p.Slug),
	})
}

var markdown = goldmark.New()

// markdownHTML renders trusted catalog markdown. Empty input gives "".
func markdownHTML(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "<p>" + htmlEscape(src) + "</p>"
	}
	return buf.String()
}

// ProgramPageHandler serves an HTML page for a single program.
func ProgramPageHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := simulator.ProgramBySlug(r.PathValue("slug"))
	if !ok {
		NotFoundHandler(w, r)
		return
	}

	var sb strings.Builder
	sb.WriteString(`<span class="badge">` + htmlEscape(simulator.CategoryLabel(p.Category)) + `</span>`)
	sb.WriteString(`<h1>` + htmlEscape(p.Name) + `</h1>`)
	sb.WriteString(`<p>` + htmlEscape(p.Description) + `</p>`)
	if p.Amount.Value != nil {
		sb.WriteString(`<p class="amount">最大 ` + simulator.FormatYen(*p.Amount.Value) + `</p>`)
	}
	if p.Amount.Description != "" {
		sb.WriteString(`<p>` + htmlEscape(p.Amount.Description) + `</p>`)
	}

	if len(p.ApplicationSteps) > 0 {
		sb.WriteString(`<h2>申請の流れ</h2><ol>`)
		for _, s := range p.ApplicationSteps {
			sb.WriteString(`<li><strong>` + htmlEscape(s.Title) + `</strong> ` + htmlEscape(s.Description))
			if s.Tip != "" {
				sb.WriteString(`<br><small>` + htmlEscape(s.Tip) + `</small>`)
			}
			sb.WriteString(`</li>`)
		}
		sb.WriteString(`</ol>`)
	}
	if len(p.RequiredDocuments) > 0 {
		sb.WriteString(`<h2>必要書類</h2><ul>`)
		for _, d := range p.RequiredDocuments {
			sb.WriteString(`<li>` + htmlEscape(d.Name) + `（` + htmlEscape(d.ObtainHow) + `）</li>`)
		}
		sb.WriteString(`</ul>`)
	}

	sb.WriteString(`<h2>やること</h2><ul>`)
	for _, a := range simulator.ActionItems(p.Slug) {
		sb.WriteString(`<li>` + htmlEscape(a) + `</li>`)
	}
	sb.WriteString(`</ul>`)

	if notes := markdownHTML(p.Notes); notes != "" {
		sb.WriteString(`<h2>注意事項</h2>` + notes)
	}
	if len(p.FAQ) > 0 {
		sb.WriteString(`<h2>よくある質問</h2>`)
		for _, f := range p.FAQ {
			sb.WriteString(`<div class="card"><p><strong>Q. ` + htmlEscape(f.Question) + `</strong></p>` + markdownHTML(f.Answer) + `</div>`)
		}
	}
	if p.ApplicationURL != "" {
		sb.WriteString(fmt.Sprintf(`<p><a href="%s" rel="noopener" target="_blank">公式サイトで確認する</a></p>`, htmlEscape(p.ApplicationURL)))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write([]byte(page(p.Name+" | ふたりナビ", p.Description, "/programs/"+p.Slug, "", sb.String())))
}

// ProgramListPageHandler serves the HTML index of programs by category.
func ProgramListPageHandler(w http.ResponseWriter, r *http.Request) {
	var sb strings.Builder
	sb.WriteString(`<h1>結婚で使える制度一覧</h1>`)
	for _, c := range simulator.CategoryOrder {
		ps := simulator.ProgramsByCategory(c)
		if len(ps) == 0 {
			continue
		}
		sb.WriteString(`<h2>` + htmlEscape(simulator.CategoryLabel(c)) + `</h2><ul>`)
		for _, p := range ps {
			sb.WriteString(`<li><a href="/programs/` + p.Slug + `">` + htmlEscape(p.Name) + `</a></li>`)
		}
		sb.WriteString(`</ul>`)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page("制度一覧 | ふたりナビ", "結婚した夫婦が使える給付金・税制・保険の制度をまとめました。", "/programs", "", sb.String())))
}

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"futarinavi/internal/articles"
	"futarinavi/internal/config"
	"futarinavi/internal/metrics"
	"futarinavi/internal/simulator"
	"futarinavi/internal/store"
	"futarinavi/internal/timeline"
)

var startTime = time.Now()

var (
	plans store.PlanStore  = store.NewMemoryStore()
	meter *metrics.Metrics = metrics.Default
)

// SetStore wires the plan backend used by the plan routes.
func SetStore(s store.PlanStore) { plans = s }

// SetMetrics replaces the metrics sink (tests use a private registry).
func SetMetrics(m *metrics.Metrics) { meter = m }

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	// No caching - results depend on the caller's dates
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	json.NewEncoder(w).Encode(v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// StatsHandler returns the persistent usage counter.
func StatsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	c := getCounter()
	now := config.Now()
	writeJSON(w, map[string]interface{}{
		"timelines":           c.Timelines,
		"simulations":         c.Simulations,
		"last_update_display": now.Format("2006年1月2日 15:04"),
	})
}

// HealthHandler returns status, uptime and catalog sizes.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(startTime)
	writeJSON(w, map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int(uptime.Seconds()),
		"uptime_human":   formatDuration(uptime),
		"tasks":          len(timeline.Definitions()),
		"programs":       len(simulator.Programs()),
		"articles":       len(articles.All()),
		"store":          config.Cfg.StoreBackend,
	})
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

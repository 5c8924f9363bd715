package linkcheck

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"futarinavi/internal/config"
)

// AdminHandler serves GET /api/admin/links.
// Protected by ADMIN_API_KEY (query param "key" or header "X-Admin-Key").
func (c *Checker) AdminHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !CheckAdminKey(r) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	report := c.Last()
	if report == nil {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "pending",
			"targets": len(Targets()),
		})
		return
	}
	json.NewEncoder(w).Encode(report)
}

// CheckAdminKey accepts the configured key from the query or header.
// An empty ADMIN_API_KEY leaves admin routes open (dev mode).
func CheckAdminKey(r *http.Request) bool {
	key := config.Cfg.AdminAPIKey
	if key == "" {
		return true
	}
	for _, got := range []string{r.URL.Query().Get("key"), r.Header.Get("X-Admin-Key")} {
		if got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(key)) == 1 {
			return true
		}
	}
	return false
}

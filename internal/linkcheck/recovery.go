package linkcheck

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"futarinavi/internal/logger"
)

const defaultWaybackBase = "https://archive.org"

type waybackResponse struct {
	ArchivedSnapshots struct {
		Closest struct {
			Available bool   `json:"available"`
			URL       string `json:"url"`
			Timestamp string `json:"timestamp"`
			Status    string `json:"status"`
		} `json:"closest"`
	} `json:"archived_snapshots"`
}

// TryWaybackRecovery looks up the closest archived snapshot of rawURL so
// admins have a replacement to point users at while the page is down.
func (c *Checker) TryWaybackRecovery(ctx context.Context, rawURL string) (string, bool) {
	if c.WaybackBase == "" {
		return "", false
	}
	apiURL := c.WaybackBase + "/wayback/available?url=" + url.QueryEscape(rawURL)

	req, err := c.newRequest(ctx, http.MethodGet, apiURL)
	if err != nil {
		return "", false
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		logger.Warn("wayback: request failed", map[string]interface{}{
			"url": rawURL, "error": err.Error(),
		})
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	var wb waybackResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&wb); err != nil {
		return "", false
	}

	snap := wb.ArchivedSnapshots.Closest
	if snap.Available && snap.URL != "" {
		logger.Info("wayback: found archived snapshot", map[string]interface{}{
			"original": rawURL, "archived": snap.URL, "timestamp": snap.Timestamp,
		})
		return snap.URL, true
	}
	return "", false
}

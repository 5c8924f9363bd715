package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// NotFoundHandler serves a styled 404 page or JSON error for API routes.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeError(w, http.StatusNotFound, "endpoint not found")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(errorPageHTML("404", "ページが見つかりません", "お探しのページは移動または削除された可能性があります。")))
}

// InternalErrorHandler serves a styled 500 page or JSON error for API routes.
func InternalErrorHandler(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(errorPageHTML("500", "サーバーエラー", "エラーが発生しました。しばらくしてから再度お試しください。")))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func errorPageHTML(code, title, message string) string {
	return `<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>` + title + ` | ふたりナビ</title>
<meta name="robots" content="noindex">
<meta name="theme-color" content="#1B3A54">
<style>` + SharedCSS() + `
.error-wrap{flex:1;display:flex;align-items:center;justify-content:center;text-align:center;padding:40px 24px}
.error-code{font-size:clamp(5rem,15vw,8rem);color:var(--rose);line-height:1;margin-bottom:8px;opacity:.85}
.error-wrap p{color:var(--ink-75);max-width:480px;margin:0 auto 24px}
.btn-home{display:inline-block;padding:12px 28px;background:var(--navy);color:#fff;border-radius:var(--radius);font-weight:600}
</style>
</head>
<body>
` + headerHTML() + `
<main class="error-wrap">
<div>
<div class="error-code">` + code + `</div>
<h1>` + title + `</h1>
<p>` + message + `</p>
<a href="/" class="btn-home">トップへ戻る</a>
</div>
</main>
` + footerHTML() + `
</body>
</html>`
}

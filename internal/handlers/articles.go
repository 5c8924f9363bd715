package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"futarinavi/internal/articles"
	"futarinavi/internal/config"
)

// ---------- Category metadata ----------

var articleCategoryLabels = map[string]string{
	"benefits":   "給付金",
	"procedures": "手続き",
	"tax":        "税金",
	"insurance":  "保険・年金",
	"housing":    "住まい",
	"lifestyle":  "暮らし",
}

func articleCategoryLabel(slug string) string {
	if l, ok := articleCategoryLabels[slug]; ok {
		return l
	}
	return slug
}

// ArticlesAPIHandler lists guides without their bodies.
func ArticlesAPIHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var list []articles.Article
	if cat := r.URL.Query().Get("category"); cat != "" {
		list = articles.ByCategory(cat)
	} else {
		list = articles.All()
	}
	out := make([]articles.Article, 0, len(list))
	for _, a := range list {
		a.HTMLContent = ""
		out = append(out, a)
	}
	writeJSON(w, out)
}

// ArticleListHandler serves the HTML guide index.
func ArticleListHandler(w http.ResponseWriter, r *http.Request) {
	catFilter := r.URL.Query().Get("cat")
	var list []articles.Article
	if catFilter != "" {
		list = articles.ByCategory(catFilter)
	} else {
		list = articles.All()
	}

	var sb strings.Builder
	sb.WriteString(`<h1>結婚手続きガイド</h1>`)
	sb.WriteString(`<nav class="cat-nav"><a href="/articles">すべて</a>`)
	for _, c := range articles.Categories {
		sb.WriteString(` <a href="/articles?cat=` + c + `">` + articleCategoryLabel(c) + `</a>`)
	}
	sb.WriteString(`</nav>`)

	if len(list) == 0 {
		sb.WriteString(`<p>このカテゴリのガイドはまだありません。</p>`)
	}
	for _, a := range list {
		sb.WriteString(fmt.Sprintf(`<div class="card"><span class="badge">%s</span> <small>Vol.%d %s</small>
<h2><a href="/articles/%s">%s</a></h2><p>%s</p></div>`,
			htmlEscape(articleCategoryLabel(a.Category)), a.Vol, htmlEscape(a.PublishedAt),
			a.Slug, htmlEscape(a.Title), htmlEscape(a.Description)))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page("結婚手続きガイド | ふたりナビ",
		"婚姻届から名義変更、給付金まで。結婚前後の手続きをわかりやすく解説します。",
		"/articles", ".cat-nav{display:flex;gap:12px;flex-wrap:wrap;margin-bottom:16px;font-size:.85rem}", sb.String())))
}

// ArticlePageHandler serves one guide.
func ArticlePageHandler(w http.ResponseWriter, r *http.Request) {
	a := articles.BySlug(r.PathValue("slug"))
	if a == nil {
		NotFoundHandler(w, r)
		return
	}

	var sb strings.Builder
	sb.WriteString(`<span class="badge">` + htmlEscape(articleCategoryLabel(a.Category)) + `</span>`)
	sb.WriteString(`<h1>` + htmlEscape(a.Title) + `</h1>`)
	sb.WriteString(`<p><small>Vol.` + fmt.Sprint(a.Vol) + ` / ` + htmlEscape(a.PublishedAt) + `</small></p>`)
	if len(a.KeyPoints) > 0 {
		sb.WriteString(`<div class="card"><strong>この記事のポイント</strong><ul>`)
		for _, k := range a.KeyPoints {
			sb.WriteString(`<li>` + htmlEscape(k) + `</li>`)
		}
		sb.WriteString(`</ul></div>`)
	}
	sb.WriteString(`<article>` + a.HTMLContent + `</article>`)

	if rel := articles.Related(*a); len(rel) > 0 {
		sb.WriteString(`<h2>関連ガイド</h2><ul>`)
		for _, ra := range rel {
			sb.WriteString(`<li><a href="/articles/` + ra.Slug + `">` + htmlEscape(ra.Title) + `</a></li>`)
		}
		sb.WriteString(`</ul>`)
	}

	// JSON-LD Article
	sb.WriteString(fmt.Sprintf(`<script type="application/ld+json">{"@context":"https://schema.org","@type":"Article","headline":"%s","datePublished":"%s","url":"%s/articles/%s"}</script>`,
		htmlEscape(a.Title), htmlEscape(a.PublishedAt), config.Cfg.BaseURL, a.Slug))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write([]byte(page(a.Title+" | ふたりナビ", a.Description, "/articles/"+a.Slug, "", sb.String())))
}

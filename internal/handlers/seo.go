package handlers

import (
	"encoding/xml"
	"net/http"

	"futarinavi/internal/articles"
	"futarinavi/internal/config"
	"futarinavi/internal/simulator"
)

// ---------- Sitemap ----------

type siteURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name  `xml:"urlset"`
	XMLNS   string    `xml:"xmlns,attr"`
	URLs    []siteURL `xml:"url"`
}

// SitemapHandler lists the static pages, every program and every article.
func SitemapHandler(w http.ResponseWriter, r *http.Request) {
	baseURL := config.Cfg.BaseURL
	today := config.Now().Format("2006-01-02")

	urls := []siteURL{
		{Loc: baseURL + "/", LastMod: today, ChangeFreq: "weekly", Priority: "1.0"},
		{Loc: baseURL + "/programs", LastMod: today, ChangeFreq: "weekly", Priority: "0.8"},
		{Loc: baseURL + "/articles", LastMod: today, ChangeFreq: "weekly", Priority: "0.7"},
	}
	for _, p := range simulator.Programs() {
		urls = append(urls, siteURL{
			Loc:        baseURL + "/programs/" + p.Slug,
			ChangeFreq: "monthly",
			Priority:   "0.8",
		})
	}
	for _, a := range articles.All() {
		urls = append(urls, siteURL{
			Loc:        baseURL + "/articles/" + a.Slug,
			LastMod:    a.PublishedAt,
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	enc.Encode(urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9", URLs: urls})
}

// RobotsTxtHandler serves robots.txt with sitemap link.
func RobotsTxtHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write([]byte("User-agent: *\nAllow: /\nDisallow: /api/\nDisallow: /metrics\n\nSitemap: " + config.Cfg.BaseURL + "/sitemap.xml\n"))
}

// IndexHandler serves the landing page.
func IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		NotFoundHandler(w, r)
		return
	}
	body := `<h1>結婚したら、何をいつまでに？</h1>
<p>結婚日を入れるだけで、婚姻届から名義変更、給付金の申請まで、やるべき手続きを期限順に並べます。</p>
<div class="card"><strong>API</strong><ul>
<li><code>POST /api/timeline</code> 手続きタイムライン</li>
<li><code>POST /api/simulate</code> もらえるお金シミュレーター</li>
<li><code>GET /api/timeline/calendar</code> カレンダー登録（ICS）</li>
</ul></div>
<p><a href="/programs">制度一覧</a> / <a href="/articles">手続きガイド</a></p>`
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page("ふたりナビ | 結婚後の手続きナビ", "結婚後の手続きを期限順に整理し、使える給付金・支援制度をシミュレーションできます。", "/", "", body)))
}

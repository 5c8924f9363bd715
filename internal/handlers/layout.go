package handlers

import (
	"html"

	"futarinavi/internal/config"
)

// SharedMetaTags returns common SEO meta tags for a page.
func SharedMetaTags(title, description, canonicalPath string) string {
	base := config.Cfg.BaseURL
	title = html.EscapeString(title)
	description = html.EscapeString(description)
	return `<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>` + title + `</title>
<meta name="description" content="` + description + `">
<meta name="robots" content="index, follow">
<meta property="og:type" content="article">
<meta property="og:url" content="` + base + canonicalPath + `">
<meta property="og:title" content="` + title + `">
<meta property="og:description" content="` + description + `">
<meta property="og:site_name" content="ふたりナビ">
<meta property="og:locale" content="ja_JP">
<meta name="twitter:card" content="summary">
<link rel="canonical" href="` + base + canonicalPath + `">
<meta name="theme-color" content="#1B3A54">`
}

// SharedCSS returns CSS for shared layout components (header, content, footer).
func SharedCSS() string {
	return `
:root{--ink:#1C1C1F;--ink-75:#404045;--ink-50:#76767C;--ink-15:#D4D4D7;--warm-white:#FAFAF7;--warm-cream:#F4F3EE;--navy:#1B3A54;--navy-mid:#2D5F8A;--rose:#C05260;--rose-light:#FAEEF0;--green:#2A6B45;--radius:6px;--max-w:960px;--gutter:24px}
*{margin:0;padding:0;box-sizing:border-box}
body{font-family:"Hiragino Sans","Noto Sans JP",-apple-system,sans-serif;background:var(--warm-white);color:var(--ink);min-height:100vh;display:flex;flex-direction:column;font-size:15px;line-height:1.8}
a{color:var(--navy-mid);text-decoration:none}a:hover{text-decoration:underline}
.site-header{background:#fff;border-bottom:1px solid var(--ink-15);height:56px;display:flex;align-items:center}
.header-inner{max-width:var(--max-w);width:100%;margin:0 auto;padding:0 var(--gutter);display:flex;justify-content:space-between;align-items:center}
.logo{font-weight:700;color:var(--navy);font-size:1.1rem}
.main-nav{display:flex;gap:18px;font-size:.85rem}
.page-content{max-width:720px;width:100%;margin:32px auto;padding:0 var(--gutter);flex:1}
.page-content h1{font-size:1.6rem;margin-bottom:12px;color:var(--navy)}
.page-content h2{font-size:1.2rem;margin:28px 0 10px;padding-left:10px;border-left:4px solid var(--rose)}
.page-content p,.page-content li{margin-bottom:8px}
.page-content ul,.page-content ol{padding-left:1.4em}
.badge{display:inline-block;background:var(--rose-light);color:var(--rose);border-radius:999px;padding:2px 10px;font-size:.75rem;font-weight:600}
.amount{font-size:1.4rem;font-weight:700;color:var(--green)}
.card{background:#fff;border:1px solid var(--ink-15);border-radius:var(--radius);padding:16px;margin:12px 0}
.site-footer{background:var(--warm-cream);border-top:1px solid var(--ink-15);padding:24px 0;text-align:center;color:var(--ink-50);font-size:.8rem}
`
}

func headerHTML() string {
	return `<header class="site-header"><div class="header-inner">
<a href="/" class="logo">ふたりナビ</a>
<nav class="main-nav"><a href="/articles">ガイド</a><a href="/programs">制度一覧</a></nav>
</div></header>`
}

func footerHTML() string {
	return `<footer class="site-footer">
<p>ふたりナビ 結婚後の手続きと支援制度のナビゲーター</p>
<p>掲載情報は参考です。最新の条件は各自治体・公式サイトでご確認ください。</p>
</footer>`
}

// page assembles a full HTML document around body.
func page(title, description, canonicalPath, extraCSS, body string) string {
	return `<!DOCTYPE html>
<html lang="ja">
<head>
` + SharedMetaTags(title, description, canonicalPath) + `
<style>` + SharedCSS() + extraCSS + `</style>
</head>
<body>
` + headerHTML() + `
<main class="page-content">
` + body + `
</main>
` + footerHTML() + `
</body>
</html>`
}

func htmlEscape(s string) string {
	return html.EscapeString(s)
}

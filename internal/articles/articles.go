package articles

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"futarinavi/internal/logger"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

//go:embed content/*.md
var embedded embed.FS

// Categories in display order.
var Categories = []string{"benefits", "procedures", "tax", "insurance", "housing", "lifestyle"}

// Article is one marriage guide.
type Article struct {
	Slug           string   `yaml:"slug" json:"slug"`
	Vol            int      `yaml:"vol" json:"vol"`
	Title          string   `yaml:"title" json:"title"`
	Description    string   `yaml:"description" json:"description"`
	Category       string   `yaml:"category" json:"category"`
	PublishedAt    string   `yaml:"published_at" json:"published_at"`
	KeyPoints      []string `yaml:"key_points" json:"key_points"`
	QACount        int      `yaml:"qa_count" json:"qa_count"`
	ReferenceCount int      `yaml:"reference_count" json:"reference_count"`
	RelatedSlugs   []string `yaml:"related_slugs" json:"related_slugs"`
	HTMLContent    string   `yaml:"-" json:"html,omitempty"`
}

var (
	articles []Article
	mu       sync.RWMutex
)

// Load reads the embedded guides, or the guides in dir when dir is set.
func Load(dir string) error {
	var fsys fs.FS
	root := "content"
	if dir != "" {
		fsys = os.DirFS(dir)
		root = "."
	} else {
		fsys = embedded
	}
	loaded, err := loadFS(fsys, root)
	if err != nil {
		return err
	}
	mu.Lock()
	articles = loaded
	mu.Unlock()
	logger.Info("articles loaded", map[string]interface{}{"count": len(loaded), "dir": dir})
	return nil
}

func loadFS(fsys fs.FS, root string) ([]Article, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	seen := map[string]bool{}
	var loaded []Article

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(root, e.Name()))
		if err != nil {
			continue
		}
		a, err := parseArticle(data, md)
		if err != nil {
			logger.Warn("articles: skipping file", map[string]interface{}{"file": e.Name(), "error": err.Error()})
			continue
		}
		if seen[a.Slug] {
			return nil, fmt.Errorf("articles: duplicate slug %q", a.Slug)
		}
		seen[a.Slug] = true
		loaded = append(loaded, a)
	}

	sort.SliceStable(loaded, func(i, j int) bool {
		if loaded[i].PublishedAt != loaded[j].PublishedAt {
			return loaded[i].PublishedAt > loaded[j].PublishedAt
		}
		return loaded[i].Vol > loaded[j].Vol
	})
	return loaded, nil
}

func parseArticle(data []byte, md goldmark.Markdown) (Article, error) {
	content := strings.TrimPrefix(string(data), "\xef\xbb\xbf")

	parts := strings.SplitN(content, "---", 3)
	if len(parts) < 3 {
		return Article{}, fmt.Errorf("invalid frontmatter")
	}

	var a Article
	if err := yaml.Unmarshal([]byte(parts[1]), &a); err != nil {
		return Article{}, err
	}
	if a.Slug == "" || a.Title == "" {
		return Article{}, fmt.Errorf("missing slug or title")
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(strings.TrimSpace(parts[2])), &buf); err != nil {
		return Article{}, err
	}
	a.HTMLContent = buf.String()
	return a, nil
}

// All returns every article, newest first.
func All() []Article {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Article, len(articles))
	copy(out, articles)
	return out
}

// BySlug returns the article or nil.
func BySlug(slug string) *Article {
	mu.RLock()
	defer mu.RUnlock()
	for i := range articles {
		if articles[i].Slug == slug {
			a := articles[i]
			return &a
		}
	}
	return nil
}

// ByCategory returns the articles tagged cat, in load order.
func ByCategory(cat string) []Article {
	mu.RLock()
	defer mu.RUnlock()
	var out []Article
	for _, a := range articles {
		if a.Category == cat {
			out = append(out, a)
		}
	}
	return out
}

// Related resolves a.RelatedSlugs, skipping unknown slugs.
func Related(a Article) []Article {
	var out []Article
	for _, s := range a.RelatedSlugs {
		if r := BySlug(s); r != nil {
			out = append(out, *r)
		}
	}
	return out
}

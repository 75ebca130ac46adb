package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/seo"
)

// ErrNotFound is returned when no locale variant of a page exists.
var ErrNotFound = errors.New("content: not found")

const defaultTTL = 5 * time.Minute

// Page is a localized markdown page rendered to sanitized HTML.
type Page struct {
	Slug      string
	Lang      string
	Title     string
	Summary   string
	HTML      template.HTML
	UpdatedAt time.Time
	SEO       PageSEO
}

// PageSEO holds optional metadata overrides from front matter.
type PageSEO struct {
	Title       string
	Description string
	OGImage     string
}

type frontMatter struct {
	Title     string         `yaml:"title"`
	Summary   string         `yaml:"summary"`
	UpdatedAt string         `yaml:"updated_at"`
	SEO       frontMatterSEO `yaml:"seo"`
}

type frontMatterSEO struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	OGImage     string `yaml:"og_image"`
}

// Store reads <dir>/pages/<slug>.<locale>.md and keeps rendered pages for a
// TTL, re-reading from disk once an entry expires. When a re-read fails the
// last good copy keeps being served.
type Store struct {
	dir      string
	fallback string
	ttl      time.Duration
	clock    func() time.Time
	logger   *zap.Logger
	md       goldmark.Markdown
	policy   *bluemonday.Policy

	mu    sync.RWMutex
	items map[string]cacheEntry
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithTTL sets how long a rendered page is served before re-reading it.
func WithTTL(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithClock overrides the time source (tests).
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger attaches a logger for stale-serving warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore constructs a page store rooted at dir.
func NewStore(dir, fallback string, opts ...Option) *Store {
	s := &Store{
		dir:      dir,
		fallback: fallback,
		ttl:      defaultTTL,
		clock:    time.Now,
		logger:   zap.NewNop(),
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: newPagePolicy(),
		items:  map[string]cacheEntry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newPagePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("class").OnElements("p", "span", "ul", "li")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Page returns slug in lang, falling back to the default locale and then
// English when that variant is missing.
func (s *Store) Page(ctx context.Context, slug, lang string) (Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	lang = strings.ToLower(strings.TrimSpace(lang))

	key := lang + "|" + slug
	now := s.clock()
	s.mu.RLock()
	entry, cached := s.items[key]
	s.mu.RUnlock()
	if cached && now.Before(entry.expires) {
		return entry.page, nil
	}

	page, err := s.load(ctx, slug, lang)
	if err != nil {
		if cached && !errors.Is(err, ErrNotFound) {
			s.logger.Warn("serving stale content page",
				zap.String("slug", slug),
				zap.String("lang", lang),
				zap.Error(err),
			)
			return entry.page, nil
		}
		return Page{}, err
	}

	s.mu.Lock()
	s.items[key] = cacheEntry{page: page, expires: now.Add(s.ttl)}
	s.mu.Unlock()
	return page, nil
}

func (s *Store) load(ctx context.Context, slug, lang string) (Page, error) {
	candidates := []string{}
	for _, l := range []string{lang, s.fallback, "en"} {
		if l == "" {
			continue
		}
		dup := false
		for _, c := range candidates {
			if c == l {
				dup = true
				break
			}
		}
		if !dup {
			candidates = append(candidates, l)
		}
	}
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return Page{}, err
		}
		page, err := s.read(slug, candidate)
		if err == nil {
			return page, nil
		}
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return Page{}, err
	}
	return Page{}, ErrNotFound
}

func (s *Store) read(slug, lang string) (Page, error) {
	file := filepath.Join(s.dir, "pages", slug+"."+lang+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, err
	}

	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}

	var buf bytes.Buffer
	if err := s.md.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", file, err)
	}
	rendered := s.policy.Sanitize(buf.String())

	page := Page{
		Slug:    slug,
		Lang:    lang,
		Title:   strings.TrimSpace(front.Title),
		Summary: strings.TrimSpace(front.Summary),
		HTML:    template.HTML(rendered),
		SEO: PageSEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
			OGImage:     strings.TrimSpace(front.SEO.OGImage),
		},
		UpdatedAt: parseDate(front.UpdatedAt),
	}
	if page.UpdatedAt.IsZero() {
		if info, err := os.Stat(file); err == nil {
			page.UpdatedAt = info.ModTime().UTC()
		}
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	if page.SEO.Description == "" {
		page.SEO.Description = firstNonEmpty(page.Summary, seo.Describe(rendered, seo.DescriptionLimit))
	}
	return page, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02", "2006-1-2"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		if runes[0] >= 'a' && runes[0] <= 'z' {
			runes[0] -= 'a' - 'A'
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(strings.ToLower(slug)), "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\.`) {
		return ""
	}
	return slug
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

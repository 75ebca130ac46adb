package seo

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSite = Site{
	BaseURL:       "https://example.cz",
	Name:          "Acme IT",
	DefaultLocale: "cs",
	Locales:       []string{"cs", "en", "de", "ua"},
}

func TestLocalizedPath(t *testing.T) {
	cases := map[string]string{
		"":                 "/en/",
		"/":                "/en/",
		"/about":           "/en/about",
		"about/":           "/en/about",
		"/it-services/../": "/en/",
	}
	for in, want := range cases {
		assert.Equal(t, want, LocalizedPath("en", in), "path %q", in)
	}
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "https://example.cz/cs/", AbsoluteURL("https://example.cz/", "/cs/"))
	assert.Equal(t, "https://example.cz/", AbsoluteURL("https://example.cz", ""))
	assert.Equal(t, "https://example.cz/robots.txt", AbsoluteURL("https://example.cz", "robots.txt"))
}

func TestAlternatesIncludeEveryLocaleAndXDefault(t *testing.T) {
	alts := testSite.Alternates("/services")
	require.Len(t, alts, 5)
	assert.Equal(t, Alternate{HrefLang: "cs", Href: "https://example.cz/cs/services"}, alts[0])
	assert.Equal(t, Alternate{HrefLang: "uk", Href: "https://example.cz/ua/services"}, alts[3])
	assert.Equal(t, Alternate{HrefLang: XDefault, Href: "https://example.cz/cs/services"}, alts[4])
}

func TestPageMeta(t *testing.T) {
	meta := testSite.PageMeta("de", "/contacts", "Kontakt", "Schreiben Sie uns.")
	assert.Equal(t, "Kontakt | Acme IT", meta.Title)
	assert.Equal(t, "https://example.cz/de/contacts", meta.Canonical)
	assert.Equal(t, "de_DE", meta.OG.Locale)
	assert.ElementsMatch(t, []string{"cs_CZ", "en_US", "uk_UA"}, meta.OG.LocaleAlternates)
	assert.Equal(t, meta.Canonical, meta.OG.URL)
	assert.Len(t, meta.Alternates, 5)
}

func TestBreadcrumbListPositions(t *testing.T) {
	doc := BreadcrumbList([]BreadcrumbItem{
		{Name: "Domů", Item: "https://example.cz/cs/"},
		{Name: "Služby", Item: "https://example.cz/cs/services"},
	})
	items := doc["itemListElement"].([]map[string]any)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0]["position"])
	assert.Equal(t, 2, items[1]["position"])
	assert.Contains(t, JSON(doc), `"@type":"BreadcrumbList"`)
}

func TestProfessionalServiceAreaServed(t *testing.T) {
	doc := ProfessionalService("Acme IT", "https://example.cz/en/it-services/brno", "", "Brno", "South Moravian Region")
	area := doc["areaServed"].(map[string]any)
	assert.Equal(t, "Brno", area["name"])
	assert.NotContains(t, doc, "description")
}

func TestDescribe(t *testing.T) {
	html := `<h1>Title</h1><p>  </p><p>We build <strong>fast</strong>
	websites.</p><p>Second paragraph.</p>`
	assert.Equal(t, "We build fast websites.", Describe(html, 0))
	assert.Equal(t, "", Describe("<h2>No paragraphs</h2>", 0))
	assert.Equal(t, "", Describe("", 0))
}

func TestDescribeTruncatesOnWordBoundary(t *testing.T) {
	long := "<p>" + strings.Repeat("slovo ", 60) + "</p>"
	got := Describe(long, 40)
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 40)
	assert.True(t, strings.HasSuffix(got, "slovo…"), got)
}

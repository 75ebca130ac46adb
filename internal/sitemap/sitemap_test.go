package sitemap

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/seo"
)

var testSite = seo.Site{
	BaseURL:       "https://example.cz",
	Name:          "Acme IT",
	DefaultLocale: "cs",
	Locales:       []string{"cs", "en"},
}

type parsedSet struct {
	URLs []struct {
		Loc      string `xml:"loc"`
		LastMod  string `xml:"lastmod"`
		Priority string `xml:"priority"`
		Links    []struct {
			HrefLang string `xml:"hreflang,attr"`
			Href     string `xml:"href,attr"`
		} `xml:"link"`
	} `xml:"url"`
}

func TestWrite(t *testing.T) {
	updated := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
	routes := []Route{
		{Path: "/", Priority: PriorityHome, ChangeFreq: "weekly"},
		{Path: "/about", Priority: PriorityPage, ChangeFreq: "monthly", LastMod: func(locale string) time.Time {
			if locale == "en" {
				return updated
			}
			return time.Time{}
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testSite, routes))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, xml.Header))
	assert.Contains(t, out, `xmlns:xhtml="http://www.w3.org/1999/xhtml"`)
	assert.Contains(t, out, `<xhtml:link rel="alternate" hreflang="x-default" href="https://example.cz/cs/about"></xhtml:link>`)

	var set parsedSet
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &set))
	require.Len(t, set.URLs, 4)

	assert.Equal(t, "https://example.cz/cs/", set.URLs[0].Loc)
	assert.Equal(t, "1.0", set.URLs[0].Priority)
	assert.Equal(t, "https://example.cz/en/", set.URLs[1].Loc)
	assert.Equal(t, "https://example.cz/cs/about", set.URLs[2].Loc)
	assert.Empty(t, set.URLs[2].LastMod)
	assert.Equal(t, "https://example.cz/en/about", set.URLs[3].Loc)
	assert.Equal(t, "2025-02-03", set.URLs[3].LastMod)
	assert.Equal(t, "0.8", set.URLs[3].Priority)

	for _, u := range set.URLs {
		require.Len(t, u.Links, 3, u.Loc)
	}
}

func TestWriteIsDeterministic(t *testing.T) {
	routes := []Route{{Path: "/"}, {Path: "/services", Priority: PriorityPage}}
	var a, b bytes.Buffer
	require.NoError(t, Write(&a, testSite, routes))
	require.NoError(t, Write(&b, testSite, routes))
	assert.Equal(t, a.String(), b.String())
}

func TestRobots(t *testing.T) {
	got := Robots("https://example.cz/")
	assert.Contains(t, got, "User-agent: *\n")
	assert.Contains(t, got, "Sitemap: https://example.cz/sitemap.xml\n")
}

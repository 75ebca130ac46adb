package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/format"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/seo"
)

const (
	sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xhtmlNS   = "http://www.w3.org/1999/xhtml"
)

// Priorities by page kind.
const (
	PriorityHome = 1.0
	PriorityPage = 0.8
	PriorityCity = 0.7
)

// Route is one locale-independent page of the site.
type Route struct {
	Path       string
	Priority   float64
	ChangeFreq string
	// LastMod returns the modification time of the route in a locale; nil or
	// a zero time omits <lastmod>.
	LastMod func(locale string) time.Time
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	XHTML   string   `xml:"xmlns:xhtml,attr"`
	URLs    []url    `xml:"url"`
}

type url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
	Links      []link `xml:"xhtml:link"`
}

type link struct {
	Rel      string `xml:"rel,attr"`
	HrefLang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// Write renders one <url> per route and locale, routes in the given order
// and locales in site order, each carrying every hreflang alternate.
func Write(w io.Writer, site seo.Site, routes []Route) error {
	set := urlSet{XMLNS: sitemapNS, XHTML: xhtmlNS}
	for _, r := range routes {
		alternates := site.Alternates(r.Path)
		links := make([]link, 0, len(alternates))
		for _, a := range alternates {
			links = append(links, link{Rel: "alternate", HrefLang: a.HrefLang, Href: a.Href})
		}
		for _, locale := range site.Locales {
			u := url{
				Loc:        seo.AbsoluteURL(site.BaseURL, seo.LocalizedPath(locale, r.Path)),
				ChangeFreq: r.ChangeFreq,
				Links:      links,
			}
			if r.Priority > 0 {
				u.Priority = fmt.Sprintf("%.1f", r.Priority)
			}
			if r.LastMod != nil {
				u.LastMod = format.ISODate(r.LastMod(locale))
			}
			set.URLs = append(set.URLs, u)
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	return enc.Flush()
}

// Robots returns a robots.txt allowing all crawlers and naming the sitemap.
func Robots(baseURL string) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n\n")
	b.WriteString("Sitemap: " + seo.AbsoluteURL(baseURL, "/sitemap.xml") + "\n")
	return b.String()
}

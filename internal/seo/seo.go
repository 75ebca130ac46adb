package seo

import (
	"path"
	"strings"

	"golang.org/x/text/language"

	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/i18n"
)

// XDefault is the hreflang value for the language-neutral alternate.
const XDefault = "x-default"

type OpenGraph struct {
	Title            string
	Description      string
	Image            string
	Type             string
	URL              string
	SiteName         string
	Locale           string
	LocaleAlternates []string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Alternate is one <link rel="alternate" hreflang> entry.
type Alternate struct {
	HrefLang string
	Href     string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
	// JSONLD holds pre-encoded schema.org documents, one per <script> tag.
	JSONLD []string
}

// Site carries the settings needed to build absolute URLs and alternates.
type Site struct {
	BaseURL       string
	Name          string
	DefaultLocale string
	Locales       []string
}

// LocalizedPath prefixes p with the locale segment. Every locale, the default
// included, lives under its own prefix.
func LocalizedPath(locale, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return "/" + locale + "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	clean := path.Clean(p)
	if clean == "/" {
		return "/" + locale + "/"
	}
	return "/" + locale + clean
}

// AbsoluteURL joins base (no trailing slash) and p.
func AbsoluteURL(base, p string) string {
	base = strings.TrimRight(base, "/")
	if p == "" {
		return base + "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return base + p
}

// Alternates lists one hreflang entry per locale plus x-default, which points
// at the default locale's URL.
func (s Site) Alternates(p string) []Alternate {
	out := make([]Alternate, 0, len(s.Locales)+1)
	for _, l := range s.Locales {
		out = append(out, Alternate{
			HrefLang: i18n.HrefLang(l),
			Href:     AbsoluteURL(s.BaseURL, LocalizedPath(l, p)),
		})
	}
	out = append(out, Alternate{
		HrefLang: XDefault,
		Href:     AbsoluteURL(s.BaseURL, LocalizedPath(s.DefaultLocale, p)),
	})
	return out
}

// PageMeta assembles the head metadata for a localized page at path p
// (without locale prefix).
func (s Site) PageMeta(locale, p, title, description string) Meta {
	canonical := AbsoluteURL(s.BaseURL, LocalizedPath(locale, p))
	fullTitle := title
	if s.Name != "" && title != s.Name {
		fullTitle = title + " | " + s.Name
	}
	ogAlternates := make([]string, 0, len(s.Locales))
	for _, l := range s.Locales {
		if l != locale {
			ogAlternates = append(ogAlternates, ogLocale(l))
		}
	}
	return Meta{
		Title:       fullTitle,
		Description: description,
		Canonical:   canonical,
		Robots:      "index, follow",
		OG: OpenGraph{
			Title:            fullTitle,
			Description:      description,
			Type:             "website",
			URL:              canonical,
			SiteName:         s.Name,
			Locale:           ogLocale(locale),
			LocaleAlternates: ogAlternates,
		},
		Twitter:    Twitter{Card: "summary_large_image"},
		Alternates: s.Alternates(p),
	}
}

// ogLocale renders a locale in OpenGraph's language_TERRITORY form.
func ogLocale(locale string) string {
	tag := i18n.Tag(locale)
	region, conf := tag.Region()
	if conf == language.No {
		return tag.String()
	}
	base, _ := tag.Base()
	return base.String() + "_" + region.String()
}

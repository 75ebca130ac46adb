package render

import (
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/nav"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/seo"
)

// View is the data passed to the layout. Page-specific data goes in Data.
type View struct {
	Lang      string
	SiteName  string
	Path      string // locale-less request path
	Meta      seo.Meta
	Nav       []nav.RenderedItem
	Crumbs    []nav.Crumb
	Locales   []LocaleLink
	Analytics Analytics
	Data      any
}

// LocaleLink points at the current page in another locale.
type LocaleLink struct {
	Code    string
	Href    string
	Current bool
}

// Analytics controls the tracking snippets and the consent banner.
type Analytics struct {
	GA4ID      string
	GTMID      string
	Debug      bool
	Allowed    bool // consent granted and an ID configured
	ShowBanner bool // no choice recorded yet and an ID configured
}

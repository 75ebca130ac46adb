package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/content"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/i18n"
	sitemw "github.com/Illia-Kh/Landing-Page-Design-sub001/internal/middleware"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/nav"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/render"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/requestctx"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/seo"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/sitemap"
)

const citiesPathPrefix = "/it-services/"

// serviceKeys order the service cards on the home and city pages.
var serviceKeys = []string{"web", "cloud", "support"}

// contentPages are the markdown-backed sections served at /{locale}/<slug>.
var contentPages = []string{"about", "services"}

// PageSource returns localized markdown pages.
type PageSource interface {
	Page(ctx context.Context, slug, lang string) (content.Page, error)
}

// PageRenderer writes a named page template inside the site layout.
type PageRenderer interface {
	HTML(w http.ResponseWriter, status int, page string, data any) error
}

// SiteAnalytics carries the tag identifiers exposed to templates once the
// visitor consents.
type SiteAnalytics struct {
	GA4ID string
	GTMID string
	Debug bool
}

func (a SiteAnalytics) enabled() bool {
	return a.GA4ID != "" || a.GTMID != ""
}

// SiteDeps wires the HTML site handlers.
type SiteDeps struct {
	Site      seo.Site
	Bundle    *i18n.Bundle
	Renderer  PageRenderer
	Pages     PageSource
	Cities    *content.Cities
	Analytics SiteAnalytics
	// ContactEmail is advertised in the Organization JSON-LD when set.
	ContactEmail string
}

// SiteHandlers serves the localized pages, sitemap and robots.txt.
type SiteHandlers struct {
	site         seo.Site
	bundle       *i18n.Bundle
	renderer     PageRenderer
	pages        PageSource
	cities       *content.Cities
	analytics    SiteAnalytics
	contactEmail string
}

// NewSiteHandlers validates deps and constructs the site handlers.
func NewSiteHandlers(deps SiteDeps) (*SiteHandlers, error) {
	if deps.Bundle == nil {
		return nil, errors.New("site handlers: bundle is required")
	}
	if deps.Renderer == nil {
		return nil, errors.New("site handlers: renderer is required")
	}
	if deps.Pages == nil {
		return nil, errors.New("site handlers: page source is required")
	}
	if deps.Site.DefaultLocale == "" {
		deps.Site.DefaultLocale = deps.Bundle.Fallback()
	}
	if len(deps.Site.Locales) == 0 {
		deps.Site.Locales = deps.Bundle.Supported()
	}
	return &SiteHandlers{
		site:         deps.Site,
		bundle:       deps.Bundle,
		renderer:     deps.Renderer,
		pages:        deps.Pages,
		cities:       deps.Cities,
		analytics:    deps.Analytics,
		contactEmail: deps.ContactEmail,
	}, nil
}

// Routes registers the root redirect, crawler files and the /{locale} tree.
func (h *SiteHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.With(sitemw.VaryLocale).Get("/", h.redirectRoot)
	r.Get("/sitemap.xml", h.sitemap)
	r.Get("/robots.txt", h.robots)

	r.Route("/{locale}", func(r chi.Router) {
		r.Use(sitemw.Locale(h.bundle, http.HandlerFunc(h.NotFound)))
		r.NotFound(h.NotFound)
		r.Get("/", h.home)
		for _, slug := range contentPages {
			r.Get("/"+slug, h.contentPage(slug))
		}
		r.Get("/contacts", h.contacts)
		r.Get(citiesPathPrefix+"{city}", h.city)
	})
}

func (h *SiteHandlers) redirectRoot(w http.ResponseWriter, r *http.Request) {
	locale := sitemw.PreferredLocale(r, h.bundle)
	http.Redirect(w, r, seo.LocalizedPath(locale, "/"), http.StatusFound)
}

type homeData struct {
	Services []string
	Cities   []cityLink
}

type cityLink struct {
	Name string
	Href string
}

func (h *SiteHandlers) home(w http.ResponseWriter, r *http.Request) {
	locale := h.locale(r)
	meta := h.site.PageMeta(locale, "/", h.bundle.T(locale, "home.title"), h.bundle.T(locale, "home.description"))
	meta.JSONLD = []string{
		seo.JSON(seo.Organization(h.site.Name, h.site.BaseURL, seo.AbsoluteURL(h.site.BaseURL, "/assets/img/logo.svg"), h.contactEmail)),
		seo.JSON(seo.WebSite(h.site.Name, meta.Canonical, h.hrefLangs())),
	}

	data := homeData{Services: serviceKeys}
	for _, c := range h.cities.All() {
		data.Cities = append(data.Cities, cityLink{
			Name: c.Name(locale, h.site.DefaultLocale),
			Href: seo.LocalizedPath(locale, citiesPathPrefix+c.Slug),
		})
	}

	h.render(w, r, http.StatusOK, "home", h.view(r, locale, "/", meta, nav.Breadcrumbs(locale, "/", nil), data))
}

func (h *SiteHandlers) contentPage(slug string) http.HandlerFunc {
	p := "/" + slug
	return func(w http.ResponseWriter, r *http.Request) {
		locale := h.locale(r)
		page, err := h.pages.Page(r.Context(), slug, locale)
		if err != nil {
			if errors.Is(err, content.ErrNotFound) {
				h.NotFound(w, r)
				return
			}
			h.serverError(w, r, fmt.Errorf("load page %s: %w", slug, err))
			return
		}

		title := page.SEO.Title
		if title == "" {
			title = page.Title
		}
		meta := h.site.PageMeta(locale, p, title, page.SEO.Description)
		if page.SEO.OGImage != "" {
			img := seo.AbsoluteURL(h.site.BaseURL, page.SEO.OGImage)
			meta.OG.Image = img
			meta.Twitter.Image = img
		}
		crumbs := nav.Breadcrumbs(locale, p, nil)
		meta.JSONLD = append(meta.JSONLD, h.breadcrumbJSON(locale, crumbs))

		h.render(w, r, http.StatusOK, "page", h.view(r, locale, p, meta, crumbs, page))
	}
}

func (h *SiteHandlers) contacts(w http.ResponseWriter, r *http.Request) {
	locale := h.locale(r)
	const p = "/contacts"
	title := h.bundle.T(locale, "contacts.title")
	description := h.bundle.T(locale, "contacts.description")
	meta := h.site.PageMeta(locale, p, title, description)
	crumbs := nav.Breadcrumbs(locale, p, nil)
	meta.JSONLD = []string{
		seo.JSON(seo.ContactPage(title, meta.Canonical, description, i18n.HrefLang(locale))),
		h.breadcrumbJSON(locale, crumbs),
	}

	h.render(w, r, http.StatusOK, "contacts", h.view(r, locale, p, meta, crumbs, nil))
}

type cityData struct {
	Slug     string
	Name     string
	Region   string
	Services []string
}

func (h *SiteHandlers) city(w http.ResponseWriter, r *http.Request) {
	locale := h.locale(r)
	city, ok := h.cities.Get(chi.URLParam(r, "city"))
	if !ok {
		h.NotFound(w, r)
		return
	}

	p := citiesPathPrefix + city.Slug
	name := city.Name(locale, h.site.DefaultLocale)
	region := city.Region(locale, h.site.DefaultLocale)
	args := map[string]string{"city": name}
	description := h.bundle.Format(locale, "city.description", args)
	meta := h.site.PageMeta(locale, p, h.bundle.Format(locale, "city.title", args), description)

	// /it-services has no page of its own, so the trail goes through /services.
	crumbs := []nav.Crumb{
		{Href: seo.LocalizedPath(locale, "/"), LabelKey: "nav.home"},
		{Href: seo.LocalizedPath(locale, "/services"), LabelKey: "nav.services"},
		{Href: seo.LocalizedPath(locale, p), Label: name, Active: true},
	}
	meta.JSONLD = []string{
		seo.JSON(seo.ProfessionalService(h.site.Name, meta.Canonical, description, name, region)),
		h.breadcrumbJSON(locale, crumbs),
	}

	data := cityData{Slug: city.Slug, Name: name, Region: region, Services: serviceKeys}
	h.render(w, r, http.StatusOK, "city", h.view(r, locale, p, meta, crumbs, data))
}

// NotFound renders the localized 404 page. The locale comes from the request
// context, then the path prefix, then the visitor's preference.
func (h *SiteHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	locale := requestctx.Locale(r.Context())
	rest := r.URL.Path
	if pathLocale, stripped := nav.StripLocale(r.URL.Path, h.bundle.IsSupported); pathLocale != "" {
		if locale == "" {
			locale = pathLocale
		}
		rest = stripped
	}
	if locale == "" {
		locale = sitemw.PreferredLocale(r, h.bundle)
	}

	meta := h.site.PageMeta(locale, rest, h.bundle.T(locale, "notfound.title"), h.bundle.T(locale, "notfound.message"))
	meta.Robots = "noindex, follow"
	meta.Canonical = ""
	meta.Alternates = nil

	crumbs := nav.Breadcrumbs(locale, "/", nil)
	h.render(w, r, http.StatusNotFound, "notfound", h.view(r, locale, "/", meta, crumbs, nil))
}

func (h *SiteHandlers) sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	routes := []sitemap.Route{
		{Path: "/", Priority: sitemap.PriorityHome, ChangeFreq: "weekly"},
	}
	for _, slug := range contentPages {
		routes = append(routes, sitemap.Route{
			Path:       "/" + slug,
			Priority:   sitemap.PriorityPage,
			ChangeFreq: "monthly",
			LastMod:    h.pageLastMod(ctx, slug),
		})
	}
	routes = append(routes, sitemap.Route{Path: "/contacts", Priority: sitemap.PriorityPage, ChangeFreq: "yearly"})
	for _, c := range h.cities.All() {
		updated := c.UpdatedAt
		routes = append(routes, sitemap.Route{
			Path:       citiesPathPrefix + c.Slug,
			Priority:   sitemap.PriorityCity,
			ChangeFreq: "monthly",
			LastMod:    func(string) time.Time { return updated },
		})
	}

	var buf bytes.Buffer
	if err := sitemap.Write(&buf, h.site, routes); err != nil {
		h.serverError(w, r, fmt.Errorf("write sitemap: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = buf.WriteTo(w)
}

func (h *SiteHandlers) pageLastMod(ctx context.Context, slug string) func(string) time.Time {
	return func(locale string) time.Time {
		page, err := h.pages.Page(ctx, slug, locale)
		if err != nil {
			return time.Time{}
		}
		return page.UpdatedAt
	}
}

func (h *SiteHandlers) robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(sitemap.Robots(h.site.BaseURL)))
}

func (h *SiteHandlers) locale(r *http.Request) string {
	return sitemw.Lang(r, h.site.DefaultLocale)
}

func (h *SiteHandlers) view(r *http.Request, locale, p string, meta seo.Meta, crumbs []nav.Crumb, data any) render.View {
	links := make([]render.LocaleLink, 0, len(h.site.Locales))
	for _, l := range h.site.Locales {
		links = append(links, render.LocaleLink{
			Code:    l,
			Href:    seo.LocalizedPath(l, p),
			Current: l == locale,
		})
	}

	consent := sitemw.ConsentFromContext(r.Context())
	return render.View{
		Lang:     locale,
		SiteName: h.site.Name,
		Path:     p,
		Meta:     meta,
		Nav:      nav.Build(locale, p),
		Crumbs:   crumbs,
		Locales:  links,
		Analytics: render.Analytics{
			GA4ID:      h.analytics.GA4ID,
			GTMID:      h.analytics.GTMID,
			Debug:      h.analytics.Debug,
			Allowed:    h.analytics.enabled() && consent == sitemw.ConsentGranted,
			ShowBanner: h.analytics.enabled() && consent == sitemw.ConsentUnknown,
		},
		Data: data,
	}
}

func (h *SiteHandlers) breadcrumbJSON(locale string, crumbs []nav.Crumb) string {
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		name := c.Label
		if c.LabelKey != "" {
			name = h.bundle.T(locale, c.LabelKey)
		}
		items = append(items, seo.BreadcrumbItem{Name: name, Item: seo.AbsoluteURL(h.site.BaseURL, c.Href)})
	}
	return seo.JSON(seo.BreadcrumbList(items))
}

func (h *SiteHandlers) hrefLangs() []string {
	out := make([]string, 0, len(h.site.Locales))
	for _, l := range h.site.Locales {
		out = append(out, i18n.HrefLang(l))
	}
	return out
}

func (h *SiteHandlers) render(w http.ResponseWriter, r *http.Request, status int, page string, view render.View) {
	if err := h.renderer.HTML(w, status, page, view); err != nil {
		h.serverError(w, r, err)
	}
}

func (h *SiteHandlers) serverError(w http.ResponseWriter, r *http.Request, err error) {
	requestctx.Logger(r.Context()).Error("render page failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

package nav

import (
	"path"
	"strings"

	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/seo"
)

// Item represents a top-level navigation item.
type Item struct {
	Path     string // without locale prefix, e.g. "/services"
	LabelKey string // i18n key, e.g. "nav.services"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/", LabelKey: "nav.home"},
	{Path: "/about", LabelKey: "nav.about"},
	{Path: "/services", LabelKey: "nav.services"},
	{Path: "/contacts", LabelKey: "nav.contacts"},
}

// Build renders navigation items for locale with active state given the
// current locale-less path.
func Build(locale, currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     seo.LocalizedPath(locale, it.Path),
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}

// StripLocale splits "/cs/services" into ("cs", "/services"). Paths without
// a locale segment return an empty locale.
func StripLocale(requestPath string, supported func(string) bool) (string, string) {
	trimmed := strings.TrimPrefix(requestPath, "/")
	seg, rest, _ := strings.Cut(trimmed, "/")
	if seg == "" || supported == nil || !supported(seg) {
		return "", requestPath
	}
	return seg, "/" + rest
}

// Breadcrumbs builds breadcrumb entries for a locale-less path. The trail
// always starts with Home; known sections use nav labels, deeper segments
// a prettified slug unless labels supplies one.
func Breadcrumbs(locale, currentPath string, labels map[string]string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: seo.LocalizedPath(locale, "/"), LabelKey: "nav.home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean("/" + strings.TrimPrefix(currentPath, "/"))
	if clean == "/" {
		crumbs[0].Active = true
		return crumbs
	}
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")

	href := ""
	for i, part := range parts {
		href += "/" + part
		crumb := Crumb{
			Href:   seo.LocalizedPath(locale, href),
			Label:  titleFromSegment(part),
			Active: i == len(parts)-1,
		}
		if i == 0 {
			for _, it := range Main {
				if it.Path == href {
					crumb.LabelKey = it.LabelKey
					break
				}
			}
		}
		if label, ok := labels[part]; ok && label != "" {
			crumb.Label = label
		}
		crumbs = append(crumbs, crumb)
	}
	return crumbs
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toUpper(r rune) rune {
	// ASCII only is sufficient for slugs here
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

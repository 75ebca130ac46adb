package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL, email string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	if email != "" {
		m["contactPoint"] = map[string]any{
			"@type":       "ContactPoint",
			"contactType": "customer service",
			"email":       email,
		}
	}
	return m
}

// WebSite returns a WebSite schema listing the site's languages.
func WebSite(name, url string, languages []string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if len(languages) > 0 {
		m["inLanguage"] = languages
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// ProfessionalService describes the business as serving one city.
func ProfessionalService(name, url, description, city, region string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "ProfessionalService",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if description != "" {
		m["description"] = description
	}
	if city != "" {
		area := map[string]any{"@type": "City", "name": city}
		if region != "" {
			area["containedInPlace"] = map[string]any{"@type": "AdministrativeArea", "name": region}
		}
		m["areaServed"] = area
		m["address"] = map[string]any{
			"@type":           "PostalAddress",
			"addressLocality": city,
			"addressCountry":  "CZ",
		}
	}
	return m
}

// ContactPage returns a ContactPage schema.
func ContactPage(name, url, description, language string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "ContactPage",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if description != "" {
		m["description"] = description
	}
	if language != "" {
		m["inLanguage"] = language
	}
	return m
}

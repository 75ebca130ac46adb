package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMarksActiveSection(t *testing.T) {
	items := Build("de", "/services")
	require.Len(t, items, len(Main))
	assert.Equal(t, "/de/", items[0].Href)
	assert.False(t, items[0].Active)
	assert.Equal(t, "/de/services", items[2].Href)
	assert.True(t, items[2].Active)

	home := Build("cs", "")
	assert.True(t, home[0].Active)
}

func TestStripLocale(t *testing.T) {
	supported := func(l string) bool { return l == "cs" || l == "en" }

	locale, rest := StripLocale("/cs/services", supported)
	assert.Equal(t, "cs", locale)
	assert.Equal(t, "/services", rest)

	locale, rest = StripLocale("/en/", supported)
	assert.Equal(t, "en", locale)
	assert.Equal(t, "/", rest)

	locale, rest = StripLocale("/fr/services", supported)
	assert.Empty(t, locale)
	assert.Equal(t, "/fr/services", rest)
}

func TestBreadcrumbs(t *testing.T) {
	crumbs := Breadcrumbs("en", "/it-services/brno", map[string]string{"brno": "Brno"})
	require.Len(t, crumbs, 3)
	assert.Equal(t, Crumb{Href: "/en/", LabelKey: "nav.home"}, crumbs[0])
	assert.Equal(t, Crumb{Href: "/en/it-services", Label: "It services"}, crumbs[1])
	assert.Equal(t, Crumb{Href: "/en/it-services/brno", Label: "Brno", Active: true}, crumbs[2])

	about := Breadcrumbs("cs", "/about", nil)
	require.Len(t, about, 2)
	assert.Equal(t, "nav.about", about[1].LabelKey)
	assert.True(t, about[1].Active)

	home := Breadcrumbs("cs", "/", nil)
	require.Len(t, home, 1)
	assert.True(t, home[0].Active)
}

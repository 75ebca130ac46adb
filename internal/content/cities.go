package content

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var citySlugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// City is one local landing page target.
type City struct {
	Slug      string
	Names     map[string]string
	Regions   map[string]string
	UpdatedAt time.Time
}

// Name returns the city's name in locale, falling back to fallback and then
// the slug.
func (c City) Name(locale, fallback string) string {
	if v := strings.TrimSpace(c.Names[locale]); v != "" {
		return v
	}
	if v := strings.TrimSpace(c.Names[fallback]); v != "" {
		return v
	}
	return prettifySlug(c.Slug)
}

// Region returns the administrative region in locale with the same fallback.
func (c City) Region(locale, fallback string) string {
	if v := strings.TrimSpace(c.Regions[locale]); v != "" {
		return v
	}
	return strings.TrimSpace(c.Regions[fallback])
}

// Cities is the immutable registry loaded at startup.
type Cities struct {
	list   []City
	bySlug map[string]int
}

type citiesFile struct {
	Cities []struct {
		Slug      string            `yaml:"slug"`
		Names     map[string]string `yaml:"names"`
		Regions   map[string]string `yaml:"regions"`
		UpdatedAt string            `yaml:"updated_at"`
	} `yaml:"cities"`
}

// LoadCities reads the YAML registry at path. Order in the file is kept.
func LoadCities(path string) (*Cities, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load cities: %w", err)
	}
	return ParseCities(raw)
}

// ParseCities parses a YAML registry document.
func ParseCities(raw []byte) (*Cities, error) {
	var doc citiesFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse cities: %w", err)
	}
	out := &Cities{bySlug: map[string]int{}}
	for i, c := range doc.Cities {
		slug := strings.ToLower(strings.TrimSpace(c.Slug))
		if !citySlugPattern.MatchString(slug) {
			return nil, fmt.Errorf("parse cities: entry %d has invalid slug %q", i, c.Slug)
		}
		if _, dup := out.bySlug[slug]; dup {
			return nil, fmt.Errorf("parse cities: duplicate slug %q", slug)
		}
		if len(c.Names) == 0 {
			return nil, errors.New("parse cities: city " + slug + " has no names")
		}
		out.bySlug[slug] = len(out.list)
		out.list = append(out.list, City{
			Slug:      slug,
			Names:     c.Names,
			Regions:   c.Regions,
			UpdatedAt: parseDate(c.UpdatedAt),
		})
	}
	return out, nil
}

// Get looks a city up by slug.
func (c *Cities) Get(slug string) (City, bool) {
	if c == nil {
		return City{}, false
	}
	i, ok := c.bySlug[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return City{}, false
	}
	return c.list[i], true
}

// All returns every city in registry order.
func (c *Cities) All() []City {
	if c == nil {
		return nil
	}
	out := make([]City, len(c.list))
	copy(out, c.list)
	return out
}

package seo

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// DescriptionLimit is the usual cut-off search engines show for snippets.
const DescriptionLimit = 160

// Describe returns the plain text of the first non-empty <p> in fragment,
// collapsed to single spaces and cut to limit runes on a word boundary.
func Describe(fragment string, limit int) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	if limit <= 0 {
		limit = DescriptionLimit
	}
	z := html.NewTokenizer(strings.NewReader(fragment))
	var (
		b     strings.Builder
		inP   bool
		depth int
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return truncate(collapse(b.String()), limit)
		case html.StartTagToken:
			name, _ := z.TagName()
			if string(name) == "p" {
				inP = true
				depth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "p" && inP {
				depth--
				if depth <= 0 {
					if text := collapse(b.String()); text != "" {
						return truncate(text, limit)
					}
					inP = false
					b.Reset()
				}
			}
		case html.TextToken:
			if inP {
				b.Write(z.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:limit-1])
	if i := strings.LastIndexByte(cut, ' '); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

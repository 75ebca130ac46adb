package format

import (
	"strings"
	"time"
)

// FmtDate formats t in the short date form customary for lang.
func FmtDate(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch strings.ToLower(lang) {
	case "cs":
		return t.Format("2. 1. 2006")
	case "de", "ua", "uk":
		return t.Format("02.01.2006")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// ISODate formats t as YYYY-MM-DD, the form used in sitemaps and datetime
// attributes.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/i18n"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/requestctx"
)

// LocaleCookie remembers the last locale a visitor browsed in.
const LocaleCookie = "locale"

const localeCookieMaxAge = 365 * 24 * 60 * 60

// Locale validates the {locale} URL parameter. Supported locales are stored
// on the request context, surfaced as Content-Language and remembered in a
// cookie; anything else is handed to notFound.
func Locale(bundle *i18n.Bundle, notFound http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := strings.ToLower(chi.URLParam(r, "locale"))
			if !bundle.IsSupported(locale) {
				if notFound != nil {
					ctx := requestctx.WithLocale(r.Context(), bundle.Fallback())
					notFound.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				http.NotFound(w, r)
				return
			}

			w.Header().Set("Content-Language", i18n.HrefLang(locale))
			if c, err := r.Cookie(LocaleCookie); err != nil || c.Value != locale {
				http.SetCookie(w, &http.Cookie{
					Name:     LocaleCookie,
					Value:    locale,
					Path:     "/",
					MaxAge:   localeCookieMaxAge,
					SameSite: http.SameSiteLaxMode,
				})
			}
			ctx := requestctx.WithLocale(r.Context(), locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PreferredLocale picks a locale for requests that carry none in the path:
// the locale cookie, then Accept-Language, then the bundle fallback.
func PreferredLocale(r *http.Request, bundle *i18n.Bundle) string {
	if c, err := r.Cookie(LocaleCookie); err == nil {
		if v := strings.ToLower(strings.TrimSpace(c.Value)); bundle.IsSupported(v) {
			return v
		}
	}
	return bundle.Resolve(r.Header.Get("Accept-Language"))
}

// Lang returns the request locale or the given fallback.
func Lang(r *http.Request, fallback string) string {
	if l := requestctx.Locale(r.Context()); l != "" {
		return l
	}
	return fallback
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/i18n"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/requestctx"
)

func testBundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	b, err := i18n.Load("../../locales", "cs", []string{"cs", "en", "de", "ua"})
	require.NoError(t, err)
	return b
}

func TestLocaleStoresSupportedLocale(t *testing.T) {
	bundle := testBundle(t)
	r := chi.NewRouter()
	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("nf:" + requestctx.Locale(r.Context())))
	})
	r.Route("/{locale}", func(r chi.Router) {
		r.Use(Locale(bundle, notFound))
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(requestctx.Locale(r.Context())))
		})
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ua/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ua", rec.Body.String())
	assert.Equal(t, "uk", rec.Header().Get("Content-Language"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, LocaleCookie, cookies[0].Name)
	assert.Equal(t, "ua", cookies[0].Value)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/en/", nil)
	req.AddCookie(&http.Cookie{Name: LocaleCookie, Value: "en"})
	r.ServeHTTP(rec, req)
	assert.Empty(t, rec.Result().Cookies(), "cookie already matches")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fr/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "nf:cs", rec.Body.String())
}

func TestPreferredLocale(t *testing.T) {
	bundle := testBundle(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9")
	assert.Equal(t, "de", PreferredLocale(req, bundle))

	req.AddCookie(&http.Cookie{Name: LocaleCookie, Value: "en"})
	assert.Equal(t, "en", PreferredLocale(req, bundle), "cookie wins over header")

	bogus := httptest.NewRequest(http.MethodGet, "/", nil)
	bogus.AddCookie(&http.Cookie{Name: LocaleCookie, Value: "xx"})
	assert.Equal(t, "cs", PreferredLocale(bogus, bundle))
}

func TestVaryLocale(t *testing.T) {
	rec := httptest.NewRecorder()
	VaryLocale(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"Accept-Language", "Cookie"}, rec.Header().Values("Vary"))
}

func TestConsent(t *testing.T) {
	cases := map[string]ConsentState{
		"":        ConsentUnknown,
		"granted": ConsentGranted,
		"denied":  ConsentDenied,
		"maybe":   ConsentUnknown,
	}
	for value, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if value != "" {
			req.AddCookie(&http.Cookie{Name: ConsentCookie, Value: value})
		}
		var got ConsentState = "unset"
		Consent(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			got = ConsentFromContext(r.Context())
		})).ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, want, got, "cookie %q", value)
	}
}

func TestAssetsWithCache(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "site.css"), []byte("body{margin:0}"), 0o644))

	h := http.StripPrefix("/assets", AssetsWithCache(dir))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.NotContains(t, etag, "W/")
	assert.Equal(t, "Accept-Encoding", rec.Header().Get("Vary"))
	assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age=")
	assert.Equal(t, "body{margin:0}", rec.Body.String())

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil)
	req.Header.Set("If-None-Match", `"other", `+etag)
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	env := map[string]string{
		"SITE_URL": "https://example.cz/",
	}

	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("unexpected addr %s", cfg.Addr())
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Site.URL != "https://example.cz" {
		t.Errorf("expected trailing slash stripped, got %s", cfg.Site.URL)
	}
	if cfg.Site.DefaultLocale != "cs" {
		t.Errorf("expected default locale cs, got %s", cfg.Site.DefaultLocale)
	}
	if len(cfg.Site.Locales) != 4 {
		t.Errorf("expected four locales, got %v", cfg.Site.Locales)
	}
	if cfg.Contact.MinElapsed != 3*time.Second || cfg.Contact.MaxElapsed != time.Hour {
		t.Errorf("unexpected timing window %s..%s", cfg.Contact.MinElapsed, cfg.Contact.MaxElapsed)
	}
	if cfg.Contact.ProcessingDelay != time.Second {
		t.Errorf("unexpected processing delay %s", cfg.Contact.ProcessingDelay)
	}
	if cfg.RateLimits.ContactPerMinute != 0 {
		t.Errorf("expected contact rate limit disabled, got %d", cfg.RateLimits.ContactPerMinute)
	}
	if cfg.Analytics.Enabled() {
		t.Errorf("expected analytics disabled without ids")
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"SITE_SERVER_PORT":               "9090",
		"SITE_SERVER_IDLE_TIMEOUT":       "2m",
		"SITE_URL":                       "https://it.example.com",
		"SITE_NAME":                      "Example IT",
		"SITE_DEFAULT_LOCALE":            "EN",
		"SITE_LOCALES":                   "en, cs",
		"SITE_DEV":                       "yes",
		"SITE_GA_MEASUREMENT_ID":         "G-ABC123",
		"SITE_GTM_CONTAINER_ID":          "GTM-XYZ",
		"SITE_CONTACT_MIN_ELAPSED":       "5s",
		"SITE_CONTACT_MAX_ELAPSED":       "30m",
		"SITE_CONTACT_PROCESSING_DELAY":  "0s",
		"SITE_CONTACT_PUBSUB_PROJECT":    "proj",
		"SITE_CONTACT_PUBSUB_TOPIC":      "contact-submissions",
		"SITE_RATELIMIT_CONTACT_PER_MIN": "10",
		"LOG_LEVEL":                      "DEBUG",
	}

	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Server.IdleTimeout != 2*time.Minute {
		t.Errorf("unexpected idle timeout: %s", cfg.Server.IdleTimeout)
	}
	if cfg.Site.DefaultLocale != "en" {
		t.Errorf("expected lower-cased default locale, got %s", cfg.Site.DefaultLocale)
	}
	if len(cfg.Site.Locales) != 2 || cfg.Site.Locales[1] != "cs" {
		t.Errorf("unexpected locales %v", cfg.Site.Locales)
	}
	if !cfg.Site.DevMode {
		t.Errorf("expected dev mode")
	}
	if !cfg.Analytics.Enabled() {
		t.Errorf("expected analytics enabled")
	}
	if cfg.Contact.ProcessingDelay != 0 {
		t.Errorf("expected delay disabled, got %s", cfg.Contact.ProcessingDelay)
	}
	if cfg.Contact.PubSubTopic != "contact-submissions" {
		t.Errorf("unexpected topic %s", cfg.Contact.PubSubTopic)
	}
	if cfg.RateLimits.ContactPerMinute != 10 {
		t.Errorf("unexpected rate limit %d", cfg.RateLimits.ContactPerMinute)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("unexpected log level %s", cfg.LogLevel)
	}
}

func TestLoadPortFallsBackToPORT(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{"SITE_URL": "http://localhost:8080", "PORT": "3000"}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "3000" {
		t.Fatalf("expected PORT fallback, got %s", cfg.Server.Port)
	}
}

func TestLoadDotEnvFallback(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env.test")
	content := "SITE_SERVER_PORT=7070\nSITE_URL=\"https://dot.example.cz\"\n# comment\nexport SITE_NAME=Dot IT\n"
	if err := os.WriteFile(envPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write dotenv file: %v", err)
	}

	cfg, err := Load(WithEnvFile(envPath), WithoutSystemEnv())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("expected port from dotenv 7070, got %s", cfg.Server.Port)
	}
	if cfg.Site.URL != "https://dot.example.cz" {
		t.Errorf("expected site url from dotenv, got %s", cfg.Site.URL)
	}
	if cfg.Site.Name != "Dot IT" {
		t.Errorf("expected site name from dotenv, got %s", cfg.Site.Name)
	}
}

func TestLoadEnvMapOverridesDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("SITE_URL=https://dot.example.cz\nSITE_SERVER_PORT=7070\n"), 0o644); err != nil {
		t.Fatalf("failed to write dotenv file: %v", err)
	}

	cfg, err := Load(WithEnvFile(envPath), WithoutSystemEnv(), WithEnvMap(map[string]string{"SITE_SERVER_PORT": "9999"}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "9999" {
		t.Fatalf("expected env map to win, got %s", cfg.Server.Port)
	}
}

func TestLoadMissingDotEnvIsIgnored(t *testing.T) {
	_, err := Load(WithEnvFile(filepath.Join(t.TempDir(), "absent.env")), WithoutSystemEnv(), WithEnvMap(map[string]string{"SITE_URL": "https://example.cz"}))
	if err != nil {
		t.Fatalf("expected missing dotenv to be ignored, got %v", err)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	env := map[string]string{
		"SITE_DEFAULT_LOCALE":           "de",
		"SITE_LOCALES":                  "cs,fr",
		"SITE_GA_MEASUREMENT_ID":        "UA-1",
		"SITE_CONTACT_MIN_ELAPSED":      "2h",
		"SITE_CONTACT_PROCESSING_DELAY": "soon",
		"SITE_CONTACT_PUBSUB_TOPIC":     "topic-only",
	}

	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err == nil {
		t.Fatal("expected validation error")
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	want := map[string]bool{
		"SITE_CONTACT_PROCESSING_DELAY": false,
		"Site.URL":                      false,
		"Site.Locales":                  false,
		"Site.DefaultLocale":            false,
		"Analytics.GA4MeasurementID":    false,
		"Contact.MinElapsed/MaxElapsed": false,
		"Contact.PubSub":                false,
	}
	for _, f := range vErr.Fields() {
		if _, ok := want[f]; ok {
			want[f] = true
		}
	}
	for field, seen := range want {
		if !seen {
			t.Errorf("expected %s in validation fields %v", field, vErr.Fields())
		}
	}
}

func TestLoadRejectsNonHTTPSiteURL(t *testing.T) {
	for _, raw := range []string{"", "example.cz", "ftp://example.cz", "https://example.cz/?q=1"} {
		_, err := Load(WithEnvMap(map[string]string{"SITE_URL": raw}), WithoutSystemEnv(), WithEnvFile(""))
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("expected validation error for %q, got %v", raw, err)
		}
	}
}

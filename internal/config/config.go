package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile          = ".env"
	defaultPort             = "8080"
	defaultReadTimeout      = 15 * time.Second
	defaultWriteTimeout     = 30 * time.Second
	defaultIdleTimeout      = 120 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultSiteName         = "IT Services"
	defaultLocale           = "cs"
	defaultContentTTL       = 5 * time.Minute
	defaultMinElapsed       = 3 * time.Second
	defaultMaxElapsed       = time.Hour
	defaultProcessingDelay  = time.Second
	defaultMaxBodyBytes     = 64 << 10
	defaultLogLevel         = "info"
	defaultTemplatesDir     = "templates"
	defaultPublicDir        = "public"
	defaultLocalesDir       = "locales"
	defaultContentDir       = "content"
	defaultContactRateLimit = 0
)

// SupportedLocales lists every UI language the site ships dictionaries for.
var SupportedLocales = []string{"cs", "en", "de", "ua"}

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server     ServerConfig
	Site       SiteConfig
	Analytics  AnalyticsConfig
	Contact    ContactConfig
	RateLimits RateLimitConfig
	LogLevel   string
	// ProjectID is the Google Cloud project used to link logs to traces.
	ProjectID string
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// SiteConfig describes the public website.
type SiteConfig struct {
	// URL is the canonical origin without trailing slash, e.g. https://example.cz.
	URL           string
	Name          string
	// Email is published as the organisation's contact point.
	Email         string
	DefaultLocale string
	Locales       []string
	TemplatesDir  string
	PublicDir     string
	LocalesDir    string
	ContentDir    string
	ContentTTL    time.Duration
	DevMode       bool
}

// AnalyticsConfig holds client instrumentation identifiers surfaced to templates.
type AnalyticsConfig struct {
	GA4MeasurementID string
	GTMContainerID   string
	Debug            bool
}

// Enabled reports whether any tag is configured.
func (a AnalyticsConfig) Enabled() bool {
	return a.GA4MeasurementID != "" || a.GTMContainerID != ""
}

// ContactConfig tunes the contact intake pipeline.
type ContactConfig struct {
	MinElapsed      time.Duration
	MaxElapsed      time.Duration
	ProcessingDelay time.Duration
	MaxBodyBytes    int64
	PubSubProjectID string
	PubSubTopic     string
}

// RateLimitConfig controls request throttling. Zero disables a limiter.
type RateLimitConfig struct {
	ContactPerMinute int
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides. An empty
// path disables dotenv loading.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map. Values in the map take
// precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, the .env file, the process
// environment and explicit overrides, then validates it once.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if value, ok := dotEnvValues[key]; ok {
			return value, true
		}
		return "", false
	}

	p := parser{lookup: lookup}
	port := p.str("SITE_SERVER_PORT", "")
	if port == "" {
		port = p.str("PORT", defaultPort)
	}

	cfg := Config{
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     p.duration("SITE_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    p.duration("SITE_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     p.duration("SITE_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout: p.duration("SITE_SERVER_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		},
		Site: SiteConfig{
			URL:           strings.TrimRight(p.str("SITE_URL", ""), "/"),
			Name:          p.str("SITE_NAME", defaultSiteName),
			Email:         p.str("SITE_CONTACT_EMAIL", ""),
			DefaultLocale: strings.ToLower(p.str("SITE_DEFAULT_LOCALE", defaultLocale)),
			Locales:       p.csv("SITE_LOCALES", SupportedLocales),
			TemplatesDir:  p.str("SITE_TEMPLATES_DIR", defaultTemplatesDir),
			PublicDir:     p.str("SITE_PUBLIC_DIR", defaultPublicDir),
			LocalesDir:    p.str("SITE_LOCALES_DIR", defaultLocalesDir),
			ContentDir:    p.str("SITE_CONTENT_DIR", defaultContentDir),
			ContentTTL:    p.duration("SITE_CONTENT_TTL", defaultContentTTL),
			DevMode:       p.boolean("SITE_DEV", false),
		},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: p.str("SITE_GA_MEASUREMENT_ID", ""),
			GTMContainerID:   p.str("SITE_GTM_CONTAINER_ID", ""),
			Debug:            p.boolean("SITE_ANALYTICS_DEBUG", false),
		},
		Contact: ContactConfig{
			MinElapsed:      p.duration("SITE_CONTACT_MIN_ELAPSED", defaultMinElapsed),
			MaxElapsed:      p.duration("SITE_CONTACT_MAX_ELAPSED", defaultMaxElapsed),
			ProcessingDelay: p.duration("SITE_CONTACT_PROCESSING_DELAY", defaultProcessingDelay),
			MaxBodyBytes:    int64(p.integer("SITE_CONTACT_MAX_BODY_BYTES", defaultMaxBodyBytes)),
			PubSubProjectID: p.str("SITE_CONTACT_PUBSUB_PROJECT", ""),
			PubSubTopic:     p.str("SITE_CONTACT_PUBSUB_TOPIC", ""),
		},
		RateLimits: RateLimitConfig{
			ContactPerMinute: p.integer("SITE_RATELIMIT_CONTACT_PER_MIN", defaultContactRateLimit),
		},
		LogLevel:  strings.ToLower(p.str("LOG_LEVEL", defaultLogLevel)),
		ProjectID: p.str("SITE_GCP_PROJECT", p.str("GOOGLE_CLOUD_PROJECT", "")),
	}
	for i, l := range cfg.Site.Locales {
		cfg.Site.Locales[i] = strings.ToLower(l)
	}

	if err := validateConfig(cfg, p.invalid); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Server.Port
}

func validateConfig(cfg Config, invalid []string) error {
	missing := append([]string(nil), invalid...)

	if cfg.Server.Port == "" {
		missing = append(missing, "Server.Port")
	} else if n, err := strconv.Atoi(cfg.Server.Port); err != nil || n <= 0 || n > 65535 {
		missing = append(missing, "Server.Port")
	}
	if !validSiteURL(cfg.Site.URL) {
		missing = append(missing, "Site.URL")
	}
	if len(cfg.Site.Locales) == 0 {
		missing = append(missing, "Site.Locales")
	}
	for _, l := range cfg.Site.Locales {
		if !slices.Contains(SupportedLocales, l) {
			missing = append(missing, "Site.Locales")
			break
		}
	}
	if !slices.Contains(cfg.Site.Locales, cfg.Site.DefaultLocale) {
		missing = append(missing, "Site.DefaultLocale")
	}
	if cfg.Site.ContentTTL <= 0 {
		missing = append(missing, "Site.ContentTTL")
	}
	if id := cfg.Analytics.GA4MeasurementID; id != "" && !strings.HasPrefix(id, "G-") {
		missing = append(missing, "Analytics.GA4MeasurementID")
	}
	if id := cfg.Analytics.GTMContainerID; id != "" && !strings.HasPrefix(id, "GTM-") {
		missing = append(missing, "Analytics.GTMContainerID")
	}
	if cfg.Contact.MinElapsed < 0 || cfg.Contact.MaxElapsed <= 0 || cfg.Contact.MinElapsed > cfg.Contact.MaxElapsed {
		missing = append(missing, "Contact.MinElapsed/MaxElapsed")
	}
	if cfg.Contact.ProcessingDelay < 0 {
		missing = append(missing, "Contact.ProcessingDelay")
	}
	if cfg.Contact.MaxBodyBytes <= 0 {
		missing = append(missing, "Contact.MaxBodyBytes")
	}
	if (cfg.Contact.PubSubProjectID == "") != (cfg.Contact.PubSubTopic == "") {
		missing = append(missing, "Contact.PubSub")
	}
	if cfg.RateLimits.ContactPerMinute < 0 {
		missing = append(missing, "RateLimits.ContactPerMinute")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: slices.Compact(missing)}
	}
	return nil
}

func validSiteURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" && u.RawQuery == "" && u.Fragment == ""
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
	}
	return values, nil
}

// parser reads typed values and remembers keys whose values failed to parse.
type parser struct {
	lookup  func(string) (string, bool)
	invalid []string
}

func (p *parser) str(key, fallback string) string {
	if value, ok := p.lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	value, ok := p.lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		p.invalid = append(p.invalid, key)
		return fallback
	}
	return d
}

func (p *parser) integer(key string, fallback int) int {
	value, ok := p.lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		p.invalid = append(p.invalid, key)
		return fallback
	}
	return parsed
}

func (p *parser) boolean(key string, fallback bool) bool {
	value, ok := p.lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	p.invalid = append(p.invalid, key)
	return fallback
}

func (p *parser) csv(key string, fallback []string) []string {
	raw, ok := p.lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return append([]string(nil), fallback...)
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

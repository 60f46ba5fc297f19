// Package config loads runtime configuration from defaults, a .env file and
// the process environment.
package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	defaultEnvFile      = ".env"
	defaultAddr         = ":8080"
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	defaultContentDir   = "content"
	defaultIndexFile    = "content/index.yaml"
	defaultTemplatesDir = "templates"
	defaultPublicDir    = "public"
	defaultLogLevel     = "info"
	defaultLang         = "en"
)

// Config captures runtime configuration organised by concern.
type Config struct {
	Server   ServerConfig
	Content  ContentConfig
	Site     SiteConfig
	LogLevel string
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// ContentConfig locates the guide files and their index.
type ContentConfig struct {
	Dir       string
	IndexFile string
}

// SiteConfig controls presentation.
type SiteConfig struct {
	TemplatesDir string
	PublicDir    string
	// Dev reparses templates on every render.
	Dev bool
	// URL is the absolute base used for structured data. Empty keeps URLs relative.
	URL string
	// GAMeasurementID enables the GA4 snippet when set.
	GAMeasurementID string
	// Lang is the BCP 47 tag of the content, e.g. "en" or "en-US".
	Lang string
}

// ValidationError is returned when configuration values are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
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

// WithEnvFile overrides the .env file path. An empty path disables it.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects explicit values. They take precedence over the system environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration. Precedence: env map > process env > .env file > defaults.
func Load(ctx context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if err := ctx.Err(); err != nil {
		return Config{}, err
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

	var invalid []string
	duration := func(key string, fallback time.Duration) time.Duration {
		value, ok := lookup(key)
		if !ok || strings.TrimSpace(value) == "" {
			return fallback
		}
		d, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil || d <= 0 {
			invalid = append(invalid, key)
			return fallback
		}
		return d
	}
	boolean := func(key string, fallback bool) bool {
		value, ok := lookup(key)
		if !ok || strings.TrimSpace(value) == "" {
			return fallback
		}
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
		invalid = append(invalid, key)
		return fallback
	}

	cfg := Config{
		Server: ServerConfig{
			Addr:         serverAddr(lookup),
			ReadTimeout:  duration("DOCS_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: duration("DOCS_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  duration("DOCS_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Content: ContentConfig{
			Dir:       stringWithDefault(lookup, "DOCS_CONTENT_DIR", defaultContentDir),
			IndexFile: stringWithDefault(lookup, "DOCS_INDEX_FILE", defaultIndexFile),
		},
		Site: SiteConfig{
			TemplatesDir:    stringWithDefault(lookup, "DOCS_TEMPLATES_DIR", defaultTemplatesDir),
			PublicDir:       stringWithDefault(lookup, "DOCS_PUBLIC_DIR", defaultPublicDir),
			Dev:             boolean("DOCS_DEV", false),
			URL:             strings.TrimRight(stringWithDefault(lookup, "DOCS_SITE_URL", ""), "/"),
			GAMeasurementID: stringWithDefault(lookup, "DOCS_GA_MEASUREMENT_ID", ""),
			Lang:            defaultLang,
		},
		LogLevel: stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	if cfg.Site.URL != "" {
		if u, err := url.Parse(cfg.Site.URL); err != nil || !u.IsAbs() || u.Host == "" {
			invalid = append(invalid, "DOCS_SITE_URL")
		}
	}
	if raw := stringWithDefault(lookup, "DOCS_LANG", ""); raw != "" {
		if tag, err := canonicalLanguageTag(raw); err != nil {
			invalid = append(invalid, "DOCS_LANG")
		} else {
			cfg.Site.Lang = tag
		}
	}
	if len(invalid) > 0 {
		return Config{}, &ValidationError{fields: invalid}
	}
	return cfg, nil
}

func canonicalLanguageTag(raw string) (string, error) {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(raw), "_", "-"))
	if err != nil {
		return "", err
	}
	return tag.String(), nil
}

// serverAddr prefers DOCS_SERVER_ADDR, then a bare PORT as set by Cloud Run.
func serverAddr(lookup func(string) (string, bool)) string {
	if addr := stringWithDefault(lookup, "DOCS_SERVER_ADDR", ""); addr != "" {
		return addr
	}
	if port := stringWithDefault(lookup, "PORT", ""); port != "" {
		return ":" + strings.TrimPrefix(port, ":")
	}
	return defaultAddr
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// Package config loads service configuration. Sources are applied in order:
// built-in defaults, an optional YAML file (CONFIG_FILE), a .env file, and
// finally the process environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Renderer strategies selectable with PDF_STRATEGY.
const (
	StrategyChromedp = "chromedp"
	StrategyRod      = "rod"
	StrategyPrint    = "print"
)

// Generation backends selectable with AI_BACKEND.
const (
	BackendService = "service"
	BackendGemini  = "gemini"
)

type Config struct {
	Port      string `yaml:"port"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	AIBackend         string        `yaml:"ai_backend"`
	AIServiceURL      string        `yaml:"ai_service_url"`
	AIMaxAttempts     int           `yaml:"ai_max_attempts"`
	GeminiAPIKey      string        `yaml:"gemini_api_key"`
	GeminiModel       string        `yaml:"gemini_model"`
	GenerationTimeout time.Duration `yaml:"generation_timeout"`
	MarkupStrict      bool          `yaml:"markup_strict"`

	UnlockLatency time.Duration `yaml:"unlock_latency"`
	SessionTTL    time.Duration `yaml:"session_ttl"`

	PDFStrategy string        `yaml:"pdf_strategy"`
	PDFTimeout  time.Duration `yaml:"pdf_timeout"`
	ChromePath  string        `yaml:"chrome_path"`
	TempDir     string        `yaml:"temp_dir"`

	JobsDatabaseURL string `yaml:"jobs_database_url"`
}

func Default() Config {
	return Config{
		Port:              "3000",
		LogLevel:          "info",
		LogFormat:         "json",
		AIBackend:         BackendService,
		AIServiceURL:      "http://ai-service:8000",
		AIMaxAttempts:     1,
		GeminiModel:       "gemini-2.5-flash",
		GenerationTimeout: 90 * time.Second,
		UnlockLatency:     1500 * time.Millisecond,
		SessionTTL:        2 * time.Hour,
		PDFStrategy:       StrategyChromedp,
		PDFTimeout:        60 * time.Second,
		TempDir:           os.TempDir(),
	}
}

// Load builds the configuration. A missing .env is not an error; a missing
// CONFIG_FILE is.
func Load() (Config, error) {
	cfg := Default()

	// best effort, for local development
	_ = godotenv.Load()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("PORT", &c.Port)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	str("AI_BACKEND", &c.AIBackend)
	str("AI_SERVICE_URL", &c.AIServiceURL)
	str("GEMINI_API_KEY", &c.GeminiAPIKey)
	str("GEMINI_MODEL", &c.GeminiModel)
	str("PDF_STRATEGY", &c.PDFStrategy)
	str("CHROME_PATH", &c.ChromePath)
	str("TEMP_DIR", &c.TempDir)
	str("JOBS_DATABASE_URL", &c.JobsDatabaseURL)

	durations := map[string]*time.Duration{
		"GENERATION_TIMEOUT": &c.GenerationTimeout,
		"UNLOCK_LATENCY":     &c.UnlockLatency,
		"SESSION_TTL":        &c.SessionTTL,
		"PDF_TIMEOUT":        &c.PDFTimeout,
	}
	for key, dst := range durations {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		*dst = d
	}

	if v, ok := lookup("AI_MAX_ATTEMPTS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: AI_MAX_ATTEMPTS: %w", err)
		}
		c.AIMaxAttempts = n
	}
	if v, ok := lookup("MARKUP_STRICT"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: MARKUP_STRICT: %w", err)
		}
		c.MarkupStrict = b
	}
	return nil
}

// Validate rejects values the service cannot start with.
func (c Config) Validate() error {
	switch c.PDFStrategy {
	case StrategyChromedp, StrategyRod, StrategyPrint:
	default:
		return fmt.Errorf("config: unknown PDF_STRATEGY %q", c.PDFStrategy)
	}
	switch c.AIBackend {
	case BackendService:
		if c.AIServiceURL == "" {
			return fmt.Errorf("config: AI_SERVICE_URL is required for the %s backend", BackendService)
		}
	case BackendGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("config: GEMINI_API_KEY is required for the %s backend", BackendGemini)
		}
	default:
		return fmt.Errorf("config: unknown AI_BACKEND %q", c.AIBackend)
	}
	if c.AIMaxAttempts < 1 {
		return fmt.Errorf("config: AI_MAX_ATTEMPTS must be >= 1")
	}
	if c.GenerationTimeout <= 0 || c.PDFTimeout <= 0 {
		return fmt.Errorf("config: timeouts must be positive")
	}
	if c.UnlockLatency < 0 {
		return fmt.Errorf("config: UNLOCK_LATENCY must not be negative")
	}
	return nil
}

// Logger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func (c Config) Logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all environment backed configuration for the dialog API.
type Config struct {
	// HTTP Server
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort     int           `env:"METRICS_PORT" envDefault:"9091"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	EnableSwagger   bool          `env:"ENABLE_SWAGGER" envDefault:"true"`

	// MongoDB
	MongoURI      string        `env:"MONGO_URI,notEmpty"`
	MongoDatabase string        `env:"MONGO_DATABASE" envDefault:"hr_assistant"`
	MongoTimeout  time.Duration `env:"MONGO_TIMEOUT" envDefault:"10s"`

	// Completion API
	OpenAISecret       string        `env:"OPEN_AI_SECRET,notEmpty"`
	OpenAIBaseURL      string        `env:"OPEN_AI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OpenAIModel        string        `env:"OPEN_AI_MODEL" envDefault:"gpt-3.5-turbo"`
	OpenAISubjectModel string        `env:"OPEN_AI_SUBJECT_MODEL"`
	OpenAITimeout      time.Duration `env:"OPEN_AI_TIMEOUT" envDefault:"120s"`
	MaxAnswerLength    int           `env:"MAX_ANSWER_LENGTH" envDefault:"2000"`
	PromptsFile        string        `env:"PROMPTS_FILE"`

	// Auth
	JWTSecretKey  string        `env:"JWT_SECRET_KEY,notEmpty"`
	JWTTTL        time.Duration `env:"JWT_TTL" envDefault:"300m"`
	UserCacheSize int           `env:"USER_CACHE_SIZE" envDefault:"1024"`

	// Observability / Logging
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"SERVICE_NAME" envDefault:"hr-assistant-api"`
	Environment  string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"console"`
	LogPIILevel  string `env:"LOG_PII_LEVEL" envDefault:"hashed"` // none, hashed or full
	LogPIISalt   string `env:"LOG_PII_SALT"`                      // derived from JWT_SECRET_KEY when empty
}

// Load parses environment variables into Config and performs minimal validation.
//
// Configuration Loading Order (highest to lowest priority):
// 1. Environment variables
// 2. .env file (if present, loaded by the caller)
// 3. Default values from struct tags
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if _, err := url.ParseRequestURI(cfg.OpenAIBaseURL); err != nil {
		return nil, fmt.Errorf("invalid OPEN_AI_BASE_URL: %w", err)
	}
	if !strings.HasPrefix(cfg.MongoURI, "mongodb://") && !strings.HasPrefix(cfg.MongoURI, "mongodb+srv://") {
		return nil, errors.New("MONGO_URI must use the mongodb:// or mongodb+srv:// scheme")
	}
	if cfg.MaxAnswerLength <= 0 {
		return nil, errors.New("MAX_ANSWER_LENGTH must be positive")
	}
	if cfg.JWTTTL <= 0 {
		return nil, errors.New("JWT_TTL must be positive")
	}

	if strings.TrimSpace(cfg.OpenAISubjectModel) == "" {
		cfg.OpenAISubjectModel = cfg.OpenAIModel
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogPIILevel = strings.ToLower(strings.TrimSpace(cfg.LogPIILevel))

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// MetricsAddr returns the Prometheus listen address.
func (c *Config) MetricsAddr() string {
	return fmt.Sprintf(":%d", c.MetricsPort)
}

// IsProduction reports whether the service runs in the production environment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

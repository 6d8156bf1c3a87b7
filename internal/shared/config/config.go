package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type LLMConfig struct {
	Provider    string        `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIKey   string        `env:"OPENAI_API_KEY"`
	GroqKey     string        `env:"GROQ_API_KEY"`
	DeepSeekKey string        `env:"DEEPSEEK_API_KEY"`
	ClaudeKey   string        `env:"CLAUDE_API_KEY"`
	GeminiKey   string        `env:"GEMINI_API_KEY"`
	BaseURL     string        `env:"LLM_BASE_URL"`
	Model       string        `env:"LLM_MODEL"`
	Temperature float32       `env:"LLM_TEMPERATURE" envDefault:"0.3"`
	MaxTokens   int           `env:"LLM_MAX_TOKENS" envDefault:"200"`
	Timeout     time.Duration `env:"LLM_TIMEOUT" envDefault:"10s"`
}

type ClassifierConfig struct {
	Strategy string        `env:"CLASSIFIER_STRATEGY" envDefault:"hybrid"`
	Model    string        `env:"CLASSIFIER_MODEL"`
	Timeout  time.Duration `env:"CLASSIFIER_TIMEOUT" envDefault:"5s"`
}

type TenantConfig struct {
	CacheTTL        time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`
	CacheMaxEntries int           `env:"TENANT_CACHE_MAX_ENTRIES" envDefault:"1000"`
	FetchTimeout    time.Duration `env:"TENANT_FETCH_TIMEOUT" envDefault:"3s"`
	DefaultTimezone string        `env:"DEFAULT_TIMEZONE" envDefault:"UTC"`
}

type Config struct {
	Port               string   `env:"PORT" envDefault:"8080"`
	Env                string   `env:"ENV" envDefault:"development"`
	DatabaseURL        string   `env:"DATABASE_URL"`
	RedisURL           string   `env:"REDIS_URL"`
	CORSAllowOrigins   []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`
	RateLimitPerMinute int      `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`

	LLM        LLMConfig
	Classifier ClassifierConfig
	Tenant     TenantConfig
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("⚠️ .env file not found, using system environment variables")
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if _, err := time.LoadLocation(c.Tenant.DefaultTimezone); err != nil {
		return fmt.Errorf("invalid DEFAULT_TIMEZONE %q: %w", c.Tenant.DefaultTimezone, err)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// DefaultLocation is the zone used for tenants without a timezone.
func (c *Config) DefaultLocation() *time.Location {
	loc, err := time.LoadLocation(c.Tenant.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	Port        string `mapstructure:"PORT"`
	Env         string `mapstructure:"ENV"`
	GinMode     string `mapstructure:"GIN_MODE"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`

	// Upstream services.
	ItineraryAPIURL    string `mapstructure:"ITINERARY_API_URL"`
	EmailAPIURL        string `mapstructure:"EMAIL_API_URL"`
	HTTPTimeoutSeconds int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`

	// Language model.
	LLMProvider       string `mapstructure:"LLM_PROVIDER"`
	GeminiAPIKey      string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel       string `mapstructure:"GEMINI_MODEL"`
	HuggingFaceAPIKey string `mapstructure:"HUGGINGFACE_API_KEY"`
	HFModel           string `mapstructure:"HF_MODEL"`

	// Flight search.
	SerpAPIKey string `mapstructure:"SERPAPI_KEY"`
	SerpAPIURL string `mapstructure:"SERPAPI_URL"`

	// Saved plan storage.
	StoreDriver   string `mapstructure:"STORE_DRIVER"`
	StorePath     string `mapstructure:"STORE_PATH"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	DBHost        string `mapstructure:"DB_HOST"`
	DBPort        string `mapstructure:"DB_PORT"`
	DBUser        string `mapstructure:"DB_USER"`
	DBPassword    string `mapstructure:"DB_PASSWORD"`
	DBName        string `mapstructure:"DB_NAME"`
	DBSSLMode     string `mapstructure:"DB_SSLMODE"`

	RateLimitPerMin int    `mapstructure:"RATE_LIMIT_PER_MIN"`
	TrustedProxyIPs string `mapstructure:"TRUSTED_PROXIES"`
}

// Load reads an optional .env file and then the process environment.
// A missing .env is not an error; production sets variables directly.
func Load(envFiles ...string) (Config, error) {
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.EmailAPIURL == "" {
		cfg.EmailAPIURL = cfg.ItineraryAPIURL
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("GIN_MODE", "")
	v.SetDefault("FRONTEND_URL", "")
	v.SetDefault("ITINERARY_API_URL", "http://localhost:8001")
	v.SetDefault("EMAIL_API_URL", "")
	v.SetDefault("HTTP_TIMEOUT_SECONDS", 60)
	v.SetDefault("LLM_PROVIDER", "gemini")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("HUGGINGFACE_API_KEY", "")
	v.SetDefault("HF_MODEL", "mistralai/Mistral-7B-Instruct-v0.3")
	v.SetDefault("SERPAPI_KEY", "")
	v.SetDefault("SERPAPI_URL", "https://serpapi.com/search.json")
	v.SetDefault("STORE_DRIVER", "file")
	v.SetDefault("STORE_PATH", "./data/saved_plans.json")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "tripwise")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("RATE_LIMIT_PER_MIN", 30)
	v.SetDefault("TRUSTED_PROXIES", "")
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// PostgresDSN prefers DATABASE_URL (hosted providers) and falls back to the
// individual DB_* variables for local development.
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// AllowedOrigins returns the local dev origins plus any comma separated
// FRONTEND_URL entries.
func (c Config) AllowedOrigins() []string {
	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	for _, u := range strings.Split(c.FrontendURL, ",") {
		u = strings.TrimSpace(u)
		if u != "" {
			origins = append(origins, u)
		}
	}
	return origins
}

// TrustedProxies returns the comma separated TRUSTED_PROXIES entries (IPs or
// CIDRs). An empty result means X-Forwarded-For is never trusted.
func (c Config) TrustedProxies() []string {
	var proxies []string
	for _, p := range strings.Split(c.TrustedProxyIPs, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			proxies = append(proxies, p)
		}
	}
	return proxies
}

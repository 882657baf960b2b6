// Package config handles configuration loading for InvestSight.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	News     NewsConfig     `mapstructure:"news"     yaml:"news"`
	Market   MarketConfig   `mapstructure:"market"   yaml:"market"`
	Research ResearchConfig `mapstructure:"research" yaml:"research"`
	Security SecurityConfig `mapstructure:"security" yaml:"security"`
	API      APIConfig      `mapstructure:"api"      yaml:"api"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// NewsConfig holds news gathering settings.
type NewsConfig struct {
	APIKey               string   `mapstructure:"api_key"                 yaml:"api_key"`
	MaxArticlesPerSource int      `mapstructure:"max_articles_per_source" yaml:"max_articles_per_source" validate:"gte=1,lte=100"`
	DaysBack             int      `mapstructure:"days_back"               yaml:"days_back"               validate:"gte=1,lte=30"`
	Feeds                []string `mapstructure:"feeds"                   yaml:"feeds"`
}

// MarketConfig holds quote provider settings.
type MarketConfig struct {
	QuoteTimeoutSec int `mapstructure:"quote_timeout_sec" yaml:"quote_timeout_sec" validate:"gte=1"`
	CacheTTLSec     int `mapstructure:"cache_ttl_sec"     yaml:"cache_ttl_sec"     validate:"gte=0"`
}

// ResearchConfig holds pipeline and persistence settings.
type ResearchConfig struct {
	Period    string `mapstructure:"period"     yaml:"period"     validate:"oneof=annual quarterly"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	HistoryDB string `mapstructure:"history_db" yaml:"history_db"` // empty disables run recording
	Watchlist string `mapstructure:"watchlist"  yaml:"watchlist"`
}

// SecurityConfig holds the request policy applied at entry points.
type SecurityConfig struct {
	RateLimitPerMinute int  `mapstructure:"rate_limit_per_minute" yaml:"rate_limit_per_minute" validate:"gte=1"`
	EnableRateLimiting bool `mapstructure:"enable_rate_limiting"  yaml:"enable_rate_limiting"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port" validate:"gte=1,lte=65535"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	File  string `mapstructure:"file"  yaml:"file"`
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.investsight/config.yaml (home directory)
//  3. /etc/investsight/config.yaml (system)
//
// Environment variables override config file values.
// Format: INVESTSIGHT_<SECTION>_<KEY>, e.g., INVESTSIGHT_NEWS_API_KEY
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".investsight"))
	v.AddConfigPath("/etc/investsight")

	v.SetEnvPrefix("INVESTSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("INVESTSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// Validate checks the loaded configuration for out-of-range or
// misspelled values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// News defaults
	v.SetDefault("news.max_articles_per_source", 10)
	v.SetDefault("news.days_back", 7)
	v.SetDefault("news.feeds", []string{
		"https://finance.yahoo.com/news/rssindex",
		"https://www.cnbc.com/id/100003114/device/rss/rss.html",
		"https://feeds.marketwatch.com/marketwatch/topstories/",
	})

	// Market defaults
	v.SetDefault("market.quote_timeout_sec", 30)
	v.SetDefault("market.cache_ttl_sec", 300) // 5 minutes

	// Research defaults
	v.SetDefault("research.period", "annual")
	v.SetDefault("research.output_dir", ".")
	v.SetDefault("research.history_db", "investsight.db")
	v.SetDefault("research.watchlist", "watchlist.yaml")

	// Security defaults
	v.SetDefault("security.rate_limit_per_minute", 60)
	v.SetDefault("security.enable_rate_limiting", true)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
}

// overrideFromEnv explicitly reads sensitive keys from environment
// variables. The bare NEWS_API_KEY name is honored for compatibility
// with older deployments.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("INVESTSIGHT_NEWS_API_KEY"); key != "" {
		cfg.News.APIKey = key
	} else if key := os.Getenv("NEWS_API_KEY"); key != "" {
		cfg.News.APIKey = key
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

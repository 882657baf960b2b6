package config

import (
	"os"
	"path/filepath"
	"testing"
)

// ── Load / Defaults ──

func TestLoadReturnsDefaults(t *testing.T) {
	// Unset any env vars that would interfere
	envVars := []string{"INVESTSIGHT_NEWS_API_KEY", "NEWS_API_KEY"}
	for _, e := range envVars {
		os.Unsetenv(e)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// News defaults
	if cfg.News.MaxArticlesPerSource != 10 {
		t.Errorf("News.MaxArticlesPerSource: got %d, want 10", cfg.News.MaxArticlesPerSource)
	}
	if cfg.News.DaysBack != 7 {
		t.Errorf("News.DaysBack: got %d, want 7", cfg.News.DaysBack)
	}
	if len(cfg.News.Feeds) != 3 {
		t.Errorf("News.Feeds: got %d feeds, want 3", len(cfg.News.Feeds))
	}

	// Market defaults
	if cfg.Market.QuoteTimeoutSec != 30 {
		t.Errorf("Market.QuoteTimeoutSec: got %d, want 30", cfg.Market.QuoteTimeoutSec)
	}
	if cfg.Market.CacheTTLSec != 300 {
		t.Errorf("Market.CacheTTLSec: got %d, want 300", cfg.Market.CacheTTLSec)
	}

	// Research defaults
	if cfg.Research.Period != "annual" {
		t.Errorf("Research.Period: got %q, want %q", cfg.Research.Period, "annual")
	}
	if cfg.Research.OutputDir != "." {
		t.Errorf("Research.OutputDir: got %q, want %q", cfg.Research.OutputDir, ".")
	}
	if cfg.Research.HistoryDB != "investsight.db" {
		t.Errorf("Research.HistoryDB: got %q, want %q", cfg.Research.HistoryDB, "investsight.db")
	}
	if cfg.Research.Watchlist != "watchlist.yaml" {
		t.Errorf("Research.Watchlist: got %q, want %q", cfg.Research.Watchlist, "watchlist.yaml")
	}

	// Security defaults
	if cfg.Security.RateLimitPerMinute != 60 {
		t.Errorf("Security.RateLimitPerMinute: got %d, want 60", cfg.Security.RateLimitPerMinute)
	}
	if !cfg.Security.EnableRateLimiting {
		t.Error("Security.EnableRateLimiting should be true by default")
	}

	// API defaults
	if cfg.API.Host != "0.0.0.0" {
		t.Errorf("API.Host: got %q, want %q", cfg.API.Host, "0.0.0.0")
	}
	if cfg.API.Port != 8080 {
		t.Errorf("API.Port: got %d, want 8080", cfg.API.Port)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "info")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults: %v", err)
	}
}

// ── LoadFromFile ──

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "test_config.yaml")
	content := []byte(`
news:
  max_articles_per_source: 20
  days_back: 14
research:
  period: "quarterly"
  output_dir: "/tmp/research"
security:
  rate_limit_per_minute: 30
api:
  port: 9090
logging:
  level: "debug"
`)
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	os.Unsetenv("INVESTSIGHT_NEWS_API_KEY")
	os.Unsetenv("NEWS_API_KEY")

	cfg, err := LoadFromFile(cfgPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg.News.MaxArticlesPerSource != 20 {
		t.Errorf("News.MaxArticlesPerSource: got %d, want 20", cfg.News.MaxArticlesPerSource)
	}
	if cfg.News.DaysBack != 14 {
		t.Errorf("News.DaysBack: got %d, want 14", cfg.News.DaysBack)
	}
	if cfg.Research.Period != "quarterly" {
		t.Errorf("Research.Period: got %q, want %q", cfg.Research.Period, "quarterly")
	}
	if cfg.Research.OutputDir != "/tmp/research" {
		t.Errorf("Research.OutputDir: got %q", cfg.Research.OutputDir)
	}
	if cfg.Security.RateLimitPerMinute != 30 {
		t.Errorf("Security.RateLimitPerMinute: got %d, want 30", cfg.Security.RateLimitPerMinute)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("API.Port: got %d, want 9090", cfg.API.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "debug")
	}

	// Unset keys fall back to defaults
	if cfg.Market.QuoteTimeoutSec != 30 {
		t.Errorf("Market.QuoteTimeoutSec: got %d, want default 30", cfg.Market.QuoteTimeoutSec)
	}
}

func TestLoadFromFileNotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("LoadFromFile() with nonexistent path should return error")
	}
}

// ── Validate ──

func TestValidateRejectsBadValues(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	cfg.Research.Period = "weekly"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject unknown research period")
	}
	cfg.Research.Period = "annual"

	cfg.API.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject out-of-range port")
	}
	cfg.API.Port = 8080

	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject unknown log level")
	}
}

// ── overrideFromEnv ──

func TestOverrideFromEnv(t *testing.T) {
	cfg := &Config{}

	os.Setenv("INVESTSIGHT_NEWS_API_KEY", "abcdef1234567890abcdef1234567890")
	defer os.Unsetenv("INVESTSIGHT_NEWS_API_KEY")

	overrideFromEnv(cfg)

	if cfg.News.APIKey != "abcdef1234567890abcdef1234567890" {
		t.Errorf("News.APIKey: got %q", cfg.News.APIKey)
	}
}

func TestOverrideFromEnvLegacyName(t *testing.T) {
	os.Unsetenv("INVESTSIGHT_NEWS_API_KEY")
	os.Setenv("NEWS_API_KEY", "legacykey1234567890legacykey1234")
	defer os.Unsetenv("NEWS_API_KEY")

	cfg := &Config{}
	overrideFromEnv(cfg)

	if cfg.News.APIKey != "legacykey1234567890legacykey1234" {
		t.Errorf("News.APIKey from legacy env: got %q", cfg.News.APIKey)
	}
}

func TestOverrideFromEnvNoEnvSet(t *testing.T) {
	os.Unsetenv("INVESTSIGHT_NEWS_API_KEY")
	os.Unsetenv("NEWS_API_KEY")

	cfg := &Config{News: NewsConfig{APIKey: "from-config"}}
	overrideFromEnv(cfg)

	// Should retain the original value when env is not set
	if cfg.News.APIKey != "from-config" {
		t.Errorf("News.APIKey should stay as 'from-config' when env is unset, got %q", cfg.News.APIKey)
	}
}

// ── ValidateAPIKey ──

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		key     string
		keyType string
		want    bool
	}{
		{"abcdef1234567890abcdef1234567890", "news", true},   // exactly 32 alphanumeric
		{"abcdef1234567890abcdef123456789", "news", false},   // 31 chars
		{"abcdef1234567890abcdef12345678901", "news", false}, // 33 chars
		{"your_news_api_key_here", "news", false},            // template placeholder
		{"", "news", false},
		{"abcd1234abcd1234", "alpha_vantage", true}, // exactly 16
		{"abcd1234", "alpha_vantage", false},
		{"sixteencharslong", "unknown_provider", true}, // default pattern
		{"tooshort", "unknown_provider", false},
		{"has-hyphens-in-it", "unknown_provider", false},
	}
	for _, tc := range tests {
		got := ValidateAPIKey(tc.key, tc.keyType)
		if got != tc.want {
			t.Errorf("ValidateAPIKey(%q, %q) = %v, want %v", tc.key, tc.keyType, got, tc.want)
		}
	}
}

// ── maskKey ──

func TestMaskKeyShort(t *testing.T) {
	// Keys with 8 or fewer characters should be fully masked
	tests := []struct {
		input string
		want  string
	}{
		{"", "***"},
		{"a", "***"},
		{"abcd", "***"},
		{"12345678", "***"},
	}
	for _, tc := range tests {
		got := maskKey(tc.input)
		if got != tc.want {
			t.Errorf("maskKey(%q): got %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestMaskKeyLong(t *testing.T) {
	// Keys with more than 8 characters show first 3 + ... + last 3
	tests := []struct {
		input string
		want  string
	}{
		{"123456789", "123...789"},
		{"abcdef1234567890abcdef1234567890", "abc...890"},
	}
	for _, tc := range tests {
		got := maskKey(tc.input)
		if got != tc.want {
			t.Errorf("maskKey(%q): got %q, want %q", tc.input, got, tc.want)
		}
	}
}

// ── CheckAPIKeys / checkKey ──

func TestCheckAPIKeysEmpty(t *testing.T) {
	os.Unsetenv("INVESTSIGHT_NEWS_API_KEY")
	os.Unsetenv("NEWS_API_KEY")

	cfg := &Config{}
	statuses := CheckAPIKeys(cfg)

	if len(statuses) != 1 {
		t.Fatalf("CheckAPIKeys: got %d statuses, want 1", len(statuses))
	}
	s := statuses[0]
	if s.IsSet {
		t.Errorf("Key %q should not be set", s.Name)
	}
	if s.Valid {
		t.Errorf("Key %q should not validate when unset", s.Name)
	}
	if s.Source != KeySourceNone {
		t.Errorf("Key %q source: got %q, want %q", s.Name, s.Source, KeySourceNone)
	}
}

func TestCheckAPIKeysFromConfig(t *testing.T) {
	os.Unsetenv("INVESTSIGHT_NEWS_API_KEY")

	cfg := &Config{
		News: NewsConfig{APIKey: "abcdef1234567890abcdef1234567890"},
	}
	statuses := CheckAPIKeys(cfg)

	s := statuses[0]
	if !s.IsSet {
		t.Error("news key should be set")
	}
	if !s.Valid {
		t.Error("news key should validate")
	}
	if s.Source != KeySourceConfig {
		t.Errorf("Source: got %q, want %q", s.Source, KeySourceConfig)
	}
	if s.Masked != "abc...890" {
		t.Errorf("Masked: got %q, want %q", s.Masked, "abc...890")
	}
}

func TestCheckKeySourceDetection(t *testing.T) {
	// No env, no value
	os.Unsetenv("TEST_VAR")
	s := checkKey("Test", "news", "", "TEST_VAR")
	if s.Source != KeySourceNone {
		t.Errorf("empty value: got source %q, want %q", s.Source, KeySourceNone)
	}
	if s.IsSet {
		t.Error("empty value should not be set")
	}

	// Value from config (no env)
	s = checkKey("Test", "news", "config-value-long-enough", "TEST_VAR")
	if s.Source != KeySourceConfig {
		t.Errorf("config value: got source %q, want %q", s.Source, KeySourceConfig)
	}
	if !s.IsSet {
		t.Error("config value should be set")
	}

	// Value from env
	os.Setenv("TEST_VAR", "env-value-long-enough")
	defer os.Unsetenv("TEST_VAR")
	s = checkKey("Test", "news", "env-value-long-enough", "TEST_VAR")
	if s.Source != KeySourceEnv {
		t.Errorf("env value: got source %q, want %q", s.Source, KeySourceEnv)
	}
}

// ── LoadWatchlist ──

func TestLoadWatchlist(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "watchlist.yaml")
	content := []byte(`
tickers:
  - AAPL
  - MSFT
schedule: "0 10 * * 1-5"
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write watchlist: %v", err)
	}

	wl, err := LoadWatchlist(path)
	if err != nil {
		t.Fatalf("LoadWatchlist() error: %v", err)
	}
	if len(wl.Tickers) != 2 || wl.Tickers[0] != "AAPL" {
		t.Errorf("Tickers: got %v", wl.Tickers)
	}
	if wl.Schedule != "0 10 * * 1-5" {
		t.Errorf("Schedule: got %q", wl.Schedule)
	}
	// Unset fields fall back to defaults
	if wl.DaysBack != 7 {
		t.Errorf("DaysBack: got %d, want 7", wl.DaysBack)
	}
	if wl.Period != "annual" {
		t.Errorf("Period: got %q, want %q", wl.Period, "annual")
	}
}

func TestLoadWatchlistDefaultSchedule(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "watchlist.yaml")
	if err := os.WriteFile(path, []byte("tickers: [GOOGL]\n"), 0644); err != nil {
		t.Fatalf("write watchlist: %v", err)
	}

	wl, err := LoadWatchlist(path)
	if err != nil {
		t.Fatalf("LoadWatchlist() error: %v", err)
	}
	if wl.Schedule != DefaultWatchlistSchedule {
		t.Errorf("Schedule: got %q, want default %q", wl.Schedule, DefaultWatchlistSchedule)
	}
}

func TestLoadWatchlistEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "watchlist.yaml")
	if err := os.WriteFile(path, []byte("tickers: []\n"), 0644); err != nil {
		t.Fatalf("write watchlist: %v", err)
	}

	if _, err := LoadWatchlist(path); err == nil {
		t.Error("LoadWatchlist() should reject a watchlist without tickers")
	}
}

func TestLoadWatchlistNotFound(t *testing.T) {
	if _, err := LoadWatchlist("/nonexistent/watchlist.yaml"); err == nil {
		t.Error("LoadWatchlist() with nonexistent path should return error")
	}
}

// ── homeDir ──

func TestHomeDirReturnsNonEmpty(t *testing.T) {
	h := homeDir()
	if h == "" {
		t.Error("homeDir() should not return empty string")
	}
}

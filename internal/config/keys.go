package config

import (
	"os"
	"regexp"
)

// APIKeySource represents where an API key comes from.
type APIKeySource string

const (
	KeySourceEnv    APIKeySource = "env"
	KeySourceConfig APIKeySource = "config"
	KeySourceNone   APIKeySource = "none"
)

// Key format patterns per provider. Providers without an entry fall
// back to a conservative minimum-length check.
var keyPatterns = map[string]*regexp.Regexp{
	"news":          regexp.MustCompile(`^[a-zA-Z0-9]{32}$`),
	"alpha_vantage": regexp.MustCompile(`^[a-zA-Z0-9]{16}$`),
}

var defaultKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9]{16,}$`)

// ValidateAPIKey reports whether key looks like a real credential for
// keyType. Placeholder values copied from a template env file never
// validate.
func ValidateAPIKey(key, keyType string) bool {
	if key == "" || key == "your_"+keyType+"_api_key_here" {
		return false
	}
	pattern, ok := keyPatterns[keyType]
	if !ok {
		pattern = defaultKeyPattern
	}
	return pattern.MatchString(key)
}

// KeyStatus represents the status of an API key.
type KeyStatus struct {
	Name   string       `json:"name"`
	Source APIKeySource `json:"source"`
	IsSet  bool         `json:"is_set"`
	Valid  bool         `json:"valid"`
	Masked string       `json:"masked,omitempty"` // e.g., "abc...xyz"
}

// CheckAPIKeys returns the status of every credentialed provider.
func CheckAPIKeys(cfg *Config) []KeyStatus {
	return []KeyStatus{
		checkKey("NewsAPI Key", "news", cfg.News.APIKey, "INVESTSIGHT_NEWS_API_KEY"),
	}
}

// checkKey reports whether a key is set, where it came from, and
// whether its format passes validation.
func checkKey(name, keyType, value, envVar string) KeyStatus {
	status := KeyStatus{
		Name:  name,
		IsSet: value != "",
		Valid: ValidateAPIKey(value, keyType),
	}

	if value != "" {
		if os.Getenv(envVar) != "" {
			status.Source = KeySourceEnv
		} else {
			status.Source = KeySourceConfig
		}
		status.Masked = maskKey(value)
	} else {
		status.Source = KeySourceNone
	}

	return status
}

// maskKey masks an API key for display, showing only first 3 and last
// 3 chars.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:3] + "..." + key[len(key)-3:]
}

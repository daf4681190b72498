package shared

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvAPIKey     = "YOUTUBE_API_KEY"
	EnvOAuthToken = "YOUTUBE_OAUTH_TOKEN"
	EnvMock       = "TUNESTREAM_MOCK"
)

// LoadDotEnv loads variables from the given .env files (default ".env") into the process environment.
//
// Missing files are not an error; existing environment variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// ApplyEnv overrides YouTube credentials in config with environment variables when set.
func ApplyEnv(config *Config) {
	if v := os.Getenv(EnvAPIKey); v != "" {
		config.YouTube.APIKey = v
	}
	if v := os.Getenv(EnvOAuthToken); v != "" {
		config.YouTube.OAuthToken = v
	}
	switch os.Getenv(EnvMock) {
	case "1", "true", "yes":
		config.YouTube.Mock = true
	}
}

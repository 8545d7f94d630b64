package config

import (
	"fmt"
	"os"
)

// Config carries the credentials and endpoint for a client. The SDK
// itself never reads the environment; this package exists for callers
// that want the conventional variables.
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
}

// Load reads OBLIEN_CLIENT_ID and OBLIEN_CLIENT_SECRET, both required,
// and OBLIEN_BASE_URL with the production endpoint as fallback.
func Load() (*Config, error) {
	clientID, err := requireEnv("OBLIEN_CLIENT_ID")
	if err != nil {
		return nil, err
	}
	clientSecret, err := requireEnv("OBLIEN_CLIENT_SECRET")
	if err != nil {
		return nil, err
	}

	return &Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		BaseURL:      getEnv("OBLIEN_BASE_URL", "https://api.oblien.com"),
	}, nil
}

func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("environment variable %s is required but not set", key)
	}
	return value, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

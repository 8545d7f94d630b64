package config

import (
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Setenv("OBLIEN_CLIENT_ID", "id")
	t.Setenv("OBLIEN_CLIENT_SECRET", "secret")
	t.Setenv("OBLIEN_BASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ClientID != "id" || cfg.ClientSecret != "secret" {
		t.Errorf("unexpected credentials: %+v", cfg)
	}
	if cfg.BaseURL != "https://api.oblien.com" {
		t.Errorf("expected default base URL, got %q", cfg.BaseURL)
	}
}

func TestLoadMissingCredentials(t *testing.T) {
	t.Setenv("OBLIEN_CLIENT_ID", "id")
	t.Setenv("OBLIEN_CLIENT_SECRET", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected an error for missing secret")
	}
	if !strings.Contains(err.Error(), "OBLIEN_CLIENT_SECRET") {
		t.Errorf("expected the variable name in the error, got %q", err.Error())
	}
}

func TestLoadBaseURLOverride(t *testing.T) {
	t.Setenv("OBLIEN_CLIENT_ID", "id")
	t.Setenv("OBLIEN_CLIENT_SECRET", "secret")
	t.Setenv("OBLIEN_BASE_URL", "http://localhost:9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://localhost:9090" {
		t.Errorf("expected override, got %q", cfg.BaseURL)
	}
}

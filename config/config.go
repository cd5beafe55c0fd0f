package config

import (
	"os"
	"strconv"
	"strings"
)

// PlaceholderBackendURL is the value shipped in .env.example. A resolved
// backend URL still equal to it means the deployment was never configured.
const PlaceholderBackendURL = "https://your-project.example.com/api"

// Mode selects which branch the place fetcher and idea generator take.
type Mode string

const (
	// ModeMock uses only the local seed dataset and in-memory storage.
	// No network calls to third parties are made.
	ModeMock Mode = "mock"
	// ModeLive routes searches and idea generation through the backend
	// proxies.
	ModeLive Mode = "live"
)

// AppConfig holds everything resolved from the environment at startup.
type AppConfig struct {
	Port string

	// ProxyBaseURL is where the pipeline finds the places/ideas proxies,
	// e.g. "https://datespark.example.com/api". Trailing slash stripped.
	ProxyBaseURL string
	Offline      bool

	// Server-side secrets for the proxy surface.
	GooglePlacesAPIKey string
	OpenAIAPIKey       string
	OpenAIModel        string
	OpenAIBaseURL      string

	// Fallback coordinate for the location provider.
	DefaultLat         float64
	DefaultLng         float64
	HasDefaultLocation bool
}

// Load reads the full configuration from the environment. Call once at
// startup, after godotenv has run.
func Load() *AppConfig {
	cfg := &AppConfig{
		Port:               getenvDefault("PORT", "8080"),
		ProxyBaseURL:       strings.TrimRight(strings.TrimSpace(os.Getenv("PROXY_BASE_URL")), "/"),
		Offline:            parseBoolEnv("OFFLINE_MODE"),
		GooglePlacesAPIKey: os.Getenv("GOOGLE_PLACES_API_KEY"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        getenvDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL:      os.Getenv("OPENAI_BASE_URL"),
	}

	latStr, lngStr := os.Getenv("DEFAULT_LAT"), os.Getenv("DEFAULT_LNG")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr == nil && lngErr == nil {
			cfg.DefaultLat, cfg.DefaultLng = lat, lng
			cfg.HasDefaultLocation = true
		}
	}

	return cfg
}

// Mode resolves the operating mode. Explicit offline wins; an unset or
// still-placeholder backend URL also means mock.
func (c *AppConfig) Mode() Mode {
	if c.Offline || !c.backendURLConfigured() {
		return ModeMock
	}
	return ModeLive
}

func (c *AppConfig) backendURLConfigured() bool {
	return c.ProxyBaseURL != "" &&
		c.ProxyBaseURL != PlaceholderBackendURL &&
		!strings.Contains(c.ProxyBaseURL, "your-project")
}

// ConfigStatus is the health report surfaced to clients.
type ConfigStatus struct {
	OK      bool     `json:"ok"`
	Message string   `json:"message"`
	Issues  []string `json:"issues"`
}

// Status reports configuration health. Explicit offline is a valid,
// intentional state and always healthy. Server-held secrets cannot be
// verified from here, so the message says so instead of guessing.
func (c *AppConfig) Status() ConfigStatus {
	if c.Offline {
		return ConfigStatus{
			OK:      true,
			Message: "Offline mode: using local sample data, no backend required.",
			Issues:  []string{},
		}
	}

	issues := []string{}
	if c.ProxyBaseURL == "" {
		issues = append(issues, "backend URL is not set (PROXY_BASE_URL)")
	} else if !c.backendURLConfigured() {
		issues = append(issues, "backend URL is still the placeholder value")
	}

	if len(issues) > 0 {
		return ConfigStatus{
			OK:      false,
			Message: "Backend not configured; searches fall back to local sample data.",
			Issues:  issues,
		}
	}

	return ConfigStatus{
		OK:      true,
		Message: "Backend configured. Server-held API keys cannot be verified from here.",
		Issues:  issues,
	}
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolEnv(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

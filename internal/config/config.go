// Package config provides centralized configuration for the bridge smoke check.
// It loads configuration from CLI flags and environment variables, validates
// required fields, and provides sensible defaults matching a local
// Mattermost + Element + homeserver stack.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hanthor/bridgecheck/internal/logutil"
)

// TargetMode selects how the opposite-system identity is resolved in the
// federated client: a direct message to a bridged ghost user, or a message
// into a relayed channel. The bridge convention differs per deployment, so
// this is an explicit choice rather than a guess.
type TargetMode string

const (
	TargetModeDM    TargetMode = "dm"
	TargetModeRelay TargetMode = "relay"
)

// Config holds all scenario configuration.
type Config struct {
	// Endpoints
	AdminURL      string // team-chat admin console
	ClientURL     string // federated chat web client
	HomeserverURL string // homeserver the client registers against

	// Cross-system target
	TargetIdentity string // opposite-system identity to open a chat with
	TargetMode     TargetMode

	// Message under test
	Message string

	// Admin console first-run account and team
	AdminEmail    string
	AdminUsername string
	AdminPassword string
	TeamName      string
	TeamSlug      string

	// Federated client registration
	ClientPassword string

	// Timeouts
	NavTimeout    time.Duration // initial navigations and first-run waits
	ActionTimeout time.Duration // per-action default for fills and clicks
	VerifyTimeout time.Duration // final wait for the message on the admin page

	// Runtime flags
	Headless  bool
	Preflight bool // probe endpoint reachability before launching a browser
}

// ValidationError represents a configuration validation error with multiple issues.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Flags holds parsed CLI flag values. Zero-value strings mean "not set".
type Flags struct {
	AdminURL       string
	ClientURL      string
	HomeserverURL  string
	TargetIdentity string
	TargetMode     string
	Message        string
	Headful        bool
	NoPreflight    bool
}

// ParseFlags parses CLI flags and returns them. Call before LoadConfig.
func ParseFlags() Flags {
	var f Flags
	flag.StringVar(&f.AdminURL, "admin-url", "", "Admin console URL (default http://localhost:8065, overrides ADMIN_URL)")
	flag.StringVar(&f.ClientURL, "client-url", "", "Federated client URL (default http://localhost:8080, overrides CLIENT_URL)")
	flag.StringVar(&f.HomeserverURL, "homeserver-url", "", "Homeserver URL the client registers against (default http://localhost:8008, overrides HOMESERVER_URL)")
	flag.StringVar(&f.TargetIdentity, "target", "", "Opposite-system identity to open a chat with (overrides TARGET_IDENTITY)")
	flag.StringVar(&f.TargetMode, "target-mode", "", "Target resolution mode: dm or relay (overrides TARGET_MODE)")
	flag.StringVar(&f.Message, "message", "", "Message text to send and verify (overrides MESSAGE)")
	flag.BoolVar(&f.Headful, "headful", false, "Run the browser with a visible window for debugging")
	flag.BoolVar(&f.NoPreflight, "no-preflight", false, "Skip the HTTP reachability probe before launching the browser")
	flag.Parse()
	return f
}

// LoadConfig loads configuration from environment variables and CLI flag values.
// Non-empty flag values override the corresponding env vars.
func LoadConfig(f Flags) (*Config, error) {
	cfg := &Config{}

	cfg.AdminURL = getEnvOrDefault("ADMIN_URL", "http://localhost:8065")
	if f.AdminURL != "" {
		cfg.AdminURL = f.AdminURL
	}
	cfg.ClientURL = getEnvOrDefault("CLIENT_URL", "http://localhost:8080")
	if f.ClientURL != "" {
		cfg.ClientURL = f.ClientURL
	}
	cfg.HomeserverURL = getEnvOrDefault("HOMESERVER_URL", "http://localhost:8008")
	if f.HomeserverURL != "" {
		cfg.HomeserverURL = f.HomeserverURL
	}

	cfg.TargetIdentity = getEnvOrDefault("TARGET_IDENTITY", "@mattermost_sysadmin:localhost")
	if f.TargetIdentity != "" {
		cfg.TargetIdentity = f.TargetIdentity
	}
	cfg.TargetMode = TargetMode(getEnvOrDefault("TARGET_MODE", string(TargetModeDM)))
	if f.TargetMode != "" {
		cfg.TargetMode = TargetMode(f.TargetMode)
	}

	cfg.Message = getEnvOrDefault("MESSAGE", "Hello from Matrix!")
	if f.Message != "" {
		cfg.Message = f.Message
	}

	cfg.AdminEmail = getEnvOrDefault("ADMIN_EMAIL", "admin@example.com")
	cfg.AdminUsername = getEnvOrDefault("ADMIN_USERNAME", "sysadmin")
	cfg.AdminPassword = getEnvOrDefault("ADMIN_PASSWORD", "Sys@dmin123")
	cfg.TeamName = getEnvOrDefault("TEAM_NAME", "Test Team")
	cfg.TeamSlug = getEnvOrDefault("TEAM_SLUG", "test-team")
	cfg.ClientPassword = getEnvOrDefault("CLIENT_PASSWORD", "password123")

	cfg.NavTimeout = parseDurationOrDefault("NAV_TIMEOUT", 60*time.Second)
	cfg.ActionTimeout = parseDurationOrDefault("ACTION_TIMEOUT", 30*time.Second)
	cfg.VerifyTimeout = parseDurationOrDefault("VERIFY_TIMEOUT", 30*time.Second)

	cfg.Headless = !f.Headful
	cfg.Preflight = !f.NoPreflight

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []string

	for _, endpoint := range []struct {
		name  string
		value string
	}{
		{"ADMIN_URL", c.AdminURL},
		{"CLIENT_URL", c.ClientURL},
		{"HOMESERVER_URL", c.HomeserverURL},
	} {
		if endpoint.value == "" {
			errs = append(errs, endpoint.name+" is required")
			continue
		}
		parsed, err := url.Parse(endpoint.value)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			errs = append(errs, fmt.Sprintf("%s must be an absolute URL, got %q", endpoint.name, endpoint.value))
		}
	}

	if strings.TrimSpace(c.TargetIdentity) == "" {
		errs = append(errs, "TARGET_IDENTITY is required")
	}
	if c.TargetMode != TargetModeDM && c.TargetMode != TargetModeRelay {
		errs = append(errs, fmt.Sprintf("TARGET_MODE must be %q or %q, got %q", TargetModeDM, TargetModeRelay, c.TargetMode))
	}
	if strings.TrimSpace(c.Message) == "" {
		errs = append(errs, "MESSAGE is required")
	}

	if c.AdminEmail == "" {
		errs = append(errs, "ADMIN_EMAIL is required")
	}
	if c.AdminUsername == "" {
		errs = append(errs, "ADMIN_USERNAME is required")
	}
	if c.AdminPassword == "" {
		errs = append(errs, "ADMIN_PASSWORD is required")
	}
	if c.ClientPassword == "" {
		errs = append(errs, "CLIENT_PASSWORD is required")
	}
	if c.TeamName == "" {
		errs = append(errs, "TEAM_NAME is required")
	}
	if c.TeamSlug == "" {
		errs = append(errs, "TEAM_SLUG is required")
	}

	if c.NavTimeout <= 0 {
		errs = append(errs, "NAV_TIMEOUT must be positive")
	}
	if c.ActionTimeout <= 0 {
		errs = append(errs, "ACTION_TIMEOUT must be positive")
	}
	if c.VerifyTimeout <= 0 {
		errs = append(errs, "VERIFY_TIMEOUT must be positive")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// PrintStartupSummary prints a human-readable summary of the configuration to stderr.
// Credential fields are redacted.
func (c *Config) PrintStartupSummary() {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "bridgecheck starting...")
	fmt.Fprintf(os.Stderr, "  Admin:      %s\n", c.AdminURL)
	fmt.Fprintf(os.Stderr, "  Client:     %s\n", c.ClientURL)
	fmt.Fprintf(os.Stderr, "  Homeserver: %s\n", c.HomeserverURL)
	fmt.Fprintf(os.Stderr, "  Target:     %s (%s)\n", c.TargetIdentity, c.TargetMode)
	fmt.Fprintf(os.Stderr, "  Message:    %s\n", logutil.TruncateForLog(c.Message, 80))
	fmt.Fprintf(os.Stderr, "  Admin user: %s <%s> password=%s\n",
		c.AdminUsername, c.AdminEmail, logutil.RedactValue("admin_password", c.AdminPassword))
	if c.Headless {
		fmt.Fprintln(os.Stderr, "  Browser:    headless Chromium")
	} else {
		fmt.Fprintln(os.Stderr, "  Browser:    headful Chromium (--headful)")
	}
	if !c.Preflight {
		fmt.Fprintln(os.Stderr, "  Preflight:  disabled (--no-preflight)")
	}
	fmt.Fprintln(os.Stderr, "")
}

// Helper functions for parsing environment variables

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// MustLoadConfig loads configuration and panics if validation fails.
// Use this in main() when the process should fail fast on bad config.
func MustLoadConfig(f Flags) *Config {
	cfg, err := LoadConfig(f)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			panic(fmt.Sprintf("Configuration validation failed:\n  - %s", strings.Join(validationErr.Errors, "\n  - ")))
		}
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}
	return cfg
}

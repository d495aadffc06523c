package config

import (
	"strings"
	"testing"
	"time"

	"pgregory.net/rapid"
)

func validTestConfig() Config {
	return Config{
		AdminURL:       "http://localhost:8065",
		ClientURL:      "http://localhost:8080",
		HomeserverURL:  "http://localhost:8008",
		TargetIdentity: "@mattermost_sysadmin:localhost",
		TargetMode:     TargetModeDM,
		Message:        "Hello from Matrix!",
		AdminEmail:     "admin@example.com",
		AdminUsername:  "sysadmin",
		AdminPassword:  "Sys@dmin123",
		TeamName:       "Test Team",
		TeamSlug:       "test-team",
		ClientPassword: "password123",
		NavTimeout:     60 * time.Second,
		ActionTimeout:  30 * time.Second,
		VerifyTimeout:  30 * time.Second,
	}
}

func TestValidate_DefaultsPass(t *testing.T) {
	t.Parallel()
	cfg := validTestConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got error: %v", err)
	}
}

func TestValidate_RejectsMissingEndpoints(t *testing.T) {
	t.Parallel()
	cfg := validTestConfig()
	cfg.AdminURL = ""
	cfg.ClientURL = "not a url"
	cfg.HomeserverURL = "/relative/only"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for bad endpoints")
	}
	msg := err.Error()
	for _, expected := range []string{"ADMIN_URL", "CLIENT_URL", "HOMESERVER_URL"} {
		if !strings.Contains(msg, expected) {
			t.Fatalf("expected validation error to mention %q, got: %v", expected, err)
		}
	}
}

func TestValidate_RejectsUnknownTargetMode(t *testing.T) {
	t.Parallel()
	cfg := validTestConfig()
	cfg.TargetMode = TargetMode("broadcast")

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for unknown target mode")
	}
	if !strings.Contains(err.Error(), "TARGET_MODE") {
		t.Fatalf("expected TARGET_MODE in error, got: %v", err)
	}
}

func TestValidate_RejectsEmptyCredentialsAndMessage(t *testing.T) {
	t.Parallel()
	cfg := validTestConfig()
	cfg.AdminPassword = ""
	cfg.ClientPassword = ""
	cfg.Message = "   "

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, expected := range []string{"ADMIN_PASSWORD", "CLIENT_PASSWORD", "MESSAGE"} {
		if !strings.Contains(msg, expected) {
			t.Fatalf("expected validation error to mention %q, got: %v", expected, err)
		}
	}
}

func testValidate_RejectsNonPositiveTimeouts(t *rapid.T) {
	cfg := validTestConfig()

	cfg.NavTimeout = time.Duration(rapid.Int64Range(-int64(time.Minute), 0).Draw(t, "nav"))
	cfg.ActionTimeout = time.Duration(rapid.Int64Range(-int64(time.Minute), 0).Draw(t, "action"))
	cfg.VerifyTimeout = time.Duration(rapid.Int64Range(-int64(time.Minute), 0).Draw(t, "verify"))

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for non-positive timeouts")
	}
	msg := err.Error()
	for _, token := range []string{"NAV_TIMEOUT", "ACTION_TIMEOUT", "VERIFY_TIMEOUT"} {
		if !strings.Contains(msg, token) {
			t.Fatalf("expected timeout error mentioning %q, got: %v", token, err)
		}
	}
}

func TestValidate_RejectsNonPositiveTimeouts(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testValidate_RejectsNonPositiveTimeouts)
}

func TestLoadConfig_FlagOverridesEnv(t *testing.T) {
	t.Setenv("ADMIN_URL", "http://env-admin:8065")
	t.Setenv("TARGET_IDENTITY", "@env_target:localhost")
	t.Setenv("TARGET_MODE", "relay")

	cfg, err := LoadConfig(Flags{
		AdminURL: "http://flag-admin:8065",
		Message:  "flag message",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AdminURL != "http://flag-admin:8065" {
		t.Errorf("flag should override env, got %s", cfg.AdminURL)
	}
	if cfg.TargetIdentity != "@env_target:localhost" {
		t.Errorf("env should apply when flag unset, got %s", cfg.TargetIdentity)
	}
	if cfg.TargetMode != TargetModeRelay {
		t.Errorf("expected relay mode from env, got %s", cfg.TargetMode)
	}
	if cfg.Message != "flag message" {
		t.Errorf("expected flag message, got %q", cfg.Message)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(Flags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AdminURL != "http://localhost:8065" {
		t.Errorf("unexpected default admin URL: %s", cfg.AdminURL)
	}
	if cfg.ClientURL != "http://localhost:8080" {
		t.Errorf("unexpected default client URL: %s", cfg.ClientURL)
	}
	if cfg.HomeserverURL != "http://localhost:8008" {
		t.Errorf("unexpected default homeserver URL: %s", cfg.HomeserverURL)
	}
	if cfg.TargetIdentity != "@mattermost_sysadmin:localhost" {
		t.Errorf("unexpected default target: %s", cfg.TargetIdentity)
	}
	if cfg.Message != "Hello from Matrix!" {
		t.Errorf("unexpected default message: %q", cfg.Message)
	}
	if cfg.NavTimeout != 60*time.Second {
		t.Errorf("unexpected default nav timeout: %v", cfg.NavTimeout)
	}
	if !cfg.Headless || !cfg.Preflight {
		t.Error("expected headless and preflight by default")
	}
}

func TestLoadConfig_EnvTimeouts(t *testing.T) {
	t.Setenv("NAV_TIMEOUT", "90s")
	t.Setenv("VERIFY_TIMEOUT", "bogus")

	cfg, err := LoadConfig(Flags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.NavTimeout != 90*time.Second {
		t.Errorf("expected 90s nav timeout, got %v", cfg.NavTimeout)
	}
	if cfg.VerifyTimeout != 30*time.Second {
		t.Errorf("expected default verify timeout on parse failure, got %v", cfg.VerifyTimeout)
	}
}

package logutil

import "testing"

func TestIsSensitiveLogField(t *testing.T) {
	sensitive := []string{"password", "admin_password", "Client-Password", "accessToken", "api_secret", "session-cookie", "credentials"}
	for _, key := range sensitive {
		if !IsSensitiveLogField(key) {
			t.Errorf("expected %q to be sensitive", key)
		}
	}

	plain := []string{"username", "admin_url", "team_name", "message", "target_identity"}
	for _, key := range plain {
		if IsSensitiveLogField(key) {
			t.Errorf("expected %q to be plain", key)
		}
	}
}

func TestRedactValue(t *testing.T) {
	if got := RedactValue("client_password", "password123"); got != "[REDACTED]" {
		t.Errorf("expected redaction, got %q", got)
	}
	if got := RedactValue("username", "user_1700000000"); got != "user_1700000000" {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestTruncateForLog(t *testing.T) {
	if got := TruncateForLog("  hello\nworld  ", 0); got != "hello\\nworld" {
		t.Errorf("unexpected normalization: %q", got)
	}
	if got := TruncateForLog("abcdefgh", 4); got != "abcd... [truncated]" {
		t.Errorf("unexpected truncation: %q", got)
	}
	if got := TruncateForLog("", 10); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}

// Package browser provides a hermetic Playwright fixture for the scenario
// runner: one httptest server hosting a fake admin console, a fake federated
// client, and an in-memory bridge relaying between them. The fakes render
// only the UI surface the runner touches; their selectors mirror the real
// applications.
package browser

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/hanthor/bridgecheck/internal/browser"
	"github.com/hanthor/bridgecheck/internal/config"
)

const (
	// Keep browser waits short; the fakes respond immediately.
	maxTimeout = 5 * time.Second
)

// TestEnv hosts the fake admin console, federated client, and bridge.
type TestEnv struct {
	Server *httptest.Server

	mu            sync.Mutex
	initialized   bool
	adminEmail    string
	adminUsername string
	teamName      string
	teamSlug      string
	registrations map[string]registration
	chatTargets   []string
	messages      []string
	dropMessages  bool
}

type registration struct {
	Password   string
	Homeserver string
}

// SetupTestEnv creates the fake applications on a fresh test server.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	env := &TestEnv{
		registrations: make(map[string]registration),
	}
	mux := http.NewServeMux()
	env.registerAdminRoutes(mux)
	env.registerClientRoutes(mux)
	env.registerBridgeRoutes(mux)
	env.Server = httptest.NewServer(mux)
	t.Cleanup(env.Server.Close)
	return env
}

// AdminURL returns the fake admin console base URL.
func (env *TestEnv) AdminURL() string { return env.Server.URL + "/admin/" }

// ClientURL returns the fake federated client base URL.
func (env *TestEnv) ClientURL() string { return env.Server.URL + "/client/" }

// Config returns a scenario configuration pointed at the fake applications.
func (env *TestEnv) Config() *config.Config {
	return &config.Config{
		AdminURL:       env.AdminURL(),
		ClientURL:      env.ClientURL(),
		HomeserverURL:  env.Server.URL + "/homeserver",
		TargetIdentity: "@mattermost_sysadmin:localhost",
		TargetMode:     config.TargetModeDM,
		Message:        "Hello from Matrix!",
		AdminEmail:     "admin@example.com",
		AdminUsername:  "sysadmin",
		AdminPassword:  "Sys@dmin123",
		TeamName:       "Test Team",
		TeamSlug:       "test-team",
		ClientPassword: "password123",
		NavTimeout:     maxTimeout,
		ActionTimeout:  maxTimeout,
		VerifyTimeout:  maxTimeout,
	}
}

// Initialized reports whether the fake admin console finished first-run setup.
func (env *TestEnv) Initialized() bool {
	env.mu.Lock()
	defer env.mu.Unlock()
	return env.initialized
}

// AdminAccount returns the email, username, team name, and team slug recorded
// during first-run setup.
func (env *TestEnv) AdminAccount() (email, username, teamName, teamSlug string) {
	env.mu.Lock()
	defer env.mu.Unlock()
	return env.adminEmail, env.adminUsername, env.teamName, env.teamSlug
}

// Registrations returns the client accounts registered so far.
func (env *TestEnv) Registrations() map[string]registration {
	env.mu.Lock()
	defer env.mu.Unlock()
	out := make(map[string]registration, len(env.registrations))
	for k, v := range env.registrations {
		out[k] = v
	}
	return out
}

// ChatTargets returns the identities chats were started with.
func (env *TestEnv) ChatTargets() []string {
	env.mu.Lock()
	defer env.mu.Unlock()
	return append([]string(nil), env.chatTargets...)
}

// Messages returns the messages the bridge relayed.
func (env *TestEnv) Messages() []string {
	env.mu.Lock()
	defer env.mu.Unlock()
	return append([]string(nil), env.messages...)
}

// DropMessages makes the bridge silently discard sent messages, simulating a
// dead relay: the send succeeds in the client but nothing ever reaches the
// admin console.
func (env *TestEnv) DropMessages() {
	env.mu.Lock()
	defer env.mu.Unlock()
	env.dropMessages = true
}

// LaunchSession starts a headless browser session sized for the fake apps.
// Skips the test when Playwright is not installed on the host.
func LaunchSession(t *testing.T, cfg *config.Config) *browser.Session {
	t.Helper()

	session, err := browser.Launch(browser.Options{
		Headless:      true,
		ActionTimeout: cfg.ActionTimeout,
		NavTimeout:    cfg.NavTimeout,
	})
	if err != nil {
		t.Skip("Playwright not available:", err)
	}
	t.Cleanup(func() {
		if err := session.Close(); err != nil {
			t.Logf("session close: %v", err)
		}
	})
	return session
}

// WaitForNextSecond blocks until the wall clock enters a new second, so a
// following run derives a different timestamp username.
func WaitForNextSecond() {
	start := time.Now().Unix()
	for time.Now().Unix() == start {
		time.Sleep(25 * time.Millisecond)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// End-to-end tests for the scenario runner against the hermetic fakes.
//
// Prerequisites:
// - Install Playwright browsers: go run github.com/playwright-community/playwright-go/cmd/playwright install chromium
// - Run with: go test -v ./tests/browser/...
package browser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hanthor/bridgecheck/internal/errs"
	"github.com/hanthor/bridgecheck/internal/obs"
	"github.com/hanthor/bridgecheck/internal/scenario"
)

func TestScenario_FirstRunEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	env := SetupTestEnv(t)
	cfg := env.Config()
	session := LaunchSession(t, cfg)

	runner := scenario.New(cfg, session)
	ctx := obs.WithRunID(context.Background(), obs.NewRunID())
	require.NoError(t, runner.Run(ctx), "first run against a fresh console must pass")

	// Admin console went through first-run setup with the configured account.
	require.True(t, env.Initialized(), "console must be initialized after the run")
	email, username, teamName, teamSlug := env.AdminAccount()
	require.Equal(t, cfg.AdminEmail, email)
	require.Equal(t, cfg.AdminUsername, username)
	require.Equal(t, cfg.TeamName, teamName)
	require.Equal(t, cfg.TeamSlug, teamSlug)

	// Client registered a timestamp-derived account against the configured homeserver.
	regs := env.Registrations()
	require.Contains(t, regs, runner.Username())
	require.Equal(t, cfg.HomeserverURL, regs[runner.Username()].Homeserver,
		"registration must use the homeserver edited into the client UI")
	require.Equal(t, cfg.ClientPassword, regs[runner.Username()].Password)

	// Chat targeted the opposite-system identity and the message was relayed.
	require.Equal(t, []string{cfg.TargetIdentity}, env.ChatTargets())
	require.Equal(t, []string{cfg.Message}, env.Messages())
}

func TestScenario_RerunToleratesInitializedConsole(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	env := SetupTestEnv(t)
	cfg := env.Config()

	first := scenario.New(cfg, LaunchSession(t, cfg))
	require.NoError(t, first.Run(context.Background()), "first run must pass")
	require.True(t, env.Initialized())

	// A later second gives the second run a distinct username.
	WaitForNextSecond()

	second := scenario.New(cfg, LaunchSession(t, cfg))
	require.NoError(t, second.Run(context.Background()),
		"second run against the already-initialized console must pass, not crash on admin setup")

	require.NotEqual(t, first.Username(), second.Username(),
		"runs in different seconds must register distinct usernames")
	require.Len(t, env.Registrations(), 2)
	require.Equal(t, []string{cfg.Message, cfg.Message}, env.Messages())
}

func TestScenario_DeadBridgeFailsVerification(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	env := SetupTestEnv(t)
	env.DropMessages()
	cfg := env.Config()
	cfg.VerifyTimeout = 2 * time.Second
	session := LaunchSession(t, cfg)

	err := scenario.New(cfg, session).Run(context.Background())
	require.Error(t, err, "verification must fail when the bridge drops the message")
	require.Equal(t, errs.Verification, errs.CodeOf(err))

	// The message was sent and then discarded; it never reached the console.
	require.Empty(t, env.Messages())
}

func TestScenario_UnreachableAdminFailsWithinNavTimeout(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	env := SetupTestEnv(t)
	cfg := env.Config()
	cfg.AdminURL = "http://127.0.0.1:1/" // nothing listens here
	cfg.NavTimeout = 3 * time.Second
	session := LaunchSession(t, cfg)

	start := time.Now()
	err := scenario.New(cfg, session).Run(context.Background())
	elapsed := time.Since(start)

	require.Error(t, err)
	require.Equal(t, errs.AdminBootstrap, errs.CodeOf(err))
	require.Less(t, elapsed, 30*time.Second, "unreachable console must fail via the navigation timeout, not hang")
}

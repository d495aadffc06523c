// Package scenario drives the cross-system smoke scenario: bootstrap the
// admin console and the federated client in one browser session, send a
// message from the federated side, and verify it surfaces in the admin
// console via the external bridge.
//
// The flow is strictly sequential with no retries: the first failing step
// aborts the run. The only tolerated condition is an admin console that is
// already initialized, which is detected explicitly rather than inferred
// from a swallowed error.
package scenario

import (
	"context"
	"log/slog"

	"github.com/playwright-community/playwright-go"

	"github.com/hanthor/bridgecheck/internal/browser"
	"github.com/hanthor/bridgecheck/internal/config"
	"github.com/hanthor/bridgecheck/internal/errs"
	"github.com/hanthor/bridgecheck/internal/obs"
)

// Runner executes the fixed scenario against one browser session.
type Runner struct {
	cfg     *config.Config
	session *browser.Session

	adminPage  playwright.Page
	clientPage playwright.Page
	username   string
}

// New creates a Runner. The caller owns the session and its cleanup.
func New(cfg *config.Config, session *browser.Session) *Runner {
	return &Runner{cfg: cfg, session: session}
}

// Username returns the generated client username after a run. Empty before
// client bootstrap has completed.
func (r *Runner) Username() string {
	return r.username
}

type step struct {
	name string
	code errs.Code
	run  func(ctx context.Context) error
}

func (r *Runner) steps() []step {
	return []step{
		{name: "admin_bootstrap", code: errs.AdminBootstrap, run: r.adminBootstrap},
		{name: "client_bootstrap", code: errs.ClientBootstrap, run: r.clientBootstrap},
		{name: "message_send", code: errs.MessageSend, run: r.sendMessage},
		{name: "verify", code: errs.Verification, run: r.verify},
	}
}

// Run executes the scenario steps in order, aborting on the first failure.
// The run leaves residual state behind in both target systems: a client
// account always, plus an admin account and team when the console was in
// first-run state. Nothing is rolled back.
func (r *Runner) Run(ctx context.Context) error {
	log := obs.From(ctx).With("pkg", "scenario")
	log.Warn("run creates accounts and messages in the target systems and does not roll them back")
	return runSteps(ctx, log, r.steps())
}

// runSteps enforces strict sequencing: a step never starts before the
// previous one returned nil.
func runSteps(ctx context.Context, log *slog.Logger, steps []step) error {
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return errs.Wrap(s.code, "run cancelled before step "+s.name, err)
		}
		log.Info("step starting", "step", s.name)
		if err := s.run(ctx); err != nil {
			log.Error("step failed", "step", s.name, "error", err)
			if errs.CodeOf(err) != errs.Internal {
				return err
			}
			return errs.Wrap(s.code, "step "+s.name+" failed", err)
		}
		log.Info("step finished", "step", s.name)
	}
	return nil
}

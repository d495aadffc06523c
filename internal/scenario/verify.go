package scenario

import (
	"context"
	"fmt"

	"github.com/hanthor/bridgecheck/internal/browser"
	"github.com/hanthor/bridgecheck/internal/obs"
)

// verify switches focus back to the admin console page and blocks until an
// element containing the sent message text becomes visible. Presence within
// the verify timeout is scenario success; absence is failure.
func (r *Runner) verify(ctx context.Context) error {
	log := obs.From(ctx).With("step", "verify")

	if err := r.adminPage.BringToFront(); err != nil {
		return fmt.Errorf("focus admin page: %w", err)
	}

	selector := fmt.Sprintf("div:has-text(%q)", r.cfg.Message)
	log.Info("waiting for message in admin console", "timeout", r.cfg.VerifyTimeout.String())
	if _, err := browser.WaitVisible(r.adminPage, selector, r.cfg.VerifyTimeout); err != nil {
		return err
	}

	log.Info("SUCCESS: message visible in admin console")
	return nil
}

package scenario

import (
	"context"
	"strings"

	"github.com/hanthor/bridgecheck/internal/browser"
	"github.com/hanthor/bridgecheck/internal/obs"
)

// Selectors for the admin console UI.
const (
	selAdminEmailInput    = "input[id='input_email']"
	selAdminSignupEmail   = "input[pluginid='email']"
	selAdminSignupUser    = "input[pluginid='username']"
	selAdminSignupPass    = "input[pluginid='password']"
	selAdminCreateAccount = "button[id='create_account']"
	selAdminCreateTeam    = "a[id='create_team']"
	selAdminTeamName      = "input[id='team_name']"
	selAdminTeamURL       = "input[id='team_url']"
	selAdminSubmit        = "button[type='submit']"
	selAdminFinish        = "button:has-text('Finish')"

	// The console redirects to a signup_email route when no account exists yet.
	adminFirstRunURLMarker = "signup_email"
)

// adminBootstrap opens the admin console and, when the console is in
// first-run state, creates the admin account and walks the create-team
// wizard. An already-initialized console is detected by URL pattern and
// skipped; any failure inside an attempted setup is fatal.
func (r *Runner) adminBootstrap(ctx context.Context) error {
	log := obs.From(ctx).With("step", "admin_bootstrap")

	page, err := r.session.NewPage()
	if err != nil {
		return err
	}
	r.adminPage = page

	log.Info("opening admin console", "url", r.cfg.AdminURL)
	if err := browser.Goto(page, r.cfg.AdminURL, r.session.NavTimeout()); err != nil {
		return err
	}

	// The console can take a while to come up on first boot, so the initial
	// form wait uses the navigation timeout rather than the action timeout.
	if _, err := browser.WaitVisible(page, selAdminEmailInput, r.session.NavTimeout()); err != nil {
		return err
	}

	if !strings.Contains(page.URL(), adminFirstRunURLMarker) {
		log.Info("admin console already initialized, skipping setup", "url", page.URL())
		return nil
	}

	log.Info("admin console in first-run state, creating account", "username", r.cfg.AdminUsername)
	timeout := r.session.ActionTimeout()
	if err := browser.Fill(page, selAdminSignupEmail, r.cfg.AdminEmail, timeout); err != nil {
		return err
	}
	if err := browser.Fill(page, selAdminSignupUser, r.cfg.AdminUsername, timeout); err != nil {
		return err
	}
	if err := browser.Fill(page, selAdminSignupPass, r.cfg.AdminPassword, timeout); err != nil {
		return err
	}
	if err := browser.Click(page, selAdminCreateAccount, timeout); err != nil {
		return err
	}

	log.Info("creating team", "name", r.cfg.TeamName, "slug", r.cfg.TeamSlug)
	if err := browser.Click(page, selAdminCreateTeam, timeout); err != nil {
		return err
	}
	if err := browser.Fill(page, selAdminTeamName, r.cfg.TeamName, timeout); err != nil {
		return err
	}
	if err := browser.Click(page, selAdminSubmit, timeout); err != nil {
		return err
	}
	if err := browser.Fill(page, selAdminTeamURL, r.cfg.TeamSlug, timeout); err != nil {
		return err
	}
	if err := browser.Click(page, selAdminSubmit, timeout); err != nil {
		return err
	}
	if err := browser.Click(page, selAdminFinish, timeout); err != nil {
		return err
	}

	log.Info("admin console bootstrapped")
	return nil
}

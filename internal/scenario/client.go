package scenario

import (
	"context"
	"time"

	"github.com/hanthor/bridgecheck/internal/browser"
	"github.com/hanthor/bridgecheck/internal/logutil"
	"github.com/hanthor/bridgecheck/internal/obs"
)

// Selectors for the federated client UI.
const (
	selClientCreateAccount   = "a:has-text('Create account')"
	selClientEditHomeserver  = "div[role='button']:has-text('Edit')"
	selClientHomeserverInput = "input[id='homeserver']"
	selClientContinue        = "div[role='button']:has-text('Continue')"
	selClientUsername        = "input[id='username']"
	selClientPassword        = "input[id='password']"
	selClientPasswordConfirm = "input[id='passwordConfirm']"
	selClientRegister        = "div[role='button']:has-text('Register')"
	selClientStartChat       = "div[aria-label='Start chat']"
	selClientTargetInput     = "input[type='text']"
	selClientGo              = "div[role='button']:has-text('Go')"
	selClientComposer        = "div[contenteditable='true']"
)

// clientBootstrap opens the federated client in a second page of the same
// context, points it at the configured homeserver, and registers a fresh
// account under a timestamp-derived username.
func (r *Runner) clientBootstrap(ctx context.Context) error {
	log := obs.From(ctx).With("step", "client_bootstrap")

	page, err := r.session.NewPage()
	if err != nil {
		return err
	}
	r.clientPage = page

	log.Info("opening federated client", "url", r.cfg.ClientURL)
	if err := browser.Goto(page, r.cfg.ClientURL, r.session.NavTimeout()); err != nil {
		return err
	}

	timeout := r.session.ActionTimeout()
	if err := browser.Click(page, selClientCreateAccount, timeout); err != nil {
		return err
	}
	if err := browser.Click(page, selClientEditHomeserver, timeout); err != nil {
		return err
	}
	if err := browser.Fill(page, selClientHomeserverInput, r.cfg.HomeserverURL, timeout); err != nil {
		return err
	}
	if err := browser.Click(page, selClientContinue, timeout); err != nil {
		return err
	}

	r.username = Username(time.Now())
	log.Info("registering client account",
		"username", r.username,
		"homeserver", r.cfg.HomeserverURL,
		"password", logutil.RedactValue("password", r.cfg.ClientPassword))

	if err := browser.Fill(page, selClientUsername, r.username, timeout); err != nil {
		return err
	}
	if err := browser.Fill(page, selClientPassword, r.cfg.ClientPassword, timeout); err != nil {
		return err
	}
	if err := browser.Fill(page, selClientPasswordConfirm, r.cfg.ClientPassword, timeout); err != nil {
		return err
	}
	if err := browser.Click(page, selClientRegister, timeout); err != nil {
		return err
	}

	log.Info("client account registered")
	return nil
}

// sendMessage opens a chat with the resolved opposite-system target and
// submits the configured message through the conversation composer.
func (r *Runner) sendMessage(ctx context.Context) error {
	log := obs.From(ctx).With("step", "message_send")

	target, err := ResolveTarget(r.cfg.TargetMode, r.cfg.TargetIdentity)
	if err != nil {
		return err
	}

	log.Info("starting chat", "target", target, "mode", string(r.cfg.TargetMode))
	timeout := r.session.ActionTimeout()
	page := r.clientPage
	if err := browser.Click(page, selClientStartChat, timeout); err != nil {
		return err
	}
	if err := browser.Fill(page, selClientTargetInput, target, timeout); err != nil {
		return err
	}
	if err := browser.Click(page, selClientGo, timeout); err != nil {
		return err
	}

	log.Info("sending message", "text", logutil.TruncateForLog(r.cfg.Message, 80))
	if err := browser.Fill(page, selClientComposer, r.cfg.Message, timeout); err != nil {
		return err
	}
	if err := browser.Press(page, selClientComposer, "Enter", timeout); err != nil {
		return err
	}

	log.Info("message submitted")
	return nil
}

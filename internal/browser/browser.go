// Package browser wraps Playwright session lifecycle for the scenario runner.
// One Session owns the driver, one Chromium browser, and one browser context;
// Close releases all of them and is safe to call on every exit path.
package browser

import (
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/hanthor/bridgecheck/internal/errs"
)

// Options configures a browser session.
type Options struct {
	Headless      bool
	ActionTimeout time.Duration // default timeout for fills, clicks, and waits
	NavTimeout    time.Duration // default timeout for navigations
}

// Session owns a Playwright driver, a browser process, and one isolated context.
type Session struct {
	opts Options

	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext

	closeOnce sync.Once
	closeErr  error
}

// Launch starts the Playwright driver, launches Chromium, and creates one context.
// Partial failures release whatever was already acquired.
func Launch(opts Options) (*Session, error) {
	if opts.ActionTimeout <= 0 {
		opts.ActionTimeout = 30 * time.Second
	}
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = 60 * time.Second
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, errs.Wrap(errs.Browser, "start playwright driver", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, errs.Wrap(errs.Browser, "launch chromium", err)
	}

	ctx, err := b.NewContext()
	if err != nil {
		_ = b.Close()
		_ = pw.Stop()
		return nil, errs.Wrap(errs.Browser, "create browser context", err)
	}
	ctx.SetDefaultTimeout(float64(opts.ActionTimeout.Milliseconds()))
	ctx.SetDefaultNavigationTimeout(float64(opts.NavTimeout.Milliseconds()))

	return &Session{
		opts:    opts,
		pw:      pw,
		browser: b,
		context: ctx,
	}, nil
}

// NewPage opens a new page in the session's context with default timeouts set.
func (s *Session) NewPage() (playwright.Page, error) {
	page, err := s.context.NewPage()
	if err != nil {
		return nil, errs.Wrap(errs.Browser, "create page", err)
	}
	page.SetDefaultTimeout(float64(s.opts.ActionTimeout.Milliseconds()))
	page.SetDefaultNavigationTimeout(float64(s.opts.NavTimeout.Milliseconds()))
	return page, nil
}

// Close releases the context, browser, and driver. Idempotent.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		var firstErr error
		if s.context != nil {
			if err := s.context.Close(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("close context: %w", err)
			}
		}
		if s.browser != nil {
			if err := s.browser.Close(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("close browser: %w", err)
			}
		}
		if s.pw != nil {
			if err := s.pw.Stop(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("stop playwright driver: %w", err)
			}
		}
		s.closeErr = firstErr
	})
	return s.closeErr
}

// NavTimeout returns the session's navigation timeout.
func (s *Session) NavTimeout() time.Duration {
	return s.opts.NavTimeout
}

// ActionTimeout returns the session's per-action timeout.
func (s *Session) ActionTimeout() time.Duration {
	return s.opts.ActionTimeout
}

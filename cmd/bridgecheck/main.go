// bridgecheck drives one headless browser session through a team-chat admin
// console and a federated chat client to verify that a message sent from the
// federated side surfaces in the admin console via the bridge between them.
//
// Exit code 0 means the message was observed; non-zero codes identify the
// failing step (see internal/errs).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hanthor/bridgecheck/internal/browser"
	"github.com/hanthor/bridgecheck/internal/config"
	"github.com/hanthor/bridgecheck/internal/errs"
	"github.com/hanthor/bridgecheck/internal/obs"
	"github.com/hanthor/bridgecheck/internal/probe"
	"github.com/hanthor/bridgecheck/internal/scenario"
)

func main() {
	flags := config.ParseFlags()
	cfg := config.MustLoadConfig(flags)
	obs.Init()
	cfg.PrintStartupSummary()

	os.Exit(run(cfg))
}

func run(cfg *config.Config) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = obs.WithRunID(ctx, obs.NewRunID())
	log := obs.From(ctx).With("pkg", "main")

	if cfg.Preflight {
		log.Info("probing endpoint reachability")
		endpoints := map[string]string{
			"admin console":    cfg.AdminURL,
			"federated client": cfg.ClientURL,
			"homeserver":       cfg.HomeserverURL,
		}
		if err := probe.Check(ctx, http.DefaultClient, endpoints, probe.DefaultTimeout); err != nil {
			return fail(log, err)
		}
		if err := probe.AdminPing(ctx, http.DefaultClient, cfg.AdminURL, probe.DefaultTimeout); err != nil {
			// The console may still be booting behind a listening port; the
			// scenario's own navigation timeout covers that, so a failing
			// ping is reported but not fatal.
			log.Warn("admin console ping failed, continuing", "error", err)
		}
	}

	session, err := browser.Launch(browser.Options{
		Headless:      cfg.Headless,
		ActionTimeout: cfg.ActionTimeout,
		NavTimeout:    cfg.NavTimeout,
	})
	if err != nil {
		return fail(log, err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Warn("browser session close failed", "error", err)
		}
	}()

	runner := scenario.New(cfg, session)
	if err := runner.Run(ctx); err != nil {
		return fail(log, err)
	}

	log.Info("scenario passed", "message", cfg.Message)
	fmt.Fprintln(os.Stderr, "SUCCESS: message received in admin console")
	return 0
}

func fail(log *slog.Logger, err error) int {
	code := errs.CodeOf(err)
	log.Error("scenario failed", "code", string(code), "error", err)
	fmt.Fprintf(os.Stderr, "FAIL (%s): %v\n", code, err)
	return errs.ExitCode(code)
}

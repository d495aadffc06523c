// Package probe performs HTTP reachability checks before a browser is launched.
// An unreachable endpoint should fail the run in seconds, not after a full
// navigation timeout.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hanthor/bridgecheck/internal/errs"
	"github.com/hanthor/bridgecheck/internal/urlutil"
)

// DefaultTimeout bounds a single reachability request.
const DefaultTimeout = 10 * time.Second

// AdminPingPath is the admin console's unauthenticated liveness endpoint.
const AdminPingPath = "/api/v4/system/ping"

// Check verifies every endpoint answers HTTP within timeout. Any response
// counts as reachable; only connection failures and timeouts are errors.
func Check(ctx context.Context, client *http.Client, endpoints map[string]string, timeout time.Duration) error {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	for name, endpoint := range endpoints {
		if err := checkOne(ctx, client, endpoint, timeout); err != nil {
			return errs.Wrap(errs.Unreachable, fmt.Sprintf("%s endpoint %s is unreachable", name, endpoint), err)
		}
	}
	return nil
}

// AdminPing verifies the admin console's ping endpoint answers. Distinguishes
// "console is up" from merely having something listening on the port.
func AdminPing(ctx context.Context, client *http.Client, adminURL string, timeout time.Duration) error {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	pingURL := urlutil.BuildAbsolute(adminURL, AdminPingPath)
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, pingURL, nil)
	if err != nil {
		return errs.Wrap(errs.InvalidArgument, "build admin ping request", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return errs.Wrap(errs.Unreachable, fmt.Sprintf("admin console ping %s failed", pingURL), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return errs.New(errs.Unreachable, fmt.Sprintf("admin console ping %s returned %d", pingURL, resp.StatusCode))
	}
	return nil
}

func checkOne(ctx context.Context, client *http.Client, endpoint string, timeout time.Duration) error {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

package scenario

import (
	"fmt"
	"strings"

	"github.com/hanthor/bridgecheck/internal/config"
	"github.com/hanthor/bridgecheck/internal/errs"
)

// ResolveTarget validates the opposite-system identity against the configured
// resolution mode and returns the string typed into the start-chat dialog.
// DM mode chats with a bridged ghost user (@...), relay mode posts into a
// bridged room alias (#...). Which one a deployment needs depends on its
// bridge configuration, so this stays an explicit choice.
func ResolveTarget(mode config.TargetMode, identity string) (string, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return "", errs.New(errs.InvalidArgument, "target identity is empty")
	}

	switch mode {
	case config.TargetModeDM:
		if !strings.HasPrefix(identity, "@") {
			return "", errs.New(errs.InvalidArgument,
				fmt.Sprintf("dm target must be a user identity starting with @, got %q", identity))
		}
	case config.TargetModeRelay:
		if !strings.HasPrefix(identity, "#") {
			return "", errs.New(errs.InvalidArgument,
				fmt.Sprintf("relay target must be a room alias starting with #, got %q", identity))
		}
	default:
		return "", errs.New(errs.InvalidArgument, fmt.Sprintf("unknown target mode %q", mode))
	}

	if !strings.Contains(identity, ":") {
		return "", errs.New(errs.InvalidArgument,
			fmt.Sprintf("target identity %q has no server part", identity))
	}
	return identity, nil
}

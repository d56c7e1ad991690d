package main

import (
	"context"
	"errors"

	"github.com/desertthunder/boardsync/internal/services"
	"github.com/desertthunder/boardsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// Status prints the linked identity and the remote account name behind each token.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(ctx); err != nil {
		return err
	}

	identity, err := r.identity(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrMissingCredential) || errors.Is(err, shared.ErrIdentityNotFound) {
			r.writePlain("No linked identity. Run `boardsync auth pinterest` to start.\n")
			return nil
		}
		return err
	}

	r.writePlainHeader("Identity " + identity.ID)
	for _, adapter := range []services.AuthAdapter{r.source, r.destination} {
		token := identity.Token(adapter.Slot())
		if token == "" {
			r.writePlain("%-10s ✗ not connected\n", adapter.Name())
			continue
		}

		name, err := adapter.Profile(ctx, token)
		switch {
		case err == nil:
			r.writePlain("%-10s ✓ %s (%s)\n", adapter.Name(), name, shared.Redact(token))
		case shared.NeedsReauthorization(err):
			r.writePlain("%-10s ✗ token rejected, run `boardsync auth %s`\n", adapter.Name(), adapter.Name())
		default:
			r.logger.Warn("profile lookup failed", "provider", adapter.Name(), "error", err)
			r.writePlain("%-10s ? %v\n", adapter.Name(), err)
		}
	}
	return nil
}

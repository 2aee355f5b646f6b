package prh

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// stageChanges stages every change in the working tree.
// A clean tree is a no-op and issues no staging call.
func stageChanges(
	ctx context.Context,
	cfg Config,
) (Outcome, error) {
	const errCtx = "staging changes"

	slog.Info("staging all changes")

	status, err := cfg.Repo.Status(ctx)
	if err != nil {
		return Failed, fmt.Errorf("%s: %w", errCtx, err)
	}

	if strings.TrimSpace(status) == "" {
		slog.Info("no changes to stage")

		return NoOp, nil
	}

	if err := cfg.Repo.AddAll(ctx); err != nil {
		return Failed, fmt.Errorf("%s: %w", errCtx, err)
	}

	return Succeeded, nil
}

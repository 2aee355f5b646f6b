package prh

import (
	"context"
	"fmt"
	"log/slog"
)

// pushBranch resolves the current branch and pushes it.
// The branch is returned for reuse as the pull request
// head; no push is issued when it cannot be resolved.
func pushBranch(
	ctx context.Context,
	cfg Config,
) (string, Outcome, error) {
	const errCtx = "pushing changes"

	branch, err := cfg.Repo.CurrentBranch(ctx)
	if err != nil {
		return "", Failed, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	if cfg.DryRun {
		slog.Info("dry run: skipping push", "branch", branch)

		return branch, NoOp, nil
	}

	slog.Info("pushing", "branch", branch)

	if err := cfg.Repo.Push(ctx, branch); err != nil {
		return branch, Failed, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return branch, Succeeded, nil
}

package prh

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/byte4ever/prh/gitpr/commitmsg"
)

const commitQuestion = "Enter your commit message:"

// commitChanges asks for a message and commits the
// index. Nothing staged is a no-op that asks nothing.
func commitChanges(
	ctx context.Context,
	cfg Config,
) (Outcome, error) {
	const errCtx = "committing changes"

	staged, err := cfg.Repo.StagedChanges(ctx)
	if err != nil {
		return Failed, fmt.Errorf("%s: %w", errCtx, err)
	}

	if strings.TrimSpace(staged) == "" {
		slog.Info("no staged changes to commit")

		return NoOp, nil
	}

	if _, err := fmt.Fprint(
		cfg.Out, commitmsg.Menu(),
	); err != nil {
		return Failed, fmt.Errorf("%s: %w", errCtx, err)
	}

	msg, err := cfg.Input.Ask(ctx, commitQuestion)
	if err != nil {
		return Failed, fmt.Errorf("%s: %w", errCtx, err)
	}

	if strings.TrimSpace(msg) == "" {
		return Failed, fmt.Errorf(
			"%s: %w", errCtx, ErrEmptyCommitMessage,
		)
	}

	if !commitmsg.Conventional(msg) {
		slog.Warn(
			"commit message does not start with a "+
				"suggested type",
			"subject", commitmsg.Subject(msg),
		)
	}

	slog.Info("committing", "message", msg)

	if err := cfg.Repo.Commit(ctx, msg); err != nil {
		return Failed, fmt.Errorf("%s: %w", errCtx, err)
	}

	return Succeeded, nil
}

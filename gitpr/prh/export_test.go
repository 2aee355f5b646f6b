package prh

import "context"

// Exported wrappers for testing the individual stages
// from the prh_test package. Defaults are applied the
// same way Run applies them.

// StageChangesForTest exposes stageChanges.
func StageChangesForTest(
	ctx context.Context,
	cfg Config,
) (Outcome, error) {
	return stageChanges(ctx, cfg.withDefaults())
}

// CommitChangesForTest exposes commitChanges.
func CommitChangesForTest(
	ctx context.Context,
	cfg Config,
) (Outcome, error) {
	return commitChanges(ctx, cfg.withDefaults())
}

// PushBranchForTest exposes pushBranch.
func PushBranchForTest(
	ctx context.Context,
	cfg Config,
) (string, Outcome, error) {
	return pushBranch(ctx, cfg.withDefaults())
}

// PublishPRForTest exposes publishPR with a fresh
// report.
func PublishPRForTest(
	ctx context.Context,
	cfg Config,
	branch string,
) (*Report, Outcome, error) {
	rep := newReport(cfg.DryRun)

	outcome, err := publishPR(
		ctx, cfg.withDefaults(), branch, rep,
	)

	return rep, outcome, err
}

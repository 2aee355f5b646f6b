package prh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/byte4ever/prh/gitpr/git"
	"github.com/byte4ever/prh/gitpr/prompt"
)

var (
	// ErrEmptyCommitMessage is returned when the user
	// enters no commit message.
	ErrEmptyCommitMessage = errors.New(
		"commit message cannot be empty",
	)

	// ErrEmptyToken is returned when no credential is
	// found in the environment and none is entered.
	ErrEmptyToken = errors.New(
		"access token cannot be empty",
	)
)

// Repository is the set of git operations the pipeline
// runs. *git.Repo implements it.
type Repository interface {
	Status(ctx context.Context) (string, error)
	AddAll(ctx context.Context) error
	StagedChanges(ctx context.Context) (string, error)
	Commit(ctx context.Context, message string) error
	CurrentBranch(ctx context.Context) (string, error)
	Push(ctx context.Context, branch string) error
	RemoteURL(ctx context.Context) (string, error)
}

// Config holds everything a pipeline run needs.
type Config struct {
	// Repo is the working copy to operate on.
	Repo Repository

	// Input answers the commit message, token, title
	// and body questions.
	Input prompt.Input

	// Out receives the commit type menu. Nil uses
	// os.Stdout.
	Out io.Writer

	// NewProvider builds the forge client once the
	// remote and token are known.
	NewProvider git.ProviderFactory

	// ForgeHost is the only remote host pull requests
	// are opened on. Empty means "github.com".
	ForgeHost string

	// TokenEnv names the environment variable holding
	// the forge credential.
	TokenEnv string

	// LookupEnv reads the environment. Nil uses
	// os.LookupEnv.
	LookupEnv func(key string) (string, bool)

	// FallbackBase is the pull request base used when
	// the default branch lookup fails.
	FallbackBase string

	// TitleTemplate is expanded when the title answer
	// is empty.
	TitleTemplate string

	// BodyTemplate is expanded when the body answer is
	// empty.
	BodyTemplate string

	// DryRun skips push and pull request creation.
	DryRun bool
}

func (c *Config) withDefaults() Config {
	cfg := *c

	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	if cfg.LookupEnv == nil {
		cfg.LookupEnv = os.LookupEnv
	}

	if cfg.ForgeHost == "" {
		cfg.ForgeHost = "github.com"
	}

	if cfg.TokenEnv == "" {
		cfg.TokenEnv = "GITHUB_TOKEN"
	}

	if cfg.FallbackBase == "" {
		cfg.FallbackBase = "main"
	}

	if cfg.TitleTemplate == "" {
		cfg.TitleTemplate = "{branch}"
	}

	return cfg
}

func (c *Config) validate() error {
	switch {
	case c.Repo == nil:
		return errors.New("repo must be set")
	case c.Input == nil:
		return errors.New("input must be set")
	case c.NewProvider == nil:
		return errors.New("provider factory must be set")
	}

	return nil
}

// Run executes the pipeline: stage all changes, commit
// them, push the current branch and open a pull request
// against the default branch. Stages run strictly in
// order and the first failure stops the run. The
// returned Report is never nil; the error is the cause
// of the failing stage.
func Run(ctx context.Context, c Config) (*Report, error) {
	const errCtx = "running pull request pipeline"

	cfg := c.withDefaults()
	rep := newReport(cfg.DryRun)

	if err := cfg.validate(); err != nil {
		return rep, fmt.Errorf("%s: %w", errCtx, err)
	}

	// Step 1: Stage working tree changes.
	outcome, err := stageChanges(ctx, cfg)
	if done := rep.finish(StageAdd, outcome, err); done {
		return rep, fmt.Errorf("%s: %w", errCtx, err)
	}

	// Step 2: Commit staged changes.
	outcome, err = commitChanges(ctx, cfg)
	if done := rep.finish(StageCommit, outcome, err); done {
		return rep, fmt.Errorf("%s: %w", errCtx, err)
	}

	// Step 3: Push the current branch.
	branch, outcome, err := pushBranch(ctx, cfg)
	rep.Branch = branch

	if done := rep.finish(StagePush, outcome, err); done {
		return rep, fmt.Errorf("%s: %w", errCtx, err)
	}

	// Step 4: Open the pull request.
	outcome, err = publishPR(ctx, cfg, branch, rep)
	if done := rep.finish(StagePublish, outcome, err); done {
		return rep, fmt.Errorf("%s: %w", errCtx, err)
	}

	return rep, nil
}

// finish records a stage result and reports whether the
// pipeline must stop.
func (r *Report) finish(
	stage string,
	outcome Outcome,
	err error,
) bool {
	if err != nil {
		outcome = Failed
	}

	r.record(stage, outcome, err)

	if outcome == Failed {
		slog.Error(
			"stage failed",
			"stage", stage,
			"error", err,
		)

		return true
	}

	slog.Debug(
		"stage finished",
		"stage", stage,
		"outcome", outcome.String(),
	)

	return false
}

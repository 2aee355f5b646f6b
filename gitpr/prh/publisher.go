package prh

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/byte4ever/prh/gitpr/git"
	"github.com/byte4ever/prh/stamper"
)

const (
	titleQuestion = "Enter Pull Request title:"
	bodyQuestion  = "Enter Pull Request body (optional):"
)

// publishPR opens a pull request from branch into the
// repository's default branch. Details are written to
// rep as they become known.
func publishPR(
	ctx context.Context,
	cfg Config,
	branch string,
	rep *Report,
) (Outcome, error) {
	const errCtx = "publishing pull request"

	// The remote URL is read once.
	rawURL, err := cfg.Repo.RemoteURL(ctx)
	if err != nil {
		return Failed, fmt.Errorf("%s: %w", errCtx, err)
	}

	remote, err := git.ParseRemote(rawURL)
	if err != nil {
		return Failed, fmt.Errorf("%s: %w", errCtx, err)
	}

	if !strings.EqualFold(remote.Host, cfg.ForgeHost) {
		return Failed, fmt.Errorf(
			"%s: %q: host %q is not %q: %w",
			errCtx, rawURL, remote.Host, cfg.ForgeHost,
			git.ErrUnsupportedRemote,
		)
	}

	rep.Repository = remote.String()

	token, err := resolveToken(ctx, cfg)
	if err != nil {
		return Failed, fmt.Errorf("%s: %w", errCtx, err)
	}

	provider, err := cfg.NewProvider(remote, token)
	if err != nil {
		return Failed, fmt.Errorf("%s: %w", errCtx, err)
	}

	base := resolveBase(ctx, cfg, provider)
	rep.Base = base

	pr, err := askPullRequest(ctx, cfg, remote, branch, base)
	if err != nil {
		return Failed, fmt.Errorf("%s: %w", errCtx, err)
	}

	if cfg.DryRun {
		slog.Info(
			"dry run: skipping pull request creation",
			"repository", remote.String(),
			"head", pr.Head,
			"base", pr.Base,
			"title", pr.Title,
		)

		return NoOp, nil
	}

	slog.Info(
		"creating pull request",
		"repository", remote.String(),
		"head", pr.Head,
		"base", pr.Base,
	)

	url, err := provider.CreatePR(ctx, pr)
	if err != nil {
		return Failed, fmt.Errorf("%s: %w", errCtx, err)
	}

	rep.PullRequestURL = url

	slog.Info("pull request created", "url", url)

	return Succeeded, nil
}

// resolveToken reads the credential from the
// environment, asking for it when unset.
func resolveToken(
	ctx context.Context,
	cfg Config,
) (string, error) {
	const errCtx = "resolving access token"

	if tok, ok := cfg.LookupEnv(cfg.TokenEnv); ok {
		if tok = strings.TrimSpace(tok); tok != "" {
			return tok, nil
		}
	}

	tok, err := cfg.Input.Ask(
		ctx,
		cfg.TokenEnv+" environment variable not set. "+
			"Please enter your GitHub Personal Access Token:",
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	tok = strings.TrimSpace(tok)
	if tok == "" {
		return "", fmt.Errorf("%s: %w", errCtx, ErrEmptyToken)
	}

	return tok, nil
}

// resolveBase returns the repository's default branch,
// or the fallback base when the lookup fails.
func resolveBase(
	ctx context.Context,
	cfg Config,
	provider git.GitProvider,
) string {
	base, err := provider.DefaultBranch(ctx)
	if err != nil {
		slog.Warn(
			"cannot determine default branch",
			"error", err,
			"fallback", cfg.FallbackBase,
		)

		return cfg.FallbackBase
	}

	slog.Info("determined base branch", "base", base)

	return base
}

// askPullRequest asks for title and body, expanding the
// configured templates for empty answers.
func askPullRequest(
	ctx context.Context,
	cfg Config,
	remote git.Remote,
	branch string,
	base string,
) (git.PullRequest, error) {
	vars := map[string]string{
		"branch": branch,
		"base":   base,
		"owner":  remote.Owner,
		"repo":   remote.Repo,
	}

	title, err := cfg.Input.Ask(ctx, titleQuestion)
	if err != nil {
		return git.PullRequest{}, err
	}

	if strings.TrimSpace(title) == "" {
		title = stamper.Stamp(cfg.TitleTemplate, vars)
	}

	if strings.TrimSpace(title) == "" {
		title = branch
	}

	body, err := cfg.Input.Ask(ctx, bodyQuestion)
	if err != nil {
		return git.PullRequest{}, err
	}

	if strings.TrimSpace(body) == "" {
		body = stamper.Stamp(cfg.BodyTemplate, vars)
	}

	return git.PullRequest{
		Title: title,
		Body:  body,
		Head:  branch,
		Base:  base,
	}, nil
}

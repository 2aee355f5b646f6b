package git

import (
	"context"
	"errors"
	"fmt"
	oe "os/exec"
	"strings"

	"github.com/byte4ever/prh/gitpr/exec"
)

// DefaultRemote is the remote used when none is given.
const DefaultRemote = "origin"

var (
	// ErrDetachedHead is returned by CurrentBranch when
	// HEAD does not point at a branch.
	ErrDetachedHead = errors.New("detached HEAD")

	// ErrRemoteNotSet is returned by RemoteURL when the
	// remote has no configured URL.
	ErrRemoteNotSet = errors.New("remote url not set")
)

// Repo is a local git working copy.
type Repo struct {
	// Dir is the working copy location. Empty means
	// the current directory.
	Dir string
	// RemoteName is the remote pushed to and read
	// from.
	RemoteName string

	runner exec.Runner
}

// Open returns a Repo for dir that runs git through
// runner. A nil runner uses exec.Default and an empty
// remoteName uses DefaultRemote.
func Open(
	dir string,
	remoteName string,
	runner exec.Runner,
) *Repo {
	if runner == nil {
		runner = exec.Default
	}

	if remoteName == "" {
		remoteName = DefaultRemote
	}

	return &Repo{
		Dir:        dir,
		RemoteName: remoteName,
		runner:     runner,
	}
}

// Status returns the porcelain working-tree status.
// An empty string means there is nothing to stage.
func (r *Repo) Status(ctx context.Context) (string, error) {
	const errCtx = "reading working tree status"

	out, err := r.git(ctx, "status", "--porcelain")
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return out, nil
}

// AddAll stages every modified and untracked path.
func (r *Repo) AddAll(ctx context.Context) error {
	const errCtx = "staging changes"

	if _, err := r.git(ctx, "add", "."); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// StagedChanges lists the paths staged for the next
// commit, one per line. An empty string means the
// index matches HEAD.
func (r *Repo) StagedChanges(
	ctx context.Context,
) (string, error) {
	const errCtx = "reading staged changes"

	out, err := r.git(
		ctx, "diff", "--cached", "--name-only",
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return out, nil
}

// Commit records the index with the given message.
func (r *Repo) Commit(
	ctx context.Context,
	message string,
) error {
	const errCtx = "committing changes"

	if _, err := r.git(
		ctx, "commit", "-m", message,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// CurrentBranch returns the checked-out branch name.
func (r *Repo) CurrentBranch(
	ctx context.Context,
) (string, error) {
	const errCtx = "resolving current branch"

	out, err := r.git(
		ctx, "rev-parse", "--abbrev-ref", "HEAD",
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	branch := strings.TrimSpace(out)

	switch branch {
	case "":
		return "", fmt.Errorf(
			"%s: empty branch name", errCtx,
		)
	case "HEAD":
		return "", fmt.Errorf(
			"%s: %w", errCtx, ErrDetachedHead,
		)
	default:
		return branch, nil
	}
}

// Push pushes branch to the same name on the remote.
// It never forces and never sets an upstream.
func (r *Repo) Push(
	ctx context.Context,
	branch string,
) error {
	const errCtx = "pushing branch"

	if _, err := r.git(
		ctx, "push", r.RemoteName, branch,
	); err != nil {
		return fmt.Errorf(
			"%s %s to %s: %w",
			errCtx, branch, r.RemoteName, err,
		)
	}

	return nil
}

// RemoteURL returns the configured URL of the remote.
func (r *Repo) RemoteURL(
	ctx context.Context,
) (string, error) {
	const errCtx = "reading remote url"

	out, err := r.git(
		ctx,
		"config", "--get",
		"remote."+r.RemoteName+".url",
	)
	if err != nil {
		// git config exits 1 when the key is absent.
		var exitErr *oe.ExitError
		if errors.As(err, &exitErr) &&
			exitErr.ExitCode() == 1 {
			return "", fmt.Errorf(
				"%s: %s: %w",
				errCtx, r.RemoteName, ErrRemoteNotSet,
			)
		}

		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	url := strings.TrimSpace(out)
	if url == "" {
		return "", fmt.Errorf(
			"%s: %s: %w",
			errCtx, r.RemoteName, ErrRemoteNotSet,
		)
	}

	return url, nil
}

func (r *Repo) git(
	ctx context.Context,
	arg ...string,
) (string, error) {
	return r.runner.Run(ctx, r.Dir, "git", arg...)
}

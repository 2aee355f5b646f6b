package git

import "context"

// Pattern: Strategy -- swap the forge client without
// changing the publishing logic.

// PullRequest is a pull request creation request.
type PullRequest struct {
	Title string
	Body  string
	// Head is the branch holding the changes.
	Head string
	// Base is the branch the changes merge into.
	Base string
}

// GitProvider talks to the hosting forge of one
// repository.
type GitProvider interface {
	// DefaultBranch returns the repository's default
	// branch.
	DefaultBranch(ctx context.Context) (string, error)
	// CreatePR opens a pull request and returns its
	// web URL.
	CreatePR(
		ctx context.Context,
		pr PullRequest,
	) (string, error)
}

// ProviderFactory builds a GitProvider for remote,
// authenticated with token.
type ProviderFactory func(
	remote Remote,
	token string,
) (GitProvider, error)

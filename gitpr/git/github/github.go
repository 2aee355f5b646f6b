package github

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/byte4ever/prh/gitpr/git"
)

// Config holds the settings needed to create a GitHub
// pull request provider.
type Config struct {
	// RepoOwner is the GitHub user or organisation
	// that owns the repository.
	RepoOwner string
	// Repo is the repository name (without owner).
	Repo string
	// AccessToken is a personal access token or
	// GitHub App token used for authentication.
	AccessToken string
	// EnterpriseHost is an optional GitHub Enterprise
	// hostname (e.g. "git.corp.example.com"). Leave
	// empty for github.com.
	EnterpriseHost string
	// APIURL overrides the REST API base URL
	// (e.g. "http://127.0.0.1:8080/"). Mutually
	// exclusive with EnterpriseHost.
	APIURL string
	// HTTPClient is the transport wrapped with token
	// authentication. Nil uses http.DefaultClient.
	HTTPClient *http.Client
}

// DefaultHost is the host of github.com remotes.
const DefaultHost = "github.com"

// Host returns the remote host served by the API cfg
// points at: the enterprise host when set, otherwise
// DefaultHost.
func (c Config) Host() string {
	if c.EnterpriseHost != "" {
		return c.EnterpriseHost
	}

	return DefaultHost
}

// APIError is a non-success response from GitHub.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Body is the raw response body.
	Body string
}

func (e *APIError) Error() string {
	return fmt.Sprintf(
		"unexpected status %d: %s",
		e.StatusCode, strings.TrimSpace(e.Body),
	)
}

// Provider talks to the GitHub repository named in its
// Config.
//
// Pattern: Strategy -- implements git.GitProvider.
type Provider struct {
	client    *gh.Client
	repoOwner string
	repo      string
}

// NewProvider validates cfg and returns a Provider
// ready to query the repository and create pull
// requests.
func NewProvider(cfg Config) (*Provider, error) {
	const errCtx = "creating github provider"

	if cfg.RepoOwner == "" {
		return nil, fmt.Errorf(
			"%s: repo owner must be set", errCtx,
		)
	}

	if cfg.Repo == "" {
		return nil, fmt.Errorf(
			"%s: repo must be set", errCtx,
		)
	}

	if cfg.AccessToken == "" {
		return nil, fmt.Errorf(
			"%s: access token must be set", errCtx,
		)
	}

	if cfg.EnterpriseHost != "" && cfg.APIURL != "" {
		return nil, fmt.Errorf(
			"%s: enterprise host and api url are "+
				"mutually exclusive",
			errCtx,
		)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}

	ctx := context.WithValue(
		context.Background(),
		oauth2.HTTPClient,
		&http.Client{
			Transport: &acceptTransport{
				base: hc.Transport,
			},
			CheckRedirect: hc.CheckRedirect,
			Jar:           hc.Jar,
			Timeout:       hc.Timeout,
		},
	)

	// TokenType "token" yields the
	// "Authorization: token <credential>" header.
	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.AccessToken,
		TokenType:   "token",
	})

	client := gh.NewClient(oauth2.NewClient(ctx, ts))

	switch {
	case cfg.EnterpriseHost != "":
		baseURL := "https://" +
			cfg.EnterpriseHost + "/api/v3/"
		uploadURL := "https://" +
			cfg.EnterpriseHost + "/api/uploads/"

		var err error

		client, err = client.WithEnterpriseURLs(
			baseURL, uploadURL,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: enterprise urls: %w",
				errCtx, err,
			)
		}

	case cfg.APIURL != "":
		raw := cfg.APIURL
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}

		base, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: api url: %w", errCtx, err,
			)
		}

		client.BaseURL = base
	}

	return &Provider{
		client:    client,
		repoOwner: cfg.RepoOwner,
		repo:      cfg.Repo,
	}, nil
}

// Factory returns a git.ProviderFactory that fills
// owner, repository and token from its arguments and
// everything else from base.
func Factory(base Config) git.ProviderFactory {
	return func(
		remote git.Remote,
		token string,
	) (git.GitProvider, error) {
		cfg := base
		cfg.RepoOwner = remote.Owner
		cfg.Repo = remote.Repo
		cfg.AccessToken = token

		p, err := NewProvider(cfg)
		if err != nil {
			return nil, err
		}

		return p, nil
	}
}

// DefaultBranch returns the repository's default
// branch as reported by GET /repos/{owner}/{repo}.
func (p *Provider) DefaultBranch(
	ctx context.Context,
) (string, error) {
	const errCtx = "getting github default branch"

	repo, resp, err := p.client.Repositories.Get(
		ctx, p.repoOwner, p.repo,
	)
	if err != nil {
		return "", fmt.Errorf(
			"%s: %w", errCtx, responseError(resp, err),
		)
	}

	branch := repo.GetDefaultBranch()
	if branch == "" {
		return "", fmt.Errorf(
			"%s: response has no default_branch",
			errCtx,
		)
	}

	return branch, nil
}

// CreatePR creates a pull request from pr.Head into
// pr.Base and returns its web URL. Only 201 Created
// counts as success.
func (p *Provider) CreatePR(
	ctx context.Context,
	pr git.PullRequest,
) (string, error) {
	const errCtx = "creating github pull request"

	npr := &gh.NewPullRequest{
		Title: &pr.Title,
		Head:  &pr.Head,
		Base:  &pr.Base,
		Body:  &pr.Body,
	}

	ctx, raw := withRawBody(ctx)

	created, resp, err := p.client.PullRequests.Create(
		ctx, p.repoOwner, p.repo, npr,
	)
	if err != nil {
		return "", fmt.Errorf(
			"%s: %w", errCtx, responseError(resp, err),
		)
	}

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf(
			"%s: %w", errCtx, &APIError{
				StatusCode: resp.StatusCode,
				Body:       string(*raw),
			},
		)
	}

	slog.Info(
		"created pull request",
		"url", created.GetHTMLURL(),
	)

	return created.GetHTMLURL(), nil
}

// responseError turns a failed go-github call into an
// *APIError when a response was received, so callers
// see status and body.
func responseError(resp *gh.Response, err error) error {
	if resp == nil || resp.Response == nil {
		return err
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Body:       readBody(resp),
	}
}

// readBody returns the response body, which go-github
// re-populates after decoding error responses.
func readBody(resp *gh.Response) string {
	if resp.Body == nil {
		return ""
	}

	defer resp.Body.Close() //nolint:errcheck

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn(
			"cannot read response body",
			"error", err,
		)

		return ""
	}

	return string(rb)
}

// mediaTypeV3 is sent on every request, overriding the
// preview types go-github adds to some endpoints.
const mediaTypeV3 = "application/vnd.github.v3+json"

type rawBodyKey struct{}

// withRawBody returns a context under which
// acceptTransport copies the response body into the
// returned slice before go-github decodes it.
func withRawBody(
	ctx context.Context,
) (context.Context, *[]byte) {
	raw := new([]byte)

	return context.WithValue(ctx, rawBodyKey{}, raw), raw
}

type acceptTransport struct {
	base http.RoundTripper
}

func (t *acceptTransport) RoundTrip(
	req *http.Request,
) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	r2 := req.Clone(req.Context())
	r2.Header.Set("Accept", mediaTypeV3)

	resp, err := base.RoundTrip(r2)
	if err != nil {
		return resp, err
	}

	raw, ok := req.Context().Value(rawBodyKey{}).(*[]byte)
	if !ok || resp.Body == nil {
		return resp, nil
	}

	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	*raw = data
	resp.Body = io.NopCloser(bytes.NewReader(data))

	return resp, nil
}

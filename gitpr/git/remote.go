package git

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrUnsupportedRemote is returned by ParseRemote for
// URLs in neither the HTTPS nor the SSH form.
var ErrUnsupportedRemote = errors.New(
	"unsupported remote url format",
)

// scpLike matches "[user@]host:path" where path does
// not start with a slash.
var scpLike = regexp.MustCompile(
	`^(?:[\w.~-]+@)?([\w.-]+):([^/].*)$`,
)

// Remote identifies a hosted repository.
type Remote struct {
	// Host is the forge hostname (e.g. "github.com").
	Host string
	// Owner is the user or organisation.
	Owner string
	// Repo is the repository name without ".git".
	Repo string
}

// String returns "owner/repo".
func (r Remote) String() string {
	return r.Owner + "/" + r.Repo
}

// ParseRemote extracts host, owner and repository name
// from a remote URL. Accepted forms:
//
//	https://github.com/acme/widgets.git
//	ssh://git@github.com/acme/widgets.git
//	git@github.com:acme/widgets.git
//
// Owner and repository are the last two path segments.
func ParseRemote(raw string) (Remote, error) {
	const errCtx = "parsing remote url"

	s := strings.TrimSpace(raw)

	var host, path string

	switch {
	case strings.HasPrefix(s, "https://"),
		strings.HasPrefix(s, "http://"),
		strings.HasPrefix(s, "ssh://"):
		u, err := url.Parse(s)
		if err != nil {
			return Remote{}, fmt.Errorf(
				"%s: %q: %w: %w",
				errCtx, raw, ErrUnsupportedRemote, err,
			)
		}

		host = u.Hostname()
		path = u.Path

	case !strings.Contains(s, "://") &&
		scpLike.MatchString(s):
		m := scpLike.FindStringSubmatch(s)
		host = m[1]
		path = m[2]

	default:
		return Remote{}, fmt.Errorf(
			"%s: %q: %w",
			errCtx, raw, ErrUnsupportedRemote,
		)
	}

	segs := strings.Split(strings.Trim(path, "/"), "/")
	if host == "" || len(segs) < 2 {
		return Remote{}, fmt.Errorf(
			"%s: %q: %w",
			errCtx, raw, ErrUnsupportedRemote,
		)
	}

	owner := segs[len(segs)-2]
	repo := strings.TrimSuffix(segs[len(segs)-1], ".git")

	if owner == "" || repo == "" {
		return Remote{}, fmt.Errorf(
			"%s: %q: %w",
			errCtx, raw, ErrUnsupportedRemote,
		)
	}

	return Remote{
		Host:  host,
		Owner: owner,
		Repo:  repo,
	}, nil
}

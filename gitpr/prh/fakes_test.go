package prh_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/byte4ever/prh/gitpr/git"
	"github.com/byte4ever/prh/gitpr/prompt"
)

// reply is a scripted git result.
type reply struct {
	out string
	err error
}

// fakeGit is an exec.Runner answering git commands
// from a script keyed by the joined arguments. Unknown
// commands succeed with no output.
type fakeGit struct {
	mu      sync.Mutex
	replies map[string]reply
	calls   []string
}

func newFakeGit(replies map[string]reply) *fakeGit {
	return &fakeGit{replies: replies}
}

func (f *fakeGit) Run(
	_ context.Context,
	_ string,
	_ string,
	arg ...string,
) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strings.Join(arg, " ")
	f.calls = append(f.calls, key)

	r := f.replies[key]

	return r.out, r.err
}

// count returns how many calls started with prefix.
func (f *fakeGit) count(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0

	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}

	return n
}

func (f *fakeGit) repo() *git.Repo {
	return git.Open("", "origin", f)
}

// fakeProvider is a git.GitProvider with canned
// answers.
type fakeProvider struct {
	defaultBranch string
	defaultErr    error
	url           string
	createErr     error

	lookups int
	created []git.PullRequest
}

func (p *fakeProvider) DefaultBranch(
	context.Context,
) (string, error) {
	p.lookups++

	return p.defaultBranch, p.defaultErr
}

func (p *fakeProvider) CreatePR(
	_ context.Context,
	pr git.PullRequest,
) (string, error) {
	p.created = append(p.created, pr)

	return p.url, p.createErr
}

// factoryCall records the arguments of a provider
// factory call.
type factoryCall struct {
	remote git.Remote
	token  string
}

func (p *fakeProvider) factory(
	calls *[]factoryCall,
) git.ProviderFactory {
	return func(
		remote git.Remote,
		token string,
	) (git.GitProvider, error) {
		*calls = append(*calls, factoryCall{remote, token})

		return p, nil
	}
}

// recordingInput answers from a script and records
// the questions asked.
type recordingInput struct {
	answers   prompt.Input
	questions []string
}

func newInput(answers ...string) *recordingInput {
	return &recordingInput{answers: prompt.Answers(answers...)}
}

func (r *recordingInput) Ask(
	ctx context.Context,
	question string,
) (string, error) {
	r.questions = append(r.questions, question)

	return r.answers.Ask(ctx, question)
}

// env returns a LookupEnv over vars.
func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]

		return v, ok
	}
}

// noInput fails the test when a question is asked.
func noInput(tb testing.TB) prompt.Input {
	tb.Helper()

	return prompt.Func(func(
		_ context.Context,
		question string,
	) (string, error) {
		tb.Errorf("unexpected question %q", question)

		return "", nil
	})
}

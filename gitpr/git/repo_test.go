package git_test

import (
	"context"
	"os"
	oe "os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/prh/gitpr/exec"
	"github.com/byte4ever/prh/gitpr/git"
)

func TestOpen_defaults(t *testing.T) {
	t.Parallel()

	rp := git.Open("/repo", "", nil)

	assert.Equal(t, "/repo", rp.Dir)
	assert.Equal(t, git.DefaultRemote, rp.RemoteName)
}

func TestRepo_Status(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	initGitRepo(t, dir)

	rp := git.Open(dir, "", nil)

	out, err := rp.Status(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)

	writeFile(t, dir, "new.txt", "hello\n")

	out, err = rp.Status(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "new.txt")
}

func TestRepo_Status_not_a_repo(t *testing.T) {
	t.Parallel()

	rp := git.Open(t.TempDir(), "", nil)

	_, err := rp.Status(context.Background())

	assert.ErrorContains(t, err, "reading working tree status")
}

func TestRepo_AddAll_StagedChanges_Commit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	initGitRepo(t, dir)

	rp := git.Open(dir, "", nil)

	staged, err := rp.StagedChanges(ctx)
	require.NoError(t, err)
	assert.Empty(t, staged)

	writeFile(t, dir, "a.txt", "a\n")
	require.NoError(t, rp.AddAll(ctx))

	staged, err = rp.StagedChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a.txt\n", staged)

	require.NoError(t, rp.Commit(ctx, "feat: add a"))

	staged, err = rp.StagedChanges(ctx)
	require.NoError(t, err)
	assert.Empty(t, staged)

	assert.Equal(
		t, "feat: add a",
		strings.TrimSpace(
			gitOut(t, dir, "log", "-1", "--pretty=%B"),
		),
	)
}

func TestRepo_Commit_nothing_staged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	initGitRepo(t, dir)

	rp := git.Open(dir, "", nil)

	err := rp.Commit(context.Background(), "chore: noop")

	assert.ErrorContains(t, err, "committing changes")
}

func TestRepo_CurrentBranch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	initGitRepo(t, dir)
	gitCmd(t, dir, "checkout", "-b", "feature/x")

	rp := git.Open(dir, "", nil)

	branch, err := rp.CurrentBranch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "feature/x", branch)
}

func TestRepo_CurrentBranch_detached(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	initGitRepo(t, dir)
	gitCmd(t, dir, "checkout", "--detach")

	rp := git.Open(dir, "", nil)

	_, err := rp.CurrentBranch(context.Background())

	assert.ErrorIs(t, err, git.ErrDetachedHead)
}

func TestRepo_Push(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bare := t.TempDir()
	ctx := context.Background()

	initGitRepo(t, dir)
	gitCmd(t, bare, "init", "--bare")
	gitCmd(t, dir, "remote", "add", "origin", bare)
	gitCmd(t, dir, "checkout", "-b", "feature/x")

	rp := git.Open(dir, "", nil)

	require.NoError(t, rp.Push(ctx, "feature/x"))

	assert.Contains(
		t,
		gitOut(t, bare, "branch", "--list"),
		"feature/x",
	)
}

func TestRepo_Push_unknown_remote(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	initGitRepo(t, dir)

	rp := git.Open(dir, "", nil)

	err := rp.Push(context.Background(), "main")

	require.ErrorContains(t, err, "pushing branch main to origin")

	// git's own diagnosis is passed through.
	assert.ErrorContains(t, err, "origin")
}

func TestRepo_RemoteURL(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	initGitRepo(t, dir)
	gitCmd(
		t, dir,
		"remote", "add", "upstream",
		"git@github.com:acme/widgets.git",
	)

	rp := git.Open(dir, "upstream", nil)

	url, err := rp.RemoteURL(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "git@github.com:acme/widgets.git", url)
}

func TestRepo_RemoteURL_not_set(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	initGitRepo(t, dir)

	rp := git.Open(dir, "", nil)

	_, err := rp.RemoteURL(context.Background())

	assert.ErrorIs(t, err, git.ErrRemoteNotSet)
}

func TestRepo_uses_runner(t *testing.T) {
	t.Parallel()

	var calls [][]string

	rn := exec.RunnerFunc(
		func(
			_ context.Context,
			dir string,
			name string,
			arg ...string,
		) (string, error) {
			calls = append(
				calls,
				append([]string{dir, name}, arg...),
			)

			return "", nil
		},
	)

	rp := git.Open("/work", "fork", rn)

	require.NoError(t, rp.Push(context.Background(), "dev"))

	assert.Equal(
		t,
		[][]string{{"/work", "git", "push", "fork", "dev"}},
		calls,
	)
}

// initGitRepo creates a git repository with one
// initial commit on main. Hooks are disabled so local
// hook setups do not interfere.
func initGitRepo(tb testing.TB, dir string) {
	tb.Helper()

	cmds := [][]string{
		{"init", "-b", "main"},
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test"},
		{"config", "core.hooksPath", "/dev/null"},
		{"commit", "--allow-empty", "-m", "initial"},
	}

	for _, args := range cmds {
		gitCmd(tb, dir, args...)
	}
}

// gitCmd runs a git command in the given directory.
func gitCmd(tb testing.TB, dir string, args ...string) {
	tb.Helper()

	gitOut(tb, dir, args...)
}

// gitOut runs a git command and returns its output.
func gitOut(
	tb testing.TB,
	dir string,
	args ...string,
) string {
	tb.Helper()

	//nolint:gosec // test helper
	cmd := oe.CommandContext(
		context.Background(), "git", args...,
	)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	if err != nil {
		tb.Fatalf(
			"git %v failed: %s: %v",
			args, string(out), err,
		)
	}

	return string(out)
}

func writeFile(
	tb testing.TB,
	dir string,
	name string,
	content string,
) {
	tb.Helper()

	err := os.WriteFile(
		filepath.Join(dir, name), []byte(content), 0o600,
	)
	require.NoError(tb, err)
}

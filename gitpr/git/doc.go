// Package git wraps the git operations the pull request pipeline needs and
// defines the strategy interface for talking to the hosting forge.
//
// Repo runs git commands in a working copy through an exec.Runner, so tests
// can substitute a recording runner for the real binary. ParseRemote turns a
// remote URL (HTTPS or SSH form) into a Remote holding owner and repository
// name. GitProvider abstracts default-branch lookup and pull request creation;
// the GitHub implementation lives in the github sub-package.
package git

// Package github implements git.GitProvider on top of the GitHub REST API.
//
// Requests authenticate with "Authorization: token <credential>" and accept
// "application/vnd.github.v3+json". The provider looks up a repository's
// default branch and creates pull requests; GitHub Enterprise hosts and
// arbitrary API base URLs are supported through Config.
package github

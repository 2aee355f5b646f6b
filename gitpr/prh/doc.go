// Package prh runs the stage, commit, push and pull request pipeline on a
// local git working copy.
//
// Run executes four stages in order: the change stager, the commit driver,
// the push driver and the pull request publisher. Each stage ends Succeeded,
// NoOp (nothing to do) or Failed; the first failure stops the pipeline. The
// Report returned by Run records every stage outcome along with the branch,
// base and the created pull request URL.
//
// Git, the forge and the console are reached through Repository,
// git.ProviderFactory and prompt.Input so the pipeline can run against
// substitutes in tests.
package prh

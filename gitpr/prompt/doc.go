// Package prompt supplies strings on demand from the user.
//
// Input is the capability the pipeline asks for a commit message, a token or
// a pull request title. Console reads answers line by line from a reader and
// echoes input as typed; Func adapts a function for scripted answers in tests.
package prompt

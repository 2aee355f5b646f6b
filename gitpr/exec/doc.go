// Package exec runs external commands on behalf of the pipeline.
//
// Runner is the capability the rest of the module depends on: run a named
// command in a directory and return its standard output. Ex is the real
// implementation backed by os/exec; tests substitute a RunnerFunc. A failed
// command yields an *Error carrying the captured standard error text.
package exec

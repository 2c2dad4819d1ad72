// Package main provides the ldmark CLI.
package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Version is the ldmark release, overridden at build time with
// -ldflags "-X main.Version=...".
var Version = "0.3.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "ldmark:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError marks err as caused by bad input (unknown type, missing entity,
// invalid document).
func userError(err error) error {
	return &exitError{code: exitUserError, err: err}
}

// exitCode maps err to an exit code. Errors not marked as user errors are
// system errors.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitSysError
}

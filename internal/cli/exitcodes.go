package cli

import "errors"

// Exit codes for tally.
const (
	// ExitSuccess indicates every source loaded and no step failed.
	ExitSuccess = 0

	// ExitBuildFailed indicates the report was produced but the build failed.
	ExitBuildFailed = 1

	// ExitUsage indicates invalid usage, configuration or input.
	ExitUsage = 2
)

// ErrBuildFailed signals a failed build. It is not logged as an error.
var ErrBuildFailed = errors.New("build failed")

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrBuildFailed):
		return ExitBuildFailed
	default:
		return ExitUsage
	}
}

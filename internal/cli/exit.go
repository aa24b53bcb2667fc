package cli

import perr "rewardsched/internal/platform/errors"

// Process exit codes, following sysexits where one fits
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitUsage     = 2  // the request or flags were rejected
	ExitNoInput   = 66 // EX_NOINPUT
	ExitTransient = 75 // EX_TEMPFAIL, running again may succeed
)

// ExitCode maps the error a command returned onto the process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case perr.Retryable(err):
		return ExitTransient
	}
	switch perr.CodeOf(err) {
	case perr.ErrorCodeValidation, perr.ErrorCodeJSON, perr.ErrorCodeUnschedulable:
		return ExitUsage
	case perr.ErrorCodeNotFound:
		return ExitNoInput
	}
	return ExitFailure
}

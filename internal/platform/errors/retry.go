package errors

import (
	"context"
	stderrs "errors"
)

// FromContext maps a canceled or expired context onto ErrorCodeCanceled
// other errors pass through untouched
func FromContext(err error) error {
	if err == nil {
		return nil
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return Wrapf(err, ErrorCodeCanceled, "request canceled")
	}
	return err
}

// Retryable reports whether the same request may succeed on a later attempt
// planning is deterministic, so only interrupted or throttled calls qualify
func Retryable(err error) bool {
	switch CodeOf(err) {
	case ErrorCodeTooManyRequests, ErrorCodeCanceled:
		return true
	}
	return err != nil && stderrs.Is(err, context.DeadlineExceeded)
}

// Package errors carries the scheduler's structured error type
// import it as perr next to the standard library errors package
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies a failure for callers
// the numeric values are part of the wire contract
type ErrorCode uint16

const (
	// ErrorCodeUnknown is anything we did not classify
	ErrorCodeUnknown ErrorCode = 0
	// ErrorCodePanic marks a recovered panic
	ErrorCodePanic ErrorCode = 1
	// ErrorCodeValidation is a malformed field: bad clock, unknown zone, missing id
	ErrorCodeValidation ErrorCode = 2
	// ErrorCodeJSON is a body that does not decode
	ErrorCodeJSON ErrorCode = 3
	// ErrorCodeUnschedulable is well formed settings that leave no day to plan on
	ErrorCodeUnschedulable ErrorCode = 4
	// ErrorCodeNotFound is a missing request file or resource
	ErrorCodeNotFound ErrorCode = 5
	// ErrorCodeTooManyRequests is a client over its rate budget
	ErrorCodeTooManyRequests ErrorCode = 6
	// ErrorCodeCanceled is a request the caller gave up on
	ErrorCodeCanceled ErrorCode = 7
)

var statusByCode = map[ErrorCode]int{
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeJSON:            http.StatusBadRequest,
	ErrorCodeUnschedulable:   http.StatusUnprocessableEntity,
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeTooManyRequests: http.StatusTooManyRequests,
	ErrorCodeCanceled:        http.StatusRequestTimeout,
}

// HTTPStatusCode maps a code onto its response status, 500 for anything unmapped
func HTTPStatusCode(c ErrorCode) int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is a classified failure with an optional offending field and cause
type Error struct {
	code  ErrorCode
	msg   string
	field string
	cause error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

// Unwrap exposes the cause
func (e *Error) Unwrap() error { return e.cause }

// Code returns the classification
func (e *Error) Code() ErrorCode { return e.code }

// Field names the request field at fault, "" when none
func (e *Error) Field() string { return e.field }

// Wire is the serialized form of an error inside the response envelope
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// WireFrom renders any error, foreign errors become Unknown
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// As finds our *Error anywhere in the chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf returns the code of err, Unknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// HTTPStatus maps any error onto a response status
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// Newf builds an error with a formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrapf classifies cause under code
func Wrapf(cause error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), cause: cause}
}

// Validationf rejects the value of field
func Validationf(field, format string, a ...any) error {
	return &Error{code: ErrorCodeValidation, msg: fmt.Sprintf(format, a...), field: field}
}

// JSONErrf rejects a body that does not decode
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// Unschedulablef rejects settings that block every candidate day
func Unschedulablef(field, format string, a ...any) error {
	return &Error{code: ErrorCodeUnschedulable, msg: fmt.Sprintf(format, a...), field: field}
}

// TooManyRequestsf reports an exhausted rate budget
func TooManyRequestsf(format string, a ...any) error {
	return Newf(ErrorCodeTooManyRequests, format, a...)
}

// PanicErrf reports a recovered panic
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

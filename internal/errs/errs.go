// Package errs provides coded errors for scenario failures.
package errs

import "errors"

// Code classifies where a run failed.
type Code string

const (
	InvalidArgument Code = "invalid_argument"
	Unreachable     Code = "unreachable"
	Browser         Code = "browser"
	AdminBootstrap  Code = "admin_bootstrap"
	ClientBootstrap Code = "client_bootstrap"
	MessageSend     Code = "message_send"
	Verification    Code = "verification"
	Internal        Code = "internal"
)

// Error is a coded scenario error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a coded error with message.
func New(code Code, message string) error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a coded error with message and cause.
func Wrap(code Code, message string, cause error) error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     cause,
	}
}

// CodeOf returns the error code, defaulting to internal.
func CodeOf(err error) Code {
	if err == nil {
		return Internal
	}
	var coded *Error
	if errors.As(err, &coded) {
		if coded.Code == "" {
			return Internal
		}
		return coded.Code
	}
	return Internal
}

// ExitCode maps an error code to a process exit code.
func ExitCode(code Code) int {
	switch code {
	case InvalidArgument:
		return 2
	case Unreachable:
		return 3
	case Browser:
		return 4
	case AdminBootstrap:
		return 5
	case ClientBootstrap:
		return 6
	case MessageSend:
		return 7
	case Verification:
		return 8
	default:
		return 1
	}
}

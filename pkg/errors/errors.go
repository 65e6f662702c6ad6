package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds
var (
	ErrRequestFailed = errors.New("request failed")
	ErrRejected      = errors.New("request rejected")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrAuthRequired  = errors.New("authentication required")
	ErrStorage       = errors.New("storage error")
	ErrBadResponse   = errors.New("malformed response")
)

// Error codes
const (
	CodeTransport   = "transport"
	CodeRejected    = "rejected"
	CodeBadResponse = "bad_response"
)

// Error carries an optional machine code and a human-readable message.
type Error struct {
	Code    string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Message == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(message string) error {
	return &Error{
		Message: message,
	}
}

func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: message,
		Err:     err,
	}
}

func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Transport wraps a failure where no response reached the client.
func Transport(err error) error {
	return &Error{
		Code: CodeTransport,
		Err:  fmt.Errorf("%w: %w", ErrRequestFailed, err),
	}
}

// Rejected describes a non-2xx answer. message is what the server said, if anything.
func Rejected(status int, message string) error {
	kind := ErrRejected
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		kind = fmt.Errorf("%w: %w", ErrRejected, ErrUnauthorized)
	}
	return &Error{
		Code:    CodeRejected,
		Status:  status,
		Message: message,
		Err:     fmt.Errorf("%w (status %d)", kind, status),
	}
}

// BadResponse describes a 2xx answer missing something the client needs.
func BadResponse(what string) error {
	return &Error{
		Code: CodeBadResponse,
		Err:  fmt.Errorf("%w: %s", ErrBadResponse, what),
	}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetMessage returns the first non-empty message in the chain, falling back to err.Error().
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}

// ServerMessage returns the message the remote API attached to a rejection, or "".
func ServerMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Code == CodeRejected {
		return e.Message
	}
	return ""
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsAuthRequired(err error) bool {
	return errors.Is(err, ErrAuthRequired)
}

func IsRequestFailed(err error) bool {
	return errors.Is(err, ErrRequestFailed)
}

func IsRejected(err error) bool {
	return errors.Is(err, ErrRejected)
}

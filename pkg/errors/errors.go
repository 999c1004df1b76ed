package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes shared between the domain services and the HTTP layer.
const (
	CodeInvalidInput  = "invalid_input"
	CodeUploadFailed  = "upload_failed"
	CodeUpstreamError = "upstream_error"
	CodePromptError   = "prompt_error"
)

// AppError encodes domain specific error details.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	if err == nil {
		return &AppError{Code: code, Message: message}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// IsCode helps handler differentiate failures.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// MessageOf returns the top level message of an AppError, or err.Error() otherwise.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// DetailOf returns the wrapped cause message, if any.
func DetailOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			return appErr.Err.Error()
		}
		return appErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// StatusError reports a non-2xx response from an upstream HTTP API.
type StatusError struct {
	Upstream   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s request error: status=%d body=%s", e.Upstream, e.StatusCode, e.Body)
}

// IsClientFault reports whether an upstream rejected the request itself
// (4xx other than 429), as opposed to being unhealthy.
func IsClientFault(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	return statusErr.StatusCode >= 400 && statusErr.StatusCode < 500 && statusErr.StatusCode != http.StatusTooManyRequests
}

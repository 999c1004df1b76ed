package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/weatherstyle/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details string
	// Envelope selects the {success:false, error, details, code} body used by
	// the photo endpoints.
	Envelope bool
	Err      error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromAppError translates a domain error into its transport representation.
func fromAppError(err error) *HTTPError {
	status := http.StatusInternalServerError
	code := "internal_error"
	switch {
	case apperrors.IsCode(err, apperrors.CodeInvalidInput):
		status, code = http.StatusBadRequest, apperrors.CodeInvalidInput
	case apperrors.IsCode(err, apperrors.CodeUploadFailed):
		code = apperrors.CodeUploadFailed
	case apperrors.IsCode(err, apperrors.CodeUpstreamError):
		code = apperrors.CodeUpstreamError
	case apperrors.IsCode(err, apperrors.CodePromptError):
		code = apperrors.CodePromptError
	}
	return &HTTPError{
		Status:  status,
		Code:    code,
		Message: apperrors.MessageOf(err),
		Details: apperrors.DetailOf(err),
		Err:     err,
	}
}

// photoError renders a styling failure in the photo envelope. Server side
// failures carry a fixed headline and the cause in details.
func photoError(err error) *HTTPError {
	httpErr := fromAppError(err)
	httpErr.Envelope = true
	switch httpErr.Code {
	case apperrors.CodeInvalidInput:
	case apperrors.CodeUploadFailed:
		httpErr.Message = "Image upload failed"
	case apperrors.CodeUpstreamError, apperrors.CodePromptError:
		httpErr.Message = "AI styling analysis failed"
	default:
		httpErr.Message = "Failed to process photo analysis"
	}
	return httpErr
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// UnknownMessage is returned to clients for failures that carry no safe detail.
	UnknownMessage = "internal error"

	// MetadataVendorStatusCode carries the <status-code> speakers expect in error documents.
	MetadataVendorStatusCode = "status_code"
)

// ApplicationError is an error with an HTTP status code and a machine-readable reason.
type ApplicationError struct {
	Code     int
	Reason   string
	Message  string
	Title    string
	Metadata map[string]string
	cause    error
}

func (e *ApplicationError) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("error: code = %d reason = %s message = %s cause = %v", e.Code, e.Reason, e.Message, e.cause)
	}
	return fmt.Sprintf("error: code = %d reason = %s message = %s", e.Code, e.Reason, e.Message)
}

func (e *ApplicationError) Unwrap() error { return e.cause }

// Is matches another ApplicationError with the same code and reason.
func (e *ApplicationError) Is(target error) bool {
	var t *ApplicationError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Reason == t.Reason
}

// WithCause returns a copy of e wrapping cause.
func (e *ApplicationError) WithCause(cause error) *ApplicationError {
	c := e.clone()
	c.cause = cause
	return c
}

// WithMetadata returns a copy of e carrying md.
func (e *ApplicationError) WithMetadata(md map[string]string) *ApplicationError {
	c := e.clone()
	c.Metadata = md
	return c
}

// WithTitle sets the short human title used by the management JSON body.
func (e *ApplicationError) WithTitle(title string) *ApplicationError {
	c := e.clone()
	c.Title = title
	return c
}

func (e *ApplicationError) clone() *ApplicationError {
	c := *e
	if e.Metadata != nil {
		c.Metadata = make(map[string]string, len(e.Metadata))
		for k, v := range e.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}

func New(code int, reason, message string) *ApplicationError {
	return &ApplicationError{Code: code, Reason: reason, Message: message}
}

func Newf(code int, reason, format string, a ...any) *ApplicationError {
	return New(code, reason, fmt.Sprintf(format, a...))
}

func BadRequest(reason, message string) *ApplicationError {
	return New(http.StatusBadRequest, reason, message)
}

func Unauthorized(reason, message string) *ApplicationError {
	return New(http.StatusUnauthorized, reason, message)
}

func Forbidden(reason, message string) *ApplicationError {
	return New(http.StatusForbidden, reason, message)
}

func NotFound(reason, message string) *ApplicationError {
	return New(http.StatusNotFound, reason, message)
}

func Conflict(reason, message string) *ApplicationError {
	return New(http.StatusConflict, reason, message)
}

func BadGateway(reason, message string) *ApplicationError {
	return New(http.StatusBadGateway, reason, message)
}

func InternalServer(reason, message string) *ApplicationError {
	return New(http.StatusInternalServerError, reason, message)
}

// FromError converts any error into an ApplicationError. Unknown errors become a 500 with UnknownMessage.
func FromError(err error) *ApplicationError {
	if err == nil {
		return nil
	}
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr
	}
	return New(http.StatusInternalServerError, "", UnknownMessage).WithCause(err)
}

// Code returns the HTTP status carried by err, 200 for nil.
func Code(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return FromError(err).Code
}

// Reason returns the reason carried by err, or "".
func Reason(err error) string {
	if err == nil {
		return ""
	}
	return FromError(err).Reason
}

// IsReason reports whether err carries the given reason.
func IsReason(err error, reason string) bool {
	return err != nil && Reason(err) == reason
}

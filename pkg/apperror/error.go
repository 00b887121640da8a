package apperror

import "net/http"

// Kind identifies the business meaning of an error so that clients can render
// distinct guided states instead of one generic failure banner.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotVerified  Kind = "not_verified"
	KindConflict     Kind = "conflict"
	KindLocked       Kind = "locked"
	KindInternal     Kind = "internal"
)

type AppError struct {
	Code    int      `json:"code"`
	Kind    Kind     `json:"kind"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	Err     error    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, nil)
}

// Validation reports every violated rule, not just the first.
func Validation(message string, details []string) *AppError {
	e := New(http.StatusBadRequest, KindValidation, message, nil)
	e.Details = details
	return e
}

// Unauthorized means the actor's identity could not be established at all,
// as opposed to Forbidden where a known actor lacks the right role.
func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, KindUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, KindForbidden, message, nil)
}

// NotVerified is distinct from Forbidden: the actor holds the right role but
// has not cleared identity review yet.
func NotVerified(message string) *AppError {
	return New(http.StatusForbidden, KindNotVerified, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, KindConflict, message, nil)
}

// Locked signals a CV write attempted while the owning profile is published.
func Locked(message string) *AppError {
	return New(http.StatusLocked, KindLocked, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err)
}

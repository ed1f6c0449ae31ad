package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation     ErrKind = "validation"     // 400
	KindAuth           ErrKind = "auth"           // 401
	KindForbidden      ErrKind = "forbidden"      // 403
	KindNotFound       ErrKind = "not_found"      // 404
	KindInfrastructure ErrKind = "infrastructure" // 500
	KindInternal       ErrKind = "internal"       // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: short summary safe for clients
// - Meta: optional details (field, role, etc.)
// - Cause: wrapped internal error for logging
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Meta    map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func WithMeta(err *Error, meta map[string]string) *Error {
	err.Meta = meta
	return err
}

// Is reports whether err is a domain error carrying code.
func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

const (
	CodeInvalidBody        = "invalid_body"
	CodeMissingField       = "missing_field"
	CodeAlreadyExists      = "email_already_exists"
	CodeInvalidRole        = "invalid_role"
	CodeInvalidCredentials = "invalid_credentials"
	CodeNotLoggedIn        = "not_logged_in"
	CodeForbidden          = "forbidden"
	CodeUserNotFound       = "user_not_found"
	CodeStoreUnavailable   = "store_unavailable"
	CodeInternal           = "internal_error"
)

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidBody(cause error) *Error {
	return Wrap(KindValidation, CodeInvalidBody, "invalid body", cause)
}

func ErrMissingField(field string) *Error {
	return WithMeta(New(KindValidation, CodeMissingField, "missing"), map[string]string{
		"field": field,
	})
}

// Duplicate registrations answer 400 like every other register failure.
func ErrAlreadyExists() *Error {
	return New(KindValidation, CodeAlreadyExists, "exists")
}

func ErrInvalidRole(role string) *Error {
	return WithMeta(
		New(KindValidation, CodeInvalidRole, "invalid role"),
		map[string]string{"role": role},
	)
}

// ----------------------
// Auth errors (401)
// ----------------------

// IMPORTANT: use this for every login failure to avoid user enumeration.
func ErrInvalidCredentials() *Error {
	return New(KindAuth, CodeInvalidCredentials, "invalid")
}

func ErrNotLoggedIn() *Error {
	return New(KindAuth, CodeNotLoggedIn, "not logged in")
}

// ----------------------
// Forbidden (403)
// ----------------------

func ErrForbidden(required Role) *Error {
	return WithMeta(New(KindForbidden, CodeForbidden, "forbidden"), map[string]string{
		"required": string(required),
	})
}

// ----------------------
// Not Found (404)
// ----------------------

func ErrUserNotFound() *Error {
	return New(KindNotFound, CodeUserNotFound, "user not found")
}

// ----------------------
// Infrastructure / internal (5xx)
// ----------------------

func ErrStoreUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, CodeStoreUnavailable, "internal error", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, CodeInternal, "internal error", cause)
}

package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError carries a stable error code alongside a human readable message.
// Handlers map codes to HTTP statuses; services never see HTTP.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func New(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Wrap attaches an underlying cause to a predefined domain error without
// mutating the shared sentinel.
func Wrap(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

var (
	// Registration / verification
	ErrDuplicatePendingRegistration = New("DUPLICATE_PENDING_REGISTRATION", "a verification email was already sent; complete email verification first")
	ErrEmailAlreadyRegistered       = New("EMAIL_ALREADY_REGISTERED", "email is already registered")
	ErrInvalidToken                 = New("INVALID_TOKEN", "invalid token")
	ErrTokenExpired                 = New("TOKEN_EXPIRED", "token has expired")
	ErrVerificationExpired          = New("VERIFICATION_EXPIRED", "email verification expired; register again")

	// Login
	ErrUserNotFound         = New("USER_NOT_FOUND", "user not found")
	ErrEmailNotVerified     = New("EMAIL_NOT_VERIFIED", "complete email verification first")
	ErrInvalidCredentials   = New("INVALID_CREDENTIALS", "invalid password")
	ErrSessionAlreadyActive = New("SESSION_ALREADY_ACTIVE", "already logged in")

	// Validation
	ErrInvalidInput = New("INVALID_INPUT", "invalid input")

	// Content
	ErrPostNotFound    = New("POST_NOT_FOUND", "post not found")
	ErrCommentNotFound = New("COMMENT_NOT_FOUND", "comment not found")

	// Catch-all for store / mail / hashing failures
	ErrServer = New("SERVER_ERROR", "internal server error")
)

// Is reports whether err carries the same code as target. Sentinels are
// compared by code so that Wrap-ed copies still match.
func Is(err error, target *DomainError) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == target.Code
	}
	return false
}

// ToHTTPStatus maps a domain error to a status code. Anything that is not a
// DomainError is a 500; no internal detail leaks past this point.
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var de *DomainError
	if !errors.As(err, &de) {
		return http.StatusInternalServerError
	}

	switch de.Code {
	case "DUPLICATE_PENDING_REGISTRATION",
		"EMAIL_ALREADY_REGISTERED",
		"INVALID_TOKEN",
		"TOKEN_EXPIRED",
		"VERIFICATION_EXPIRED",
		"USER_NOT_FOUND",
		"EMAIL_NOT_VERIFIED",
		"INVALID_CREDENTIALS",
		"SESSION_ALREADY_ACTIVE",
		"INVALID_INPUT":
		return http.StatusBadRequest
	case "POST_NOT_FOUND", "COMMENT_NOT_FOUND":
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the outward-facing message for err. Non-domain errors are
// flattened to the generic server message.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return ErrServer.Message
}

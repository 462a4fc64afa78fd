package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error          // underlying error for wrapping
	Meta    map[string]any // extra payload surfaced to the client (e.g. waitMs)
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches domain errors by code, so wrapped copies and metadata-carrying
// copies still compare equal to the predefined sentinels.
func (e *DomainError) Is(target error) bool {
	var domainErr *DomainError
	if errors.As(target, &domainErr) {
		return e.Code == domainErr.Code
	}
	return false
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// WithMeta returns a copy of the domain error carrying client-visible metadata
func (e *DomainError) WithMeta(meta map[string]any) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Err:     e.Err,
		Meta:    meta,
	}
}

// Predefined domain errors
var (
	// User errors
	ErrUserNotFound       = NewDomainError("NOT_FOUND", "user not found")
	ErrNickExists         = NewDomainError("NICK_EXISTS", "nick already taken")
	ErrInvalidCredentials = NewDomainError("INVALID", "invalid credentials")
	ErrAmountInvalid      = NewDomainError("AMOUNT_INVALID", "xp amount must be between 1 and 1000")

	// Authentication errors
	ErrNoToken       = NewDomainError("NO_TOKEN", "missing bearer token")
	ErrTokenInvalid  = NewDomainError("TOKEN_INVALID", "invalid or expired token")
	ErrAdminRequired = NewDomainError("ADMIN_OR_MASTER_REQUIRED", "admin key or master account required")

	// Token ledger errors
	ErrRedeemTokenNotFound = NewDomainError("TOKEN_INEXISTENTE", "redemption code does not exist")
	ErrRedeemTokenExpired  = NewDomainError("TOKEN_EXPIRADO", "redemption code has expired")
	ErrRedeemTokenUsed     = NewDomainError("TOKEN_JA_USADO", "redemption code already used by another user")

	// Chat errors
	ErrEmptyMessage   = NewDomainError("EMPTY_MESSAGE", "message is empty")
	ErrMessageTooLong = NewDomainError("MESSAGE_TOO_LONG", "message exceeds maximum length")
	ErrRateLimited    = NewDomainError("RATE_LIMITED", "too many messages, wait before sending again")
	ErrChatNotFound   = NewDomainError("CHAT_NOT_FOUND", "chat not found")
	ErrChatExpired    = NewDomainError("CHAT_EXPIRED", "chat has expired")

	// Catalog errors
	ErrGameInvalid = NewDomainError("INVALID_INPUT", "title and link are required")

	// Validation / system errors
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "invalid input")
	ErrInternal     = NewDomainError("INTERNAL_ERROR", "internal server error")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes.
// This should only be used in the handler/presentation layer.
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	// Default to internal server error for unknown errors
	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case "INVALID_INPUT", "EMPTY_MESSAGE", "MESSAGE_TOO_LONG", "AMOUNT_INVALID":
		return http.StatusBadRequest

	// 401 Unauthorized
	case "NO_TOKEN", "TOKEN_INVALID", "INVALID":
		return http.StatusUnauthorized

	// 403 Forbidden
	case "ADMIN_OR_MASTER_REQUIRED":
		return http.StatusForbidden

	// 404 Not Found
	case "NOT_FOUND", "CHAT_NOT_FOUND", "TOKEN_INEXISTENTE":
		return http.StatusNotFound

	// 409 Conflict
	case "NICK_EXISTS", "TOKEN_JA_USADO":
		return http.StatusConflict

	// 410 Gone
	case "CHAT_EXPIRED", "TOKEN_EXPIRADO":
		return http.StatusGone

	// 429 Too Many Requests
	case "RATE_LIMITED":
		return http.StatusTooManyRequests

	// 500 Internal Server Error (default)
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}

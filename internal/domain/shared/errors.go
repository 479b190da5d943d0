package shared

import "errors"

// DomainError represents a domain-level error with a stable code clients can branch on
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped cause
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError with the same code
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapDomainError creates a domain error carrying an underlying cause
func WrapDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes shared by every layer
const (
	CodeValidation              = "VALIDATION_ERROR"
	CodeNotFound                = "NOT_FOUND"
	CodeConflict                = "CONFLICT"
	CodeInternal                = "INTERNAL_ERROR"
	CodeTenantRequired          = "TENANT_REQUIRED"
	CodeTokenRequired           = "TOKEN_REQUIRED"
	CodeInvalidToken            = "INVALID_TOKEN"
	CodeTokenExpired            = "TOKEN_EXPIRED"
	CodeUserNotFound            = "USER_NOT_FOUND"
	CodeTenantInactive          = "TENANT_INACTIVE"
	CodeAuthRequired            = "AUTH_REQUIRED"
	CodeInsufficientPermissions = "INSUFFICIENT_PERMISSIONS"
	CodeInvalidCredentials      = "INVALID_CREDENTIALS"
	CodeInvalidPassword         = "INVALID_PASSWORD"
	CodeInvalidApp              = "INVALID_APP"
	CodeTemplateNotFound        = "TEMPLATE_NOT_FOUND"
	CodeBusinessTypeNotFound    = "BUSINESS_TYPE_NOT_FOUND"
	CodeBusinessTypeInUse       = "BUSINESS_TYPE_IN_USE"
	CodeDuplicateRuleName       = "DUPLICATE_RULE_NAME"
	CodeRateLimited             = "RATE_LIMITED"
)

// Common domain errors
var (
	ErrNotFound             = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists        = NewDomainError(CodeConflict, "Resource already exists")
	ErrInvalidInput         = NewDomainError(CodeValidation, "Invalid input provided")
	ErrTenantRequired       = NewDomainError(CodeTenantRequired, "Tenant context is required")
	ErrTokenRequired        = NewDomainError(CodeTokenRequired, "Access token is required")
	ErrInvalidToken         = NewDomainError(CodeInvalidToken, "Invalid token")
	ErrTokenExpired         = NewDomainError(CodeTokenExpired, "Token has expired")
	ErrUserNotFound         = NewDomainError(CodeUserNotFound, "User not found or inactive")
	ErrTenantInactive       = NewDomainError(CodeTenantInactive, "Tenant account is not active")
	ErrAuthRequired         = NewDomainError(CodeAuthRequired, "Authentication required")
	ErrInsufficientPerms    = NewDomainError(CodeInsufficientPermissions, "Insufficient permissions")
	ErrInvalidCredentials   = NewDomainError(CodeInvalidCredentials, "Invalid email or password")
	ErrTemplateNotFound     = NewDomainError(CodeTemplateNotFound, "Template not found")
	ErrBusinessTypeNotFound = NewDomainError(CodeBusinessTypeNotFound, "Business type not found")
)

// NewValidationError creates a VALIDATION_ERROR with the given message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewConflictError creates a CONFLICT error with the given message
func NewConflictError(message string) *DomainError {
	return NewDomainError(CodeConflict, message)
}

// NewNotFoundError creates a NOT_FOUND error for the named resource
func NewNotFoundError(resource string) *DomainError {
	return NewDomainError(CodeNotFound, resource+" not found")
}

// CodeOf extracts the domain error code from err, or "" when err carries none
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

package dto

import (
	"net/http"

	"github.com/servicehub/backend/internal/domain/shared"
)

// Codes produced only by the HTTP layer
const (
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeInvalidState    = "INVALID_STATE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeInternal: http.StatusInternalServerError,

	// 400
	shared.CodeValidation:      http.StatusBadRequest,
	shared.CodeTenantRequired:  http.StatusBadRequest,
	shared.CodeInvalidPassword: http.StatusBadRequest,
	shared.CodeInvalidApp:      http.StatusBadRequest,
	ErrCodeBadRequest:          http.StatusBadRequest,

	// 401
	shared.CodeTokenRequired:      http.StatusUnauthorized,
	shared.CodeInvalidToken:       http.StatusUnauthorized,
	shared.CodeTokenExpired:       http.StatusUnauthorized,
	shared.CodeUserNotFound:       http.StatusUnauthorized,
	shared.CodeAuthRequired:       http.StatusUnauthorized,
	shared.CodeInvalidCredentials: http.StatusUnauthorized,

	// 403
	shared.CodeTenantInactive:          http.StatusForbidden,
	shared.CodeInsufficientPermissions: http.StatusForbidden,

	// 404
	shared.CodeNotFound:             http.StatusNotFound,
	shared.CodeTemplateNotFound:     http.StatusNotFound,
	shared.CodeBusinessTypeNotFound: http.StatusNotFound,

	// 409
	shared.CodeConflict:          http.StatusConflict,
	shared.CodeDuplicateRuleName: http.StatusConflict,
	shared.CodeBusinessTypeInUse: http.StatusConflict,

	ErrCodeInvalidState:    http.StatusUnprocessableEntity,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	shared.CodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/servicehub/backend/internal/interfaces/http/dto"
)

// AbortWithError writes the error envelope for code and stops the chain.
// The summary message is localized from Accept-Language.
func AbortWithError(c *gin.Context, code, detail string) {
	AbortWithDetails(c, code, detail, nil)
}

// AbortWithDetails is AbortWithError with structured details attached
func AbortWithDetails(c *gin.Context, code, detail string, details any) {
	lang := dto.MatchLanguage(c.GetHeader("Accept-Language"))
	resp := dto.NewErrorResponse(code, dto.Localize(lang, code, detail), detail, GetRequestID(c))
	resp.Error.Details = details
	c.AbortWithStatusJSON(dto.GetHTTPStatus(code), resp)
}

// abortWithDomainError answers with the code of a domain error, or a generic
// 500 for anything else
func abortWithDomainError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		AbortWithError(c, domainErr.Code, domainErr.Message)
		return
	}
	_ = c.Error(err)
	AbortWithError(c, shared.CodeInternal, "An unexpected error occurred")
}

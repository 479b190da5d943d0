package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	identityapp "github.com/servicehub/backend/internal/application/identity"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/servicehub/backend/internal/infrastructure/logger"
	"github.com/servicehub/backend/internal/infrastructure/persistence"
	"github.com/servicehub/backend/internal/interfaces/http/dto"
	"github.com/servicehub/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BaseHandler provides common handler utilities
type BaseHandler struct {
	// ExposeErrors puts the message of unexpected errors into INTERNAL_ERROR
	// responses. Only development deployments set it.
	ExposeErrors bool
}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMessage sends a 200 response with a message
func (h *BaseHandler) SuccessWithMessage(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, dto.NewMessageResponse(message, data))
}

// SuccessWithMeta sends a 200 response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, dto.NewMessageResponse(message, data))
}

// Accepted sends a 202 response
func (h *BaseHandler) Accepted(c *gin.Context, message string) {
	c.JSON(http.StatusAccepted, dto.NewMessageResponse(message, nil))
}

// BadRequest sends a 400 VALIDATION_ERROR response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	middleware.AbortWithError(c, shared.CodeValidation, message)
}

// BindJSON binds the request body into req. On failure the validation error
// response has been written and false is returned.
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// BindQuery binds query parameters into req
func (h *BaseHandler) BindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// ParamUUID parses a path parameter as a UUID
func (h *BaseHandler) ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// Identity returns the authenticated caller. Routes using it sit behind
// middleware.Authenticate; a missing identity is answered with AUTH_REQUIRED.
func (h *BaseHandler) Identity(c *gin.Context) (*identityapp.Identity, bool) {
	id := middleware.GetIdentity(c)
	if id == nil {
		middleware.AbortWithError(c, shared.CodeAuthRequired, "Authentication required")
		return nil, false
	}
	return id, true
}

// TenantID returns the tenant of the request
func (h *BaseHandler) TenantID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetTenantID(c)
	if !ok {
		middleware.AbortWithError(c, shared.CodeTenantRequired, "Tenant information is required")
		return uuid.Nil, false
	}
	return id, true
}

// HandleError writes the error response for err. Domain errors keep their
// code, store errors are translated, anything else is an INTERNAL_ERROR whose
// detail is only exposed when ExposeErrors is set.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &domainErr):
		middleware.AbortWithError(c, domainErr.Code, domainErr.Message)
		return
	case errors.As(err, &validationErrs):
		middleware.HandleValidationError(c, err)
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		middleware.AbortWithError(c, shared.CodeNotFound, "Resource not found")
		return
	case persistence.IsUniqueViolation(err):
		middleware.AbortWithError(c, shared.CodeConflict, "Resource already exists")
		return
	}

	_ = c.Error(err)
	logger.GetGinLogger(c).Error("Request failed", zap.Error(err))

	detail := "An unexpected error occurred"
	if h.ExposeErrors {
		detail = err.Error()
	}
	middleware.AbortWithError(c, shared.CodeInternal, detail)
}

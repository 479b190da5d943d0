package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	identityapp "github.com/servicehub/backend/internal/application/identity"
	"github.com/servicehub/backend/internal/interfaces/http/middleware"
)

// DefaultAppSlug is the app of registrations made without an app slug route
const DefaultAppSlug = "laundry"

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
	defaultApp  string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		defaultApp:  DefaultAppSlug,
	}
}

// appSlug returns the app resolved from the route, or the default app on
// the slug-less routes
func (h *AuthHandler) appSlug(c *gin.Context) string {
	if app, ok := middleware.GetApp(c); ok {
		return app.Slug
	}
	return h.defaultApp
}

// Register onboards a tenant. The body may use the mobile format
// (businessInfo + accountInfo) or the flat web format.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if req.isMobile() {
		if err := binding.Validator.ValidateStruct(&req.MobileRegisterRequest); err != nil {
			middleware.HandleValidationError(c, err)
			return
		}
		h.register(c, req.MobileRegisterRequest.toInput(h.appSlug(c)))
		return
	}

	if err := binding.Validator.ValidateStruct(&req.WebRegisterRequest); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	h.register(c, req.WebRegisterRequest.toInput(h.appSlug(c)))
}

// MobileRegister onboards a tenant from the mobile registration format
func (h *AuthHandler) MobileRegister(c *gin.Context) {
	var req MobileRegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.register(c, req.toInput(h.appSlug(c)))
}

// WebRegister onboards a tenant from the web registration format
func (h *AuthHandler) WebRegister(c *gin.Context) {
	var req WebRegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.register(c, req.toInput(h.appSlug(c)))
}

func (h *AuthHandler) register(c *gin.Context, in identityapp.RegisterInput) {
	result, err := h.authService.Register(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Registration successful", result)
}

// Login authenticates a user by email and password
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identityapp.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		TenantID: req.TenantID,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Login successful", result)
}

// RefreshToken exchanges a refresh token for a new token pair
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Me returns the current user and tenant
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}

	result, err := h.authService.Me(c.Request.Context(), id.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateProfile changes the current user's profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), id.UserID, identityapp.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Profile updated", gin.H{"user": user})
}

// ChangePassword changes the current user's password. Older tokens stop
// working; the response carries a fresh pair.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tokens, err := h.authService.ChangePassword(c.Request.Context(), id.UserID, identityapp.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Password changed", gin.H{"tokens": tokens})
}

// Logout revokes the presented access token
func (h *AuthHandler) Logout(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	if err := h.authService.Logout(c.Request.Context(), id.Claims); err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Logged out", nil)
}

// FindTenant returns the tenant of an email address
func (h *AuthHandler) FindTenant(c *gin.Context) {
	var q FindTenantQuery
	if !h.BindQuery(c, &q) {
		return
	}

	lookup, err := h.authService.FindTenant(c.Request.Context(), q.Email)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lookup)
}

// ForgotPassword accepts a password reset request
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, "If the address is registered, reset instructions will be sent")
}

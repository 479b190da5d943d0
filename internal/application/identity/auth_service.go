// Package identity implements onboarding, authentication and tenant
// administration.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/catalog"
	"github.com/servicehub/backend/internal/domain/identity"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/servicehub/backend/internal/infrastructure/auth"
	"github.com/servicehub/backend/internal/infrastructure/logger"
	"github.com/servicehub/backend/internal/infrastructure/metrics"
	"github.com/servicehub/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// AuthService handles registration, login and session management
type AuthService struct {
	tenants       identity.TenantRepository
	users         identity.UserRepository
	businessTypes catalog.BusinessTypeRepository
	apps          *identity.AppRegistry
	tokens        *auth.TokenService
	blacklist     auth.TokenBlacklist
	logger        *zap.Logger
	now           func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	tenants identity.TenantRepository,
	users identity.UserRepository,
	businessTypes catalog.BusinessTypeRepository,
	apps *identity.AppRegistry,
	tokens *auth.TokenService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		tenants:       tenants,
		users:         users,
		businessTypes: businessTypes,
		apps:          apps,
		tokens:        tokens,
		blacklist:     blacklist,
		logger:        logger,
		now:           time.Now,
	}
}

// InvalidAppError reports an unknown app slug with the slugs that exist
func InvalidAppError(slug string, available []string) *shared.DomainError {
	return shared.NewDomainError(shared.CodeInvalidApp,
		fmt.Sprintf("Unknown app '%s'. Available apps: %s", slug, strings.Join(available, ", ")))
}

// Register creates a tenant, its business type links and its first user in one
// transaction, then signs the user in
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (result *AuthResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "AuthService", "Register", attribute.String("app", in.AppSlug))
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
		metrics.ObserveAuth("register", outcome(err))
	}()

	app, ok := s.apps.Lookup(in.AppSlug)
	if !ok {
		return nil, InvalidAppError(in.AppSlug, s.apps.Slugs())
	}
	if strings.TrimSpace(in.TenantName) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, shared.NewValidationError("Business name, email and password are required")
	}

	links, err := s.resolveBusinessTypes(ctx, in.BusinessTypeIDs)
	if err != nil {
		return nil, err
	}

	tenant, err := identity.NewTenant(in.TenantName, app.Type)
	if err != nil {
		return nil, err
	}
	tenant.SetDomain(in.Domain)
	tenant.Email = strings.TrimSpace(in.Email)
	tenant.Phone = strings.TrimSpace(in.Phone)
	tenant.LinkBusinessTypes(links)
	settings := app.NewTenantSettings()
	settings.Registration = &identity.RegistrationInfo{
		AppType:       app.Type,
		AppName:       app.Name,
		Country:       in.Country,
		City:          in.City,
		DeviceInfo:    in.DeviceInfo,
		BusinessTypes: tenant.BusinessTypes,
	}
	tenant.Settings = settings

	user, err := identity.NewUser(tenant.ID, in.Email, in.Password, identity.RoleUser)
	if err != nil {
		return nil, err
	}
	user.SetName(in.FirstName, in.LastName)
	user.Phone = strings.TrimSpace(in.Phone)

	exists, err := s.users.ExistsByEmail(ctx, user.Email, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("A user with this email already exists")
	}
	if tenant.Domain != nil {
		taken, err := s.tenants.ExistsByDomain(ctx, *tenant.Domain)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, shared.NewConflictError("A tenant with this domain already exists")
		}
	}

	if err := s.tenants.CreateWithOwner(ctx, tenant, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewConflictError("A user with this email already exists")
		}
		return nil, err
	}

	pair, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("Tenant registered",
		zap.String("app", app.Slug),
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("user_id", user.ID.String()),
		zap.Int("business_types", len(links)))

	tenantInfo := ToTenantInfo(tenant)
	return &AuthResult{
		App:    &AppInfo{Slug: app.Slug, Name: app.Name, Type: app.Type},
		User:   ToUserInfo(user),
		Tenant: &tenantInfo,
		Tokens: pair,
	}, nil
}

// resolveBusinessTypes checks that every id names an active business type and
// returns the links in request order
func (s *AuthService) resolveBusinessTypes(ctx context.Context, ids []uuid.UUID) ([]identity.BusinessTypeLink, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	active, err := s.businessTypes.FindAll(ctx, true)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]catalog.BusinessType, len(active))
	for _, bt := range active {
		byID[bt.ID] = bt
	}

	links := make([]identity.BusinessTypeLink, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	var invalid []string
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		bt, ok := byID[id]
		if !ok {
			invalid = append(invalid, id.String())
			continue
		}
		links = append(links, identity.BusinessTypeLink{BusinessTypeID: bt.ID, Name: bt.Name})
	}
	if len(invalid) > 0 {
		return nil, shared.NewValidationError("Invalid or inactive business types: " + strings.Join(invalid, ", "))
	}
	return links, nil
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, in LoginInput) (result *AuthResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "AuthService", "Login")
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
		metrics.ObserveAuth("login", outcome(err))
	}()

	log := logger.Enrich(ctx, s.logger)
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, shared.NewValidationError("Email and password are required")
	}

	user, err := s.users.FindActiveByEmail(ctx, in.Email, in.TenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			log.Warn("Login attempt for unknown email")
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.VerifyPassword(in.Password) {
		log.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.ErrInvalidCredentials
	}

	tenant, err := s.tenants.FindByID(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive {
		return nil, shared.ErrTenantInactive
	}

	pair, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	user.RecordLogin(s.now())
	if err := s.users.UpdateLastLogin(ctx, user); err != nil {
		log.Error("Failed to record login", zap.Error(err))
	}

	log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("ip", in.IP))

	tenantInfo := ToTenantInfo(tenant)
	return &AuthResult{User: ToUserInfo(user), Tenant: &tenantInfo, Tokens: pair}, nil
}

// Refresh exchanges a refresh token for a new pair. The presented token is
// revoked so it cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (result *AuthResult, err error) {
	defer func() { metrics.ObserveAuth("refresh", outcome(err)) }()

	if refreshToken == "" {
		return nil, shared.ErrTokenRequired
	}
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, tokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	user, err := s.activeUser(ctx, claims)
	if err != nil {
		return nil, err
	}
	tenant, err := s.tenants.FindByID(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive {
		return nil, shared.ErrTenantInactive
	}

	if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		return nil, err
	}
	pair, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: ToUserInfo(user), Tokens: pair}, nil
}

// Authenticate verifies an access token and loads the acting user
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*Identity, error) {
	if accessToken == "" {
		return nil, shared.ErrTokenRequired
	}
	claims, err := s.tokens.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, tokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	user, err := s.activeUser(ctx, claims)
	if err != nil {
		return nil, err
	}
	tenant, err := s.tenants.FindByID(ctx, user.TenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrTenantInactive
		}
		return nil, err
	}
	if !tenant.IsActive {
		return nil, shared.ErrTenantInactive
	}

	return &Identity{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Email:    user.Email,
		Role:     user.Role,
		Claims:   claims,
	}, nil
}

// TenantFromToken returns the tenant id carried by a valid access token
func (s *AuthService) TenantFromToken(accessToken string) (uuid.UUID, error) {
	return s.tokens.TenantFromAccessToken(accessToken)
}

// Me returns the current user with their tenant. The user is looked up in
// the tenant of ctx, which the authentication middleware sets.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*AuthResult, error) {
	user, err := s.users.FindInRequestTenant(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUserNotFound
		}
		return nil, err
	}
	tenant, err := s.tenants.FindByID(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}
	tenantInfo := ToTenantInfo(tenant)
	return &AuthResult{User: ToUserInfo(user), Tenant: &tenantInfo}, nil
}

// UpdateProfile changes the current user's name, phone and email
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*UserInfo, error) {
	user, err := s.users.FindInRequestTenant(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUserNotFound
		}
		return nil, err
	}

	first, last := user.FirstName, user.LastName
	if in.FirstName != nil {
		first = *in.FirstName
	}
	if in.LastName != nil {
		last = *in.LastName
	}
	user.SetName(first, last)
	if in.Phone != nil {
		user.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil && !strings.EqualFold(strings.TrimSpace(*in.Email), user.Email) {
		if err := user.ChangeEmail(*in.Email); err != nil {
			return nil, err
		}
		exists, err := s.users.ExistsByEmail(ctx, user.Email, &user.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewConflictError("This email is already in use")
		}
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	info := ToUserInfo(user)
	return &info, nil
}

// ChangePassword verifies the current password, sets the new one and revokes
// every token issued before the change. A fresh pair is returned.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, in ChangePasswordInput) (*auth.TokenPair, error) {
	user, err := s.users.FindInRequestTenant(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUserNotFound
		}
		return nil, err
	}
	if !user.VerifyPassword(in.CurrentPassword) {
		return nil, shared.NewDomainError(shared.CodeInvalidPassword, "Current password is incorrect")
	}
	if err := user.SetPassword(in.NewPassword); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := s.blacklist.RevokeUser(ctx, user.ID.String(), s.tokens.RefreshExpiration()); err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("Password changed", zap.String("user_id", user.ID.String()))
	return s.issue(user)
}

// Logout revokes the presented access token until it would have expired
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	return s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL())
}

// FindTenant returns the tenant of an active user, for login screens that ask
// for an email before the password
func (s *AuthService) FindTenant(ctx context.Context, email string) (*TenantLookup, error) {
	if strings.TrimSpace(email) == "" {
		return nil, shared.NewValidationError("email is required")
	}
	user, err := s.users.FindActiveByEmail(ctx, email, nil)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUserNotFound
		}
		return nil, err
	}
	tenant, err := s.tenants.FindByID(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive {
		return nil, shared.ErrTenantInactive
	}
	return &TenantLookup{TenantID: tenant.ID, TenantName: tenant.Name, Domain: tenant.Domain}, nil
}

// ForgotPassword accepts a reset request. Whether the email exists is never revealed.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return shared.NewValidationError("email is required")
	}
	if _, err := s.users.FindActiveByEmail(ctx, email, nil); err == nil {
		logger.Enrich(ctx, s.logger).Info("Password reset requested")
	}
	return nil
}

func (s *AuthService) issue(user *identity.User) (*auth.TokenPair, error) {
	pair, err := s.tokens.Issue(auth.Subject{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Email:    user.Email,
		Role:     user.Role,
	})
	if err != nil {
		return nil, shared.WrapDomainError(shared.CodeInternal, "Failed to generate authentication tokens", err)
	}
	return pair, nil
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return err
	}
	if revoked {
		return shared.NewDomainError(shared.CodeInvalidToken, "Token has been revoked")
	}
	revoked, err = s.blacklist.IsUserRevoked(ctx, claims.UserID, claims.IssuedAtTime())
	if err != nil {
		return err
	}
	if revoked {
		return shared.NewDomainError(shared.CodeInvalidToken, "Token has been revoked")
	}
	return nil
}

func (s *AuthService) activeUser(ctx context.Context, claims *auth.Claims) (*identity.User, error) {
	id, err := claims.UserUUID()
	if err != nil {
		return nil, shared.ErrInvalidToken
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, shared.ErrUserNotFound
	}
	return user, nil
}

// tokenError maps token verification failures to domain errors
func tokenError(err error) error {
	if errors.Is(err, auth.ErrExpiredToken) {
		return shared.ErrTokenExpired
	}
	return shared.ErrInvalidToken
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	if code := shared.CodeOf(err); code != "" {
		return strings.ToLower(code)
	}
	return "error"
}

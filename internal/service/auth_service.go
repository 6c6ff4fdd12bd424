package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/adoption-client/internal/auth"
	"github.com/spec-kit/adoption-client/internal/config"
	"github.com/spec-kit/adoption-client/internal/domain"
	"github.com/spec-kit/adoption-client/internal/repository"
	apperrors "github.com/spec-kit/adoption-client/pkg/util"
)

const (
	passwordResetTTL     = 30 * time.Minute
	emailVerificationTTL = 24 * time.Hour
)

// AuthSession is the outcome of a successful sign-in or refresh.
type AuthSession struct {
	User             domain.User
	AccessToken      string
	ExpiresAt        time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
	// VerificationToken is only set on registration.
	VerificationToken string
}

// AuthService coordinates registration, login and token rotation.
type AuthService struct {
	users      repository.UserRepository
	resets     repository.PasswordResetRepository
	verify     repository.PasswordResetRepository
	refresh    repository.RefreshTokenRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	refreshTTL time.Duration
	logger     *zap.Logger
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo          repository.UserRepository
	PasswordResetRepo repository.PasswordResetRepository
	RefreshTokenRepo  repository.RefreshTokenRepository
	// VerificationRepo holds email verification tokens; they share the
	// reset token shape.
	VerificationRepo repository.PasswordResetRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.MockConfig, deps AuthDependencies, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.VerificationRepo == nil {
		deps.VerificationRepo = repository.NewPasswordResetRepository()
	}
	return &AuthService{
		users:      deps.UserRepo,
		resets:     deps.PasswordResetRepo,
		verify:     deps.VerificationRepo,
		refresh:    deps.RefreshTokenRepo,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTTL()),
		bcryptCost: cfg.BcryptCost,
		refreshTTL: cfg.RefreshTTL(),
		logger:     logger,
	}
}

// Register creates a regular account and signs it in.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*AuthSession, error) {
	user, err := s.CreateUser(ctx, req.Name, req.Email, req.Password, req.Phone, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	token := &repository.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(emailVerificationTTL),
	}
	if err := s.verify.Create(ctx, token); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	sess, err := s.issue(ctx, *user)
	if err != nil {
		return nil, err
	}
	sess.VerificationToken = token.Token
	return sess, nil
}

// VerifyEmail marks the account behind tokenStr as verified.
func (s *AuthService) VerifyEmail(ctx context.Context, tokenStr string) (*domain.User, error) {
	token, err := s.verify.GetByToken(ctx, tokenStr)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid verification token", map[string]any{"token": "is invalid"})
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return nil, apperrors.NewValidationError("verification token expired or used", map[string]any{"token": "expired or used"})
	}
	record, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return nil, mapRepoError(err, "user")
	}
	record.EmailVerified = true
	if err := s.users.Update(ctx, record); err != nil {
		return nil, mapRepoError(err, "user")
	}
	if err := s.verify.MarkUsed(ctx, token.ID); err != nil {
		return nil, mapRepoError(err, "verification token")
	}
	s.logger.Info("email verified", zap.String("user_id", record.ID))
	return &record.User, nil
}

// CreateUser stores an account with the given role.
func (s *AuthService) CreateUser(ctx context.Context, name, email, password, phone string, role domain.Role) (*domain.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	record := &repository.UserRecord{PasswordHash: hash}
	record.Name = strings.TrimSpace(name)
	record.Email = strings.ToLower(strings.TrimSpace(email))
	record.Phone = phone
	record.Role = role
	if err := s.users.Create(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewValidationError("email already registered", map[string]any{"email": "already registered"})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return &record.User, nil
}

// Login authenticates by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthSession, error) {
	record, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.NewInternalError(err)
	}
	if !auth.CheckPassword(record.PasswordHash, password) {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.issue(ctx, record.User)
}

// Refresh exchanges a refresh token for a new access token and rotates the
// refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthSession, error) {
	if refreshToken == "" {
		return nil, apperrors.NewUnauthorized("missing refresh token")
	}
	stored, err := s.refresh.Get(ctx, refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid refresh token")
	}
	if stored.RevokedAt != nil || time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.NewUnauthorized("refresh token expired")
	}
	record, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, apperrors.NewUnauthorized("account no longer exists")
	}
	if err := s.refresh.Revoke(ctx, refreshToken); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return s.issue(ctx, record.User)
}

// Logout revokes the refresh token; access tokens simply expire.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.refresh.Revoke(ctx, refreshToken); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Me returns the profile of userID.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	record, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, "user")
	}
	return &record.User, nil
}

// UpdateProfile changes name and phone.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	record, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, "user")
	}
	if update.Name != nil {
		record.Name = strings.TrimSpace(*update.Name)
	}
	if update.Phone != nil {
		record.Phone = *update.Phone
	}
	if err := s.users.Update(ctx, record); err != nil {
		return nil, mapRepoError(err, "user")
	}
	return &record.User, nil
}

// ChangePassword verifies the current password before replacing it.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	record, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return mapRepoError(err, "user")
	}
	if !auth.CheckPassword(record.PasswordHash, currentPassword) {
		return apperrors.NewValidationError("current password is incorrect", map[string]any{"currentPassword": "is incorrect"})
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	record.PasswordHash = hash
	return mapRepoError(s.users.Update(ctx, record), "user")
}

// RequestPasswordReset stores a reset token for email. Unknown addresses
// yield no token and no error.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	record, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	token := &repository.PasswordResetToken{
		UserID:    record.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(passwordResetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.logger.Info("password reset requested", zap.String("user_id", record.ID))
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates the password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		return apperrors.NewValidationError("invalid reset token", map[string]any{"token": "is invalid"})
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return apperrors.NewValidationError("reset token expired or used", map[string]any{"token": "expired or used"})
	}
	record, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return mapRepoError(err, "user")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	record.PasswordHash = hash
	if err := s.users.Update(ctx, record); err != nil {
		return mapRepoError(err, "user")
	}
	return mapRepoError(s.resets.MarkUsed(ctx, token.ID), "reset token")
}

// PurgeExpired drops expired or used refresh and reset tokens.
func (s *AuthService) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	refreshed, err := s.refresh.DeleteExpired(ctx, now)
	if err != nil {
		return 0, err
	}
	resets, err := s.resets.DeleteExpired(ctx, now)
	if err != nil {
		return refreshed, err
	}
	verifications, err := s.verify.DeleteExpired(ctx, now)
	return refreshed + resets + verifications, err
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issue(ctx context.Context, user domain.User) (*AuthSession, error) {
	access, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	refresh := &repository.RefreshToken{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.refresh.Create(ctx, refresh); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthSession{
		User:             user,
		AccessToken:      access,
		ExpiresAt:        exp,
		RefreshToken:     refresh.Token,
		RefreshExpiresAt: refresh.ExpiresAt,
	}, nil
}

func mapRepoError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewConflict(resource + " already exists")
	default:
		return apperrors.NewInternalError(err)
	}
}

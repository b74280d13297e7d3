package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/brandingpioneers/hr-management/internal"
	"github.com/brandingpioneers/hr-management/internal/core/events"
)

type Repository interface {
	GetUserByEmail(email string) (*User, error)
	GetUserByID(id string) (*User, error)
	CreateUser(u *User) error
	UpdateUserPassword(userID, passwordHash string) error
	UpdateLastLogin(userID string, at time.Time) error
	MarkEmailVerified(userID string) error

	CreateInvitation(inv *Invitation) error
	GetPendingInvitation(email string, now time.Time) (*Invitation, error)
	GetInvitationByToken(token string, now time.Time) (*Invitation, error)
	MarkInvitationAccepted(id string) error

	CreatePasswordReset(t *PasswordResetToken) error
	GetActivePasswordReset(token string, now time.Time) (*PasswordResetToken, error)
	InvalidatePasswordResets(userID string) error

	CreateEmailVerification(v *EmailVerification) error
	GetActiveEmailVerification(token string, now time.Time) (*EmailVerification, error)
	MarkEmailVerificationVerified(id string) error
}

// AuditRecorder appends to the audit trail. Implementations must be
// fire-and-forget: no return value, failures are logged internally.
type AuditRecorder interface {
	Record(ctx context.Context, userID, action, resource string, details map[string]any, ip, ua string)
}

// forgotPasswordMessage is returned for existing and unknown emails alike so
// the endpoint cannot be used to enumerate accounts.
const forgotPasswordMessage = "If the email exists, a password reset link has been sent"

type Service struct {
	repo       Repository
	tokens     TokenGenerator
	bus        *events.EventBus
	audit      AuditRecorder
	logger     *slog.Logger
	bcryptCost int

	invitationTTL   time.Duration
	resetTTL        time.Duration
	verificationTTL time.Duration
}

type ServiceConfig struct {
	BCryptCost           int
	InvitationTTL        time.Duration
	PasswordResetTTL     time.Duration
	EmailVerificationTTL time.Duration
}

func NewService(repo Repository, tokens TokenGenerator, bus *events.EventBus, audit AuditRecorder, cfg ServiceConfig, logger *slog.Logger) *Service {
	cost := cfg.BCryptCost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	invitationTTL := cfg.InvitationTTL
	if invitationTTL <= 0 {
		invitationTTL = 48 * time.Hour
	}
	resetTTL := cfg.PasswordResetTTL
	if resetTTL <= 0 {
		resetTTL = time.Hour
	}
	verificationTTL := cfg.EmailVerificationTTL
	if verificationTTL <= 0 {
		verificationTTL = 24 * time.Hour
	}

	return &Service{
		repo:            repo,
		tokens:          tokens,
		bus:             bus,
		audit:           audit,
		logger:          logger,
		bcryptCost:      cost,
		invitationTTL:   invitationTTL,
		resetTTL:        resetTTL,
		verificationTTL: verificationTTL,
	}
}

// Authenticate validates credentials and returns an access token. The
// last_login update and the security notification are both best effort.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO, ip, ua string) (*Token, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByEmail(dto.Email)
	if err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to generate token", err)
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(user.ID, now); err != nil {
		s.logger.Warn("failed to update last login", "user_id", user.ID, "error", err)
	}
	user.LastLogin = &now

	s.bus.Publish(ctx, events.NewUserLoggedInEvent(user.Email, user.Name, ip, ua))
	s.audit.Record(ctx, user.ID, "login", "auth", map[string]any{"email": user.Email}, ip, ua)

	return &Token{AccessToken: accessToken, TokenType: "bearer", User: user}, nil
}

// Register creates an account directly. Invitation is the preferred path;
// this endpoint remains for bootstrap and self-service deployments.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetUserByEmail(dto.Email); err == nil && existing != nil {
		return nil, internal.NewConflictError("Email already registered", internal.ErrCodeUserExists)
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	role := dto.Role
	if role == "" {
		role = RoleEmployee
	}

	now := time.Now().UTC()
	user := &User{
		ID:           uuid.NewString(),
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email, "role", user.Role)
	return user, nil
}

// InviteUser creates an invitation for a new account. A still-pending,
// unexpired invitation for the same email blocks a duplicate.
func (s *Service) InviteUser(ctx context.Context, inviter *User, dto InviteUserDTO) (*Invitation, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetUserByEmail(dto.Email); err == nil && existing != nil {
		return nil, internal.NewConflictError("User already exists", internal.ErrCodeUserExists)
	}

	now := time.Now().UTC()
	if pending, err := s.repo.GetPendingInvitation(dto.Email, now); err == nil && pending != nil {
		return nil, internal.NewConflictError("Pending invitation already exists", internal.ErrCodeInvitationPending)
	}

	token, err := generateSecureToken()
	if err != nil {
		return nil, internal.NewInternalError("failed to generate invitation token", err)
	}

	invitation := &Invitation{
		ID:        uuid.NewString(),
		Email:     dto.Email,
		Role:      dto.Role,
		InvitedBy: inviter.ID,
		Token:     token,
		ExpiresAt: now.Add(s.invitationTTL),
		CreatedAt: now,
	}

	if err := s.repo.CreateInvitation(invitation); err != nil {
		return nil, internal.NewInternalError("failed to create invitation", err)
	}

	s.bus.Publish(ctx, events.NewUserInvitedEvent(invitation.Email, string(invitation.Role), inviter.Name, token))
	s.audit.Record(ctx, inviter.ID, "invite_user", "users",
		map[string]any{"email": dto.Email, "role": dto.Role}, "", "")

	s.logger.Info("user invited", "email", dto.Email, "role", dto.Role, "invited_by", inviter.ID)
	return invitation, nil
}

// AcceptInvitation consumes an invitation token exactly once and creates the
// account. Invalid, expired, and already-accepted tokens are indistinguishable
// to the caller.
func (s *Service) AcceptInvitation(ctx context.Context, token string, dto AcceptInviteDTO) (*Token, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invitation, err := s.repo.GetInvitationByToken(token, now)
	if err != nil || invitation == nil {
		return nil, internal.NewBadRequestError("Invalid or expired invitation", internal.ErrCodeInvitationInvalid)
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        invitation.Email,
		Name:         dto.Name,
		PasswordHash: hash,
		Role:         invitation.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, internal.NewInternalError("failed to create user", err)
	}

	if err := s.repo.MarkInvitationAccepted(invitation.ID); err != nil {
		return nil, internal.NewInternalError("failed to accept invitation", err)
	}

	if err := s.createEmailVerification(ctx, user); err != nil {
		s.logger.Warn("failed to create email verification", "user_id", user.ID, "error", err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to generate token", err)
	}

	s.audit.Record(ctx, user.ID, "accept_invitation", "users",
		map[string]any{"email": user.Email, "role": user.Role}, "", "")

	return &Token{AccessToken: accessToken, TokenType: "bearer", User: user}, nil
}

// ForgotPassword always reports success with the same message so callers
// cannot probe which emails exist.
func (s *Service) ForgotPassword(ctx context.Context, dto ForgotPasswordDTO) (string, error) {
	if err := dto.Validate(); err != nil {
		return "", err
	}

	user, err := s.repo.GetUserByEmail(dto.Email)
	if err != nil || user == nil {
		return forgotPasswordMessage, nil
	}

	if err := s.repo.InvalidatePasswordResets(user.ID); err != nil {
		s.logger.Warn("failed to invalidate prior reset tokens", "user_id", user.ID, "error", err)
	}

	token, err := generateSecureToken()
	if err != nil {
		return "", internal.NewInternalError("failed to generate reset token", err)
	}

	now := time.Now().UTC()
	reset := &PasswordResetToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: now.Add(s.resetTTL),
		CreatedAt: now,
	}

	if err := s.repo.CreatePasswordReset(reset); err != nil {
		return "", internal.NewInternalError("failed to create reset token", err)
	}

	s.bus.Publish(ctx, events.NewPasswordResetEvent(user.Email, user.Name, token))
	s.audit.Record(ctx, user.ID, "password_reset_requested", "auth", map[string]any{"email": user.Email}, "", "")

	return forgotPasswordMessage, nil
}

func (s *Service) ResetPassword(ctx context.Context, dto ResetPasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	reset, err := s.repo.GetActivePasswordReset(dto.Token, now)
	if err != nil || reset == nil {
		return internal.NewBadRequestError("Invalid or expired reset token", internal.ErrCodeResetTokenInvalid)
	}

	hash, err := s.HashPassword(dto.NewPassword)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}

	if err := s.repo.UpdateUserPassword(reset.UserID, hash); err != nil {
		return internal.NewInternalError("failed to update password", err)
	}

	// Consuming the token here rather than up front means a crashed update
	// leaves the token reusable; acceptable for a single-use 1h token.
	if err := s.repo.InvalidatePasswordResets(reset.UserID); err != nil {
		s.logger.Warn("failed to mark reset token used", "user_id", reset.UserID, "error", err)
	}

	if user, err := s.repo.GetUserByID(reset.UserID); err == nil && user != nil {
		s.bus.Publish(ctx, events.NewPasswordChangedEvent(user.Email, user.Name))
	}
	s.audit.Record(ctx, reset.UserID, "password_reset", "auth", nil, "", "")

	return nil
}

func (s *Service) ChangePassword(ctx context.Context, user *User, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.CurrentPassword)); err != nil {
		return internal.NewUnauthorizedError("Current password is incorrect", internal.ErrCodeInvalidCredentials)
	}

	hash, err := s.HashPassword(dto.NewPassword)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}

	if err := s.repo.UpdateUserPassword(user.ID, hash); err != nil {
		return internal.NewInternalError("failed to update password", err)
	}

	s.bus.Publish(ctx, events.NewPasswordChangedEvent(user.Email, user.Name))
	s.audit.Record(ctx, user.ID, "password_changed", "auth", nil, "", "")

	return nil
}

func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	now := time.Now().UTC()
	verification, err := s.repo.GetActiveEmailVerification(token, now)
	if err != nil || verification == nil {
		return internal.NewBadRequestError("Invalid or expired verification token", internal.ErrCodeVerifyTokenInvalid)
	}

	if err := s.repo.MarkEmailVerified(verification.UserID); err != nil {
		return internal.NewInternalError("failed to mark email verified", err)
	}

	if err := s.repo.MarkEmailVerificationVerified(verification.ID); err != nil {
		s.logger.Warn("failed to mark verification consumed", "verification_id", verification.ID, "error", err)
	}

	s.audit.Record(ctx, verification.UserID, "email_verified", "auth", nil, "", "")
	return nil
}

func (s *Service) createEmailVerification(ctx context.Context, user *User) error {
	token, err := generateSecureToken()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	verification := &EmailVerification{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: now.Add(s.verificationTTL),
		CreatedAt: now,
	}

	if err := s.repo.CreateEmailVerification(verification); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.NewEmailVerificationEvent(user.Email, user.Name, token))
	return nil
}

// GetUserByEmail loads the account for the authenticated subject.
func (s *Service) GetUserByEmail(email string) (*User, error) {
	return s.repo.GetUserByEmail(email)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateToken(tokenString)
}

func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func generateSecureToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// JWTTokenGenerator signs HS256 access tokens whose subject is the account
// email.
type JWTTokenGenerator struct {
	Secret         []byte
	AccessTokenTTL time.Duration
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &JWTTokenGenerator{
		Secret:         []byte(secret),
		AccessTokenTTL: ttl,
	}
}

func (j *JWTTokenGenerator) GenerateAccessToken(email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(j.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}

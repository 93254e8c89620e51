package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"go.uber.org/zap"

	"himti/internal/auth"
	apperr "himti/internal/errors"
	"himti/internal/mail"
	"himti/internal/model"
	"himti/internal/repository"
)

// Session is a signed session token and the moment it stops being accepted.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	// Logout revokes token if it is a genuine session token. It never fails for a missing or
	// unparsable token.
	Logout(ctx context.Context, token string) error
	Refresh(ctx context.Context, token string) (*Session, error)
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}

type authService struct {
	accountRepo repository.AccountRepository
	jwtService  *auth.JWTService
	tokenStore  auth.TokenStoreInterface
	hasher      auth.PasswordHasher
	otp         auth.OTPGenerator
	limiter     *auth.OTPLimiter
	mailer      mail.Mailer
	log         *zap.Logger
	now         func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	accountRepo repository.AccountRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	hasher auth.PasswordHasher,
	otp auth.OTPGenerator,
	limiter *auth.OTPLimiter,
	mailer mail.Mailer,
	log *zap.Logger,
) AuthService {
	return &authService{
		accountRepo: accountRepo,
		jwtService:  jwtService,
		tokenStore:  tokenStore,
		hasher:      hasher,
		otp:         otp,
		limiter:     limiter,
		mailer:      mailer,
		log:         log,
		now:         time.Now,
	}
}

// Register creates an account with the USER role, greets it by email and opens a session.
func (s *authService) Register(ctx context.Context, email, password, name string) (*Session, error) {
	_, err := s.accountRepo.FindByEmailAnyState(ctx, email)
	if err == nil {
		return nil, apperr.Conflict("Email already registered")
	}
	if !apperr.IsNotFound(err) {
		return nil, apperr.Internal("Failed to register", fmt.Errorf("check account existence: %w", err))
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperr.Internal("Failed to register", err)
	}

	account := &model.Account{
		Email:        email,
		PasswordHash: hashed,
		Name:         name,
		Role:         model.RoleUser,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		// the unique index decides when two registrations race
		if apperr.IsDuplicate(err) {
			return nil, apperr.Conflict("Email already registered")
		}
		return nil, apperr.Internal("Failed to register", fmt.Errorf("create account: %w", err))
	}

	if err := s.mailer.SendWelcome(account.Email, account.Name); err != nil {
		s.log.Error("welcome email failed", zap.String("account_id", account.ID.String()), zap.Error(err))
		return nil, apperr.Internal("Failed to send welcome email", err)
	}

	return s.issue(account)
}

// Login authenticates an account. Unknown email and wrong password are indistinguishable.
func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid credentials")
		}
		return nil, apperr.Internal("Failed to login", err)
	}

	if !s.hasher.Compare(account.PasswordHash, password) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	return s.issue(account)
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.jwtService.ParseIgnoringExpiry(token)
	if err != nil {
		return nil
	}
	if err := s.tokenStore.Revoke(ctx, claims.ID, claims.RemainingTTL(s.now())); err != nil {
		s.log.Warn("revoke session token", zap.String("jti", claims.ID), zap.Error(err))
	}
	return nil
}

// Refresh exchanges a correctly signed session token, expired or not, for a fresh one.
func (s *authService) Refresh(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, apperr.Unauthorized("No token provided")
	}
	claims, err := s.jwtService.ParseIgnoringExpiry(token)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid token")
	}
	if revoked, _ := s.tokenStore.IsRevoked(ctx, claims.ID); revoked {
		return nil, apperr.Unauthorized("Token has been revoked")
	}

	accountID, err := claims.AccountID()
	if err != nil {
		return nil, apperr.Unauthorized("Invalid token")
	}
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("User not found")
		}
		return nil, apperr.Internal("Failed to refresh token", err)
	}

	session, err := s.issue(account)
	if err != nil {
		return nil, err
	}
	if err := s.tokenStore.Revoke(ctx, claims.ID, claims.RemainingTTL(s.now())); err != nil {
		s.log.Warn("revoke refreshed token", zap.String("jti", claims.ID), zap.Error(err))
	}
	return session, nil
}

// ForgotPassword stores a fresh reset code on the account and emails it.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	if !s.limiter.Allow(ctx, email) {
		return apperr.BadRequest("Too many OTP requests, please try again later")
	}

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return apperr.BadRequest("Email not found")
		}
		return apperr.Internal("Failed to process request", err)
	}

	code, err := s.otp.Generate()
	if err != nil {
		return apperr.Internal("Failed to generate OTP", err)
	}
	if err := s.accountRepo.SetOTP(ctx, account.ID, code, s.now().Add(auth.OTPTTL)); err != nil {
		return apperr.Internal("Failed to store OTP", err)
	}

	if err := s.mailer.SendPasswordReset(account.Email, code); err != nil {
		s.log.Error("password reset email failed", zap.String("account_id", account.ID.String()), zap.Error(err))
		return apperr.Internal("Failed to send OTP email", err)
	}
	return nil
}

// VerifyOTP checks a reset code without consuming it.
func (s *authService) VerifyOTP(ctx context.Context, email, otp string) error {
	_, err := s.pendingReset(ctx, email, otp, "Invalid OTP request")
	return err
}

// ResetPassword re-checks the code, then stores the new password and clears the code together.
func (s *authService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	account, err := s.pendingReset(ctx, email, otp, "Invalid reset request")
	if err != nil {
		return err
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperr.Internal("Failed to reset password", err)
	}
	if err := s.accountRepo.ResetPassword(ctx, account.ID, hashed); err != nil {
		if apperr.IsNotFound(err) {
			return apperr.BadRequest("Invalid reset request")
		}
		return apperr.Internal("Failed to reset password", err)
	}
	return nil
}

// pendingReset loads the account holding a valid, matching, unexpired reset code.
func (s *authService) pendingReset(ctx context.Context, email, otp, noRequest string) (*model.Account, error) {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.BadRequest(noRequest)
		}
		return nil, apperr.Internal("Failed to verify OTP", err)
	}
	if !account.HasPendingOTP() {
		return nil, apperr.BadRequest(noRequest)
	}
	if subtle.ConstantTimeCompare([]byte(*account.OTP), []byte(otp)) != 1 {
		return nil, apperr.BadRequest("Invalid OTP")
	}
	if s.now().After(*account.OTPExpiry) {
		return nil, apperr.BadRequest("OTP expired")
	}
	return account, nil
}

func (s *authService) issue(account *model.Account) (*Session, error) {
	token, expiresAt, err := s.jwtService.Issue(account.ID)
	if err != nil {
		return nil, apperr.Internal("Failed to create session", err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}

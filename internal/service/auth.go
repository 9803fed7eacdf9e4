package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/logger"
	"jobunya-carrental-backend/internal/repository"
	"jobunya-carrental-backend/internal/security"
	"jobunya-carrental-backend/internal/session"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrTermsNotAccepted   = errors.New("terms and conditions must be accepted")
	ErrWrongOldPassword   = errors.New("old password is incorrect")
)

type authService struct {
	userRepo     repository.UserRepository
	sessions     session.Store
	tokens       security.TokenManager
	emailSvc     EmailService
	actionTokTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, sessions session.Store, tokens security.TokenManager, emailSvc EmailService, actionTokenTTL time.Duration) AuthService {
	return &authService{
		userRepo:     userRepo,
		sessions:     sessions,
		tokens:       tokens,
		emailSvc:     emailSvc,
		actionTokTTL: actionTokenTTL,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*domain.Session, error) {
	if in.Password != in.Password2 {
		return nil, ErrPasswordMismatch
	}
	if !in.AgreeTerms {
		return nil, ErrTermsNotAccepted
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FullName:      in.FullName,
		Email:         email,
		PhoneNumber:   in.PhoneNumber,
		LicenseNumber: in.LicenseNumber,
		PasswordHash:  string(hash),
		Role:          domain.RoleCustomer,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Verification email is best effort: a failed provider call must not
	// roll back a successful registration.
	if token, err := s.tokens.GenerateActionToken(user.ID, security.PurposeVerifyEmail, s.actionTokTTL); err == nil {
		if err := s.emailSvc.SendVerificationEmail(ctx, user.Email, user.FullName, user.ID, token); err != nil {
			logger.Warn("Failed to send verification email", "user_id", user.ID, "error", err)
		}
	}

	return s.sessions.Create(ctx, *user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.sessions.Create(ctx, *user)
}

// Logout deletes the server-side session. It never fails on an already-absent
// token: from the caller's point of view logout always succeeds locally.
func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		logger.Warn("Failed to delete session on logout", "error", err)
	}
	return nil
}

// RequestPasswordReset never reveals whether an account exists: an unknown
// email is treated the same as a successful request.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}

	token, err := s.tokens.GenerateActionToken(user.ID, security.PurposePasswordReset, s.actionTokTTL)
	if err != nil {
		return err
	}
	return s.emailSvc.SendPasswordResetEmail(ctx, user.Email, user.FullName, user.ID, token)
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, uid int32, token, newPassword, newPassword2 string) error {
	if newPassword != newPassword2 {
		return ErrPasswordMismatch
	}
	if _, err := s.tokens.ValidateActionToken(token, uid, security.PurposePasswordReset); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, uid, string(hash))
}

func (s *authService) VerifyEmail(ctx context.Context, uid int32, token string) error {
	if _, err := s.tokens.ValidateActionToken(token, uid, security.PurposeVerifyEmail); err != nil {
		return err
	}
	return s.userRepo.MarkEmailVerified(ctx, uid)
}

func (s *authService) ChangePassword(ctx context.Context, userID int32, oldPassword, newPassword, newPassword2 string) error {
	if newPassword != newPassword2 {
		return ErrPasswordMismatch
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrWrongOldPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

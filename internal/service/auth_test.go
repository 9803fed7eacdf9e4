package service

import (
	"context"
	"database/sql"
	"testing"

	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (*MockUserRepo, *MockSessionStore, *MockTokenManager, *MockEmailService, AuthService) {
	userRepo := new(MockUserRepo)
	sessions := new(MockSessionStore)
	tokens := new(MockTokenManager)
	emails := new(MockEmailService)
	svc := NewAuthService(userRepo, sessions, tokens, emails, 0)
	return userRepo, sessions, tokens, emails, svc
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	validInput := RegisterInput{
		FullName:   "Ada Smith",
		Email:      "Ada@Example.com",
		Password:   "secret123",
		Password2:  "secret123",
		AgreeTerms: true,
	}

	t.Run("Success", func(t *testing.T) {
		userRepo, sessions, tokens, emails, svc := newAuthFixture()

		userRepo.On("GetByEmail", ctx, "ada@example.com").Return(nil, sql.ErrNoRows)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 7
		}).Return(nil)
		tokens.On("GenerateActionToken", int32(7), security.PurposeVerifyEmail, mock.Anything).Return("signed", nil)
		emails.On("SendVerificationEmail", ctx, "ada@example.com", "Ada Smith", int32(7), "signed").Return(nil)
		sessions.On("Create", ctx, mock.AnythingOfType("domain.User")).Return(&domain.Session{Token: "tok", User: domain.User{ID: 7}}, nil)

		sess, err := svc.Register(ctx, validInput)
		assert.NoError(t, err)
		assert.Equal(t, "tok", sess.Token)
		userRepo.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})

	t.Run("PasswordMismatch", func(t *testing.T) {
		_, _, _, _, svc := newAuthFixture()
		in := validInput
		in.Password2 = "different"

		_, err := svc.Register(ctx, in)
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("TermsNotAccepted", func(t *testing.T) {
		_, _, _, _, svc := newAuthFixture()
		in := validInput
		in.AgreeTerms = false

		_, err := svc.Register(ctx, in)
		assert.ErrorIs(t, err, ErrTermsNotAccepted)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		userRepo, _, _, _, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "ada@example.com").Return(&domain.User{ID: 3}, nil)

		_, err := svc.Register(ctx, validInput)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	// A failed verification email must not fail the registration.
	t.Run("EmailProviderDown", func(t *testing.T) {
		userRepo, sessions, tokens, emails, svc := newAuthFixture()

		userRepo.On("GetByEmail", ctx, "ada@example.com").Return(nil, sql.ErrNoRows)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 7
		}).Return(nil)
		tokens.On("GenerateActionToken", int32(7), security.PurposeVerifyEmail, mock.Anything).Return("signed", nil)
		emails.On("SendVerificationEmail", ctx, "ada@example.com", "Ada Smith", int32(7), "signed").Return(assert.AnError)
		sessions.On("Create", ctx, mock.AnythingOfType("domain.User")).Return(&domain.Session{Token: "tok"}, nil)

		_, err := svc.Register(ctx, validInput)
		assert.NoError(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	user := &domain.User{ID: 7, Email: "ada@example.com", PasswordHash: string(hash), Role: domain.RoleCustomer}

	t.Run("Success", func(t *testing.T) {
		userRepo, sessions, _, _, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "ada@example.com").Return(user, nil)
		sessions.On("Create", ctx, *user).Return(&domain.Session{Token: "tok", User: *user}, nil)

		sess, err := svc.Login(ctx, "ada@example.com", "secret123")
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleCustomer, sess.User.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo, _, _, _, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "ada@example.com").Return(user, nil)

		_, err := svc.Login(ctx, "ada@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		userRepo, _, _, _, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, sql.ErrNoRows)

		_, err := svc.Login(ctx, "ghost@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	// Logout succeeds even when the store fails; the client side always ends
	// up logged out.
	t.Run("StoreFailureStillSucceeds", func(t *testing.T) {
		_, sessions, _, _, svc := newAuthFixture()
		sessions.On("Delete", ctx, "tok").Return(assert.AnError)

		assert.NoError(t, svc.Logout(ctx, "tok"))
	})
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownEmailIsSilent", func(t *testing.T) {
		userRepo, _, _, _, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, sql.ErrNoRows)

		assert.NoError(t, svc.RequestPasswordReset(ctx, "ghost@example.com"))
	})

	t.Run("KnownEmailSendsLink", func(t *testing.T) {
		userRepo, _, tokens, emails, svc := newAuthFixture()
		user := &domain.User{ID: 7, Email: "ada@example.com", FullName: "Ada Smith"}
		userRepo.On("GetByEmail", ctx, "ada@example.com").Return(user, nil)
		tokens.On("GenerateActionToken", int32(7), security.PurposePasswordReset, mock.Anything).Return("signed", nil)
		emails.On("SendPasswordResetEmail", ctx, "ada@example.com", "Ada Smith", int32(7), "signed").Return(nil)

		assert.NoError(t, svc.RequestPasswordReset(ctx, "ada@example.com"))
		emails.AssertExpectations(t)
	})
}

func TestAuthService_ConfirmPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo, _, tokens, _, svc := newAuthFixture()
		tokens.On("ValidateActionToken", "signed", int32(7), security.PurposePasswordReset).Return(&security.ActionClaims{UserID: 7}, nil)
		userRepo.On("UpdatePassword", ctx, int32(7), mock.AnythingOfType("string")).Return(nil)

		assert.NoError(t, svc.ConfirmPasswordReset(ctx, 7, "signed", "newpass1", "newpass1"))
	})

	t.Run("InvalidToken", func(t *testing.T) {
		_, _, tokens, _, svc := newAuthFixture()
		tokens.On("ValidateActionToken", "bad", int32(7), security.PurposePasswordReset).Return(nil, security.ErrInvalidToken)

		err := svc.ConfirmPasswordReset(ctx, 7, "bad", "newpass1", "newpass1")
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})

	// A verification token must not reset a password.
	t.Run("WrongPurposeToken", func(t *testing.T) {
		_, _, tokens, _, svc := newAuthFixture()
		tokens.On("ValidateActionToken", "verify-tok", int32(7), security.PurposePasswordReset).Return(nil, security.ErrWrongPurpose)

		err := svc.ConfirmPasswordReset(ctx, 7, "verify-tok", "newpass1", "newpass1")
		assert.ErrorIs(t, err, security.ErrWrongPurpose)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("oldpass"), bcrypt.MinCost)
	user := &domain.User{ID: 7, PasswordHash: string(hash)}

	t.Run("Success", func(t *testing.T) {
		userRepo, _, _, _, svc := newAuthFixture()
		userRepo.On("GetByID", ctx, int32(7)).Return(user, nil)
		userRepo.On("UpdatePassword", ctx, int32(7), mock.AnythingOfType("string")).Return(nil)

		assert.NoError(t, svc.ChangePassword(ctx, 7, "oldpass", "newpass1", "newpass1"))
	})

	t.Run("WrongOldPassword", func(t *testing.T) {
		userRepo, _, _, _, svc := newAuthFixture()
		userRepo.On("GetByID", ctx, int32(7)).Return(user, nil)

		err := svc.ChangePassword(ctx, 7, "not-it", "newpass1", "newpass1")
		assert.ErrorIs(t, err, ErrWrongOldPassword)
	})
}

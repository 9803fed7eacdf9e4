package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"jobunya-carrental-backend/internal/security"
	"jobunya-carrental-backend/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
	userSvc service.UserService
}

func NewAuthHandler(authSvc service.AuthService, userSvc service.UserService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, userSvc: userSvc}
}

// Register creates a customer account and returns a live session, so the
// client is signed in immediately after signup.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	sess, err := h.authSvc.Register(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			writeFieldErrors(w, fieldError("password2", "Passwords do not match."))
		case errors.Is(err, service.ErrTermsNotAccepted):
			writeFieldErrors(w, fieldError("agree_terms", "You must accept the terms and conditions."))
		case errors.Is(err, service.ErrEmailTaken):
			writeFieldErrors(w, fieldError("email", "A user with this email already exists."))
		default:
			writeDetail(w, http.StatusInternalServerError, "Registration failed.")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"token": sess.Token,
		"user":  sess.User,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	sess, err := h.authSvc.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeFieldErrors(w, fieldError("non_field_errors", "Unable to log in with provided credentials."))
			return
		}
		writeDetail(w, http.StatusInternalServerError, "Login failed.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": sess.Token,
		"user":  sess.User,
	})
}

// Logout deletes the caller's server-side session. It responds 200 even when
// the session was already gone; the client discards its token either way.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := extractToken(r); token != "" {
		_ = h.authSvc.Logout(r.Context(), token)
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "Successfully logged out."})
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var in passwordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Email == "" {
		writeFieldErrors(w, fieldError("email", "This field is required."))
		return
	}

	if err := h.authSvc.RequestPasswordReset(r.Context(), in.Email); err != nil {
		writeDetail(w, http.StatusInternalServerError, "Could not send reset email.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"detail": "If an account with that email exists, a reset link has been sent.",
	})
}

type passwordResetConfirmRequest struct {
	UID          int32  `json:"uid"`
	Token        string `json:"token"`
	NewPassword  string `json:"new_password"`
	NewPassword2 string `json:"new_password2"`
}

func (h *AuthHandler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var in passwordResetConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	err := h.authSvc.ConfirmPasswordReset(r.Context(), in.UID, in.Token, in.NewPassword, in.NewPassword2)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			writeFieldErrors(w, fieldError("new_password2", "Passwords do not match."))
		case isActionTokenError(err):
			writeFieldErrors(w, fieldError("token", "Invalid or expired reset link."))
		default:
			writeDetail(w, http.StatusInternalServerError, "Password reset failed.")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "Password has been reset."})
}

type verifyEmailRequest struct {
	UID   int32  `json:"uid"`
	Token string `json:"token"`
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var in verifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := h.authSvc.VerifyEmail(r.Context(), in.UID, in.Token); err != nil {
		if isActionTokenError(err) {
			writeFieldErrors(w, fieldError("token", "Invalid or expired verification link."))
			return
		}
		writeDetail(w, http.StatusInternalServerError, "Email verification failed.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "Email verified."})
}

// Me returns the caller's profile, refreshed from the database rather than
// echoed from the session snapshot.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, detailNoCredentials)
		return
	}

	user, err := h.userSvc.GetProfile(r.Context(), sess.User.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeDetail(w, http.StatusNotFound, detailNotFound)
			return
		}
		writeDetail(w, http.StatusInternalServerError, "Could not load profile.")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type changePasswordRequest struct {
	OldPassword  string `json:"old_password"`
	NewPassword  string `json:"new_password"`
	NewPassword2 string `json:"new_password2"`
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, detailNoCredentials)
		return
	}

	var in changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	err := h.authSvc.ChangePassword(r.Context(), sess.User.ID, in.OldPassword, in.NewPassword, in.NewPassword2)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			writeFieldErrors(w, fieldError("new_password2", "Passwords do not match."))
		case errors.Is(err, service.ErrWrongOldPassword):
			writeFieldErrors(w, fieldError("old_password", "Old password is incorrect."))
		default:
			writeDetail(w, http.StatusInternalServerError, "Password change failed.")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "Password changed."})
}

func (h *AuthHandler) CustomerList(w http.ResponseWriter, r *http.Request) {
	customers, err := h.userSvc.ListCustomers(r.Context())
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Could not load customers.")
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func isActionTokenError(err error) bool {
	return errors.Is(err, security.ErrInvalidToken) ||
		errors.Is(err, security.ErrExpiredToken) ||
		errors.Is(err, security.ErrWrongPurpose) ||
		errors.Is(err, security.ErrUserMismatch)
}

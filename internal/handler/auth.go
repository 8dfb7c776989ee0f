package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taskdeck/taskdeck/internal/ctxkeys"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/internal/validation"
)

type authHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *authHandler {
	return &authHandler{authService: authService}
}

type registerRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func (req *registerRequest) validate() map[string]string {
	errs := map[string]string{}
	if err := validation.ValidateLogin(req.Login); err != nil {
		errs["login"] = err.Error()
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		errs["password"] = err.Error()
	}
	if err := validation.ValidateEmail(strings.TrimSpace(req.Email)); err != nil {
		errs["email"] = err.Error()
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Register creates a pending user and triggers the verification email.
func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Request body must be valid JSON.")
		return
	}

	if errs := req.validate(); errs != nil {
		writeValidationProblem(w, errs)
		return
	}

	_, err := h.authService.Register(strings.TrimSpace(req.Login), req.Password, req.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			writeProblem(w, http.StatusConflict, "A user with this email already exists.")
			return
		}
		slog.Error("registration failed", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Registration failed.")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"verification_status": "pending",
		"message":             "Verification email sent. Please check your inbox.",
	})
}

// VerifyEmail consumes the raw token from the verification link.
func (h *authHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	rawToken := r.PathValue("token")

	_, err := h.authService.Verify(rawToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenInvalid):
			writeProblem(w, http.StatusUnprocessableEntity, "The verification token is invalid.")
		case errors.Is(err, service.ErrTokenUsed):
			writeProblem(w, http.StatusUnprocessableEntity, "The verification token has already been used.")
		case errors.Is(err, service.ErrTokenExpired):
			writeProblem(w, http.StatusUnprocessableEntity, "The verification token has expired.")
		default:
			slog.Error("verification failed", "error", err)
			writeProblem(w, http.StatusInternalServerError, "Verification failed.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Your email has been verified.",
	})
}

type resendRequest struct {
	Email string `json:"email"`
}

// ResendVerification reissues a verification token for a pending user.
func (h *authHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
	if err := decodeJSON(r, &req); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Request body must be valid JSON.")
		return
	}

	if err := validation.ValidateEmail(strings.TrimSpace(req.Email)); err != nil {
		writeValidationProblem(w, map[string]string{"email": err.Error()})
		return
	}

	err := h.authService.Resend(strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeProblem(w, http.StatusNotFound, "No user is registered with this email.")
			return
		}
		slog.Error("resend verification failed", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not resend the verification email.")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"verification_status": "pending",
		"message":             "Verification email sent. Please check your inbox.",
	})
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Login exchanges credentials for the user's API token.
func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Request body must be valid JSON.")
		return
	}

	user, err := h.authService.Login(strings.TrimSpace(req.Login), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeProblem(w, http.StatusBadRequest, "Incorrect login or password.")
			return
		}
		slog.Error("login failed", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Login failed.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": user.APIToken})
}

// Logout rotates the caller's API token, invalidating the presented one.
func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.authService.Logout(user); err != nil {
		slog.Error("logout failed", "error", err, "user_id", user.ID)
		writeProblem(w, http.StatusInternalServerError, "Logout failed.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

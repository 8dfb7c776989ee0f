package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/service"
)

type userHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *userHandler {
	return &userHandler{userService: userService}
}

// userView deliberately omits the password hash and the API token.
type userView struct {
	ID        string    `json:"id"`
	Login     string    `json:"login"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func formatUser(user *model.User) *userView {
	status := "waiting_verification"
	if user.Status == model.UserStatusActive {
		status = "active"
	}

	return &userView{
		ID:        user.ID,
		Login:     user.Login,
		Email:     user.Email,
		Status:    status,
		CreatedAt: user.CreatedAt,
	}
}

func (h *userHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.Users()
	if err != nil {
		slog.Error("failed to list users", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not list users.")
		return
	}

	views := make([]*userView, 0, len(users))
	for _, user := range users {
		views = append(views, formatUser(user))
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": views})
}

func (h *userHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.ByID(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeProblem(w, http.StatusNotFound, "User not found.")
			return
		}
		slog.Error("failed to load user", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not load the user.")
		return
	}

	writeJSON(w, http.StatusOK, formatUser(user))
}

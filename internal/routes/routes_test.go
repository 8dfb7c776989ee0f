package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/internal/app"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/event"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/internal/testdb"
)

func newTestHandler(t *testing.T) (http.Handler, *model.User) {
	t.Helper()

	conn := testdb.New(t)
	userRepository := repository.NewUserRepository(conn)
	tokenRepository := repository.NewTokenRepository(conn)
	cardRepository := repository.NewCardRepository(conn)
	tagRepository := repository.NewTagRepository(conn)
	checklistRepository := repository.NewChecklistRepository(conn)
	checklistItemRepository := repository.NewChecklistItemRepository(conn)
	postRepository := repository.NewPostRepository(conn)

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Login:        "alice",
		Email:        "a@x.com",
		PasswordHash: "hash",
		Status:       model.UserStatusActive,
		APIToken:     "test-api-key",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, userRepository.Create(user))

	application := &app.App{
		Cfg: &config.Config{
			AppName:           "Taskdeck",
			AppEnv:            "development",
			AppURL:            "https://taskdeck.test",
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
		},
		DB: conn,
		AuthService: service.NewAuthService(
			conn,
			userRepository,
			tokenRepository,
			event.NewDispatcher(),
			24*time.Hour,
		),
		UserService: service.NewUserService(userRepository),
		CardService: service.NewCardService(
			conn,
			cardRepository,
			tagRepository,
			checklistRepository,
			checklistItemRepository,
		),
		ChecklistService: service.NewChecklistService(
			checklistRepository,
			checklistItemRepository,
			cardRepository,
		),
		ChecklistItemService: service.NewChecklistItemService(
			checklistItemRepository,
			checklistRepository,
		),
		BlogService: service.NewBlogService(postRepository),
	}

	return SetupRoutes(application), user
}

// The /api group mirrors the original routing table: no authentication.
func TestRoutes_CardAPIIsPublic(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/cards",
		strings.NewReader(`{"title":"anonymous card"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cards", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_ProtectedRoutesRequireKey(t *testing.T) {
	handler, user := newTestHandler(t)

	protected := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/users/"},
		{http.MethodPost, "/logout/"},
		{http.MethodPost, "/blog/"},
	}

	for _, route := range protected {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(route.method, route.target, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.target)
	}

	// A valid key passes.
	req := httptest.NewRequest(http.MethodGet, "/users/", nil)
	req.Header.Set("X-Api-Key", user.APIToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

package routes

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/app"
	"github.com/taskdeck/taskdeck/internal/handler"
	"github.com/taskdeck/taskdeck/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	info := handler.NewInfoHandler(app.Cfg.AppName)
	auth := handler.NewAuthHandler(app.AuthService)
	user := handler.NewUserHandler(app.UserService)
	card := handler.NewCardHandler(app.CardService)
	checklist := handler.NewChecklistHandler(app.ChecklistService)
	checklistItem := handler.NewChecklistItemHandler(app.ChecklistItemService)
	blog := handler.NewBlogHandler(app.BlogService)

	mux := http.NewServeMux()

	// Registration and resend share one per-IP budget
	rateLimiter := middleware.RateLimit(
		middleware.NewRateLimiter(app.Cfg.RateLimitRequests, app.Cfg.RateLimitWindow),
	)

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /{$}", info.Info)

	// Account lifecycle
	mux.HandleFunc("POST /register/{$}", rateLimiter(auth.Register))
	mux.HandleFunc("GET /verify-email/{token}", auth.VerifyEmail)
	mux.HandleFunc("POST /resend-verification", rateLimiter(auth.ResendVerification))
	mux.HandleFunc("POST /auth/{$}", auth.Login)

	// Blog
	mux.HandleFunc("GET /blog/{$}", blog.List)
	mux.HandleFunc("GET /blog/{id}", blog.Get)

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	mux.HandleFunc("POST /logout/{$}", middleware.RequireAuth(auth.Logout))

	mux.HandleFunc("POST /blog/{$}", middleware.RequireAuth(blog.Create))
	mux.HandleFunc("PUT /blog/{id}", middleware.RequireAuth(blog.Update))

	mux.HandleFunc("GET /users/{$}", middleware.RequireAuth(user.List))
	mux.HandleFunc("GET /users/{id}", middleware.RequireAuth(user.Get))

	// Cards
	mux.HandleFunc("GET /api/cards", card.List)
	mux.HandleFunc("POST /api/cards", card.Create)
	mux.HandleFunc("GET /api/cards/{id}", card.Get)
	mux.HandleFunc("PUT /api/cards/{id}", card.Update)
	mux.HandleFunc("DELETE /api/cards/{id}", card.Delete)

	// Checklists
	mux.HandleFunc("GET /api/cards/{cardId}/checklists", checklist.ListByCard)
	mux.HandleFunc("POST /api/cards/{cardId}/checklists", checklist.Create)
	mux.HandleFunc("GET /api/checklists/{id}", checklist.Get)
	mux.HandleFunc("PUT /api/checklists/{id}", checklist.Update)
	mux.HandleFunc("DELETE /api/checklists/{id}", checklist.Delete)

	// Checklist items
	mux.HandleFunc("POST /api/checklists/{id}/items", checklistItem.Create)
	mux.HandleFunc("PUT /api/checklist-items/{id}", checklistItem.Update)
	mux.HandleFunc("PATCH /api/checklist-items/{id}", checklistItem.Toggle)
	mux.HandleFunc("DELETE /api/checklist-items/{id}", checklistItem.Delete)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.APIKeyAuth(app.UserService),
	)
}

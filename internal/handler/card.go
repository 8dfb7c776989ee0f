package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/service"
)

type cardHandler struct {
	cardService *service.CardService
}

func NewCardHandler(cardService *service.CardService) *cardHandler {
	return &cardHandler{cardService: cardService}
}

type cardRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Tags        []string   `json:"tags"`
}

func (req *cardRequest) validate() map[string]string {
	errs := map[string]string{}
	if req.Title == "" {
		errs["title"] = "title is required"
	}
	switch req.Status {
	case "", model.CardStatusTodo, model.CardStatusInProgress, model.CardStatusDone:
	default:
		errs["status"] = "status must be one of: todo, in_progress, done"
	}
	switch req.Priority {
	case "", model.CardPriorityLow, model.CardPriorityMedium, model.CardPriorityHigh:
	default:
		errs["priority"] = "priority must be one of: low, medium, high"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (req *cardRequest) toInput() service.CardInput {
	return service.CardInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	}
}

type cardView struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Status      string           `json:"status"`
	Priority    string           `json:"priority"`
	DueDate     *time.Time       `json:"due_date"`
	Tags        []string         `json:"tags"`
	Checklists  []*checklistView `json:"checklists,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func formatCard(card *model.Card) *cardView {
	tags := make([]string, 0, len(card.Tags))
	for _, tag := range card.Tags {
		tags = append(tags, tag.Name)
	}

	var checklists []*checklistView
	for _, checklist := range card.Checklists {
		checklists = append(checklists, formatChecklist(checklist))
	}

	return &cardView{
		ID:          card.ID,
		Title:       card.Title,
		Description: card.Description,
		Status:      card.Status,
		Priority:    card.Priority,
		DueDate:     card.DueDate,
		Tags:        tags,
		Checklists:  checklists,
		CreatedAt:   card.CreatedAt,
		UpdatedAt:   card.UpdatedAt,
	}
}

// List returns one page of cards.
func (h *cardHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	result, err := h.cardService.Cards(page)
	if err != nil {
		slog.Error("failed to list cards", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not list cards.")
		return
	}

	cards := make([]*cardView, 0, len(result.Cards))
	for _, card := range result.Cards {
		cards = append(cards, formatCard(card))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"cards":       cards,
		"page":        result.Page,
		"page_size":   result.PageSize,
		"total_count": result.TotalCount,
		"total_pages": result.TotalPages(),
	})
}

// Get returns a single card with tags, checklists and items.
func (h *cardHandler) Get(w http.ResponseWriter, r *http.Request) {
	card, err := h.cardService.Card(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrCardNotFound) {
			writeProblem(w, http.StatusNotFound, "Card not found.")
			return
		}
		slog.Error("failed to load card", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not load the card.")
		return
	}

	writeJSON(w, http.StatusOK, formatCard(card))
}

func (h *cardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Request body must be valid JSON.")
		return
	}
	if errs := req.validate(); errs != nil {
		writeValidationProblem(w, errs)
		return
	}

	card, err := h.cardService.Create(req.toInput())
	if err != nil {
		slog.Error("failed to create card", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not create the card.")
		return
	}

	writeJSON(w, http.StatusCreated, formatCard(card))
}

func (h *cardHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Request body must be valid JSON.")
		return
	}
	if errs := req.validate(); errs != nil {
		writeValidationProblem(w, errs)
		return
	}

	card, err := h.cardService.Update(r.PathValue("id"), req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrCardNotFound) {
			writeProblem(w, http.StatusNotFound, "Card not found.")
			return
		}
		slog.Error("failed to update card", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not update the card.")
		return
	}

	writeJSON(w, http.StatusOK, formatCard(card))
}

func (h *cardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.cardService.Delete(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrCardNotFound) {
			writeProblem(w, http.StatusNotFound, "Card not found.")
			return
		}
		slog.Error("failed to delete card", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not delete the card.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

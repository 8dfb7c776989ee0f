package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/service"
)

type checklistHandler struct {
	checklistService *service.ChecklistService
}

func NewChecklistHandler(checklistService *service.ChecklistService) *checklistHandler {
	return &checklistHandler{checklistService: checklistService}
}

type checklistRequest struct {
	Title string `json:"title"`
}

type checklistView struct {
	ID                   string               `json:"id"`
	CardID               string               `json:"card_id"`
	Title                string               `json:"title"`
	Items                []*checklistItemView `json:"items"`
	CompletedItemsCount  int                  `json:"completed_items_count"`
	TotalItemsCount      int                  `json:"total_items_count"`
	CompletionPercentage float64              `json:"completion_percentage"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

func formatChecklist(checklist *model.Checklist) *checklistView {
	items := make([]*checklistItemView, 0, len(checklist.Items))
	for _, item := range checklist.Items {
		items = append(items, formatChecklistItem(item))
	}

	return &checklistView{
		ID:                   checklist.ID,
		CardID:               checklist.CardID,
		Title:                checklist.Title,
		Items:                items,
		CompletedItemsCount:  checklist.CompletedItemsCount(),
		TotalItemsCount:      checklist.TotalItemsCount(),
		CompletionPercentage: checklist.CompletionPercentage(),
		CreatedAt:            checklist.CreatedAt,
		UpdatedAt:            checklist.UpdatedAt,
	}
}

// ListByCard returns all checklists of a card with their items.
func (h *checklistHandler) ListByCard(w http.ResponseWriter, r *http.Request) {
	checklists, err := h.checklistService.ByCard(r.PathValue("cardId"))
	if err != nil {
		if errors.Is(err, service.ErrCardNotFound) {
			writeProblem(w, http.StatusNotFound, "Card not found.")
			return
		}
		slog.Error("failed to list checklists", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not list checklists.")
		return
	}

	views := make([]*checklistView, 0, len(checklists))
	for _, checklist := range checklists {
		views = append(views, formatChecklist(checklist))
	}

	writeJSON(w, http.StatusOK, map[string]any{"checklists": views})
}

func (h *checklistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req checklistRequest
	if err := decodeJSON(r, &req); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Request body must be valid JSON.")
		return
	}
	if req.Title == "" {
		writeValidationProblem(w, map[string]string{"title": "title is required"})
		return
	}

	checklist, err := h.checklistService.Create(r.PathValue("cardId"), req.Title)
	if err != nil {
		if errors.Is(err, service.ErrCardNotFound) {
			writeProblem(w, http.StatusNotFound, "Card not found.")
			return
		}
		slog.Error("failed to create checklist", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not create the checklist.")
		return
	}

	writeJSON(w, http.StatusCreated, formatChecklist(checklist))
}

func (h *checklistHandler) Get(w http.ResponseWriter, r *http.Request) {
	checklist, err := h.checklistService.Checklist(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrChecklistNotFound) {
			writeProblem(w, http.StatusNotFound, "Checklist not found.")
			return
		}
		slog.Error("failed to load checklist", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not load the checklist.")
		return
	}

	writeJSON(w, http.StatusOK, formatChecklist(checklist))
}

func (h *checklistHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req checklistRequest
	if err := decodeJSON(r, &req); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Request body must be valid JSON.")
		return
	}
	if req.Title == "" {
		writeValidationProblem(w, map[string]string{"title": "title is required"})
		return
	}

	checklist, err := h.checklistService.Update(r.PathValue("id"), req.Title)
	if err != nil {
		if errors.Is(err, service.ErrChecklistNotFound) {
			writeProblem(w, http.StatusNotFound, "Checklist not found.")
			return
		}
		slog.Error("failed to update checklist", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not update the checklist.")
		return
	}

	writeJSON(w, http.StatusOK, formatChecklist(checklist))
}

func (h *checklistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.checklistService.Delete(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrChecklistNotFound) {
			writeProblem(w, http.StatusNotFound, "Checklist not found.")
			return
		}
		slog.Error("failed to delete checklist", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not delete the checklist.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

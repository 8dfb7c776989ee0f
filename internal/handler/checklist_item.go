package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/service"
)

type checklistItemHandler struct {
	itemService *service.ChecklistItemService
}

func NewChecklistItemHandler(itemService *service.ChecklistItemService) *checklistItemHandler {
	return &checklistItemHandler{itemService: itemService}
}

type checklistItemRequest struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type checklistItemView struct {
	ID          string    `json:"id"`
	ChecklistID string    `json:"checklist_id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func formatChecklistItem(item *model.ChecklistItem) *checklistItemView {
	return &checklistItemView{
		ID:          item.ID,
		ChecklistID: item.ChecklistID,
		Description: item.Description,
		Completed:   item.Completed,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// Create adds an item to a checklist.
func (h *checklistItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req checklistItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Request body must be valid JSON.")
		return
	}
	if req.Description == "" {
		writeValidationProblem(w, map[string]string{"description": "description is required"})
		return
	}

	item, err := h.itemService.Create(r.PathValue("id"), req.Description, req.Completed)
	if err != nil {
		if errors.Is(err, service.ErrChecklistNotFound) {
			writeProblem(w, http.StatusNotFound, "Checklist not found.")
			return
		}
		slog.Error("failed to create checklist item", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not create the checklist item.")
		return
	}

	writeJSON(w, http.StatusCreated, formatChecklistItem(item))
}

func (h *checklistItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req checklistItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Request body must be valid JSON.")
		return
	}
	if req.Description == "" {
		writeValidationProblem(w, map[string]string{"description": "description is required"})
		return
	}

	item, err := h.itemService.Update(r.PathValue("id"), req.Description, req.Completed)
	if err != nil {
		if errors.Is(err, service.ErrChecklistItemNotFound) {
			writeProblem(w, http.StatusNotFound, "Checklist item not found.")
			return
		}
		slog.Error("failed to update checklist item", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not update the checklist item.")
		return
	}

	writeJSON(w, http.StatusOK, formatChecklistItem(item))
}

// Toggle flips the item's completed flag.
func (h *checklistItemHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	item, err := h.itemService.Toggle(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrChecklistItemNotFound) {
			writeProblem(w, http.StatusNotFound, "Checklist item not found.")
			return
		}
		slog.Error("failed to toggle checklist item", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not toggle the checklist item.")
		return
	}

	writeJSON(w, http.StatusOK, formatChecklistItem(item))
}

func (h *checklistItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.itemService.Delete(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrChecklistItemNotFound) {
			writeProblem(w, http.StatusNotFound, "Checklist item not found.")
			return
		}
		slog.Error("failed to delete checklist item", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not delete the checklist item.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

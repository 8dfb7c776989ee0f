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

type blogHandler struct {
	blogService *service.BlogService
}

func NewBlogHandler(blogService *service.BlogService) *blogHandler {
	return &blogHandler{blogService: blogService}
}

type postRequest struct {
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Status *model.PostStatus `json:"status"`
}

func (req *postRequest) validate() map[string]string {
	errs := map[string]string{}
	if req.Title == "" {
		errs["title"] = "title is required"
	}
	if req.Body == "" {
		errs["body"] = "body is required"
	}
	if req.Status != nil {
		switch *req.Status {
		case model.PostStatusPublic, model.PostStatusDraft, model.PostStatusDeleted:
		default:
			errs["status"] = "status must be 0 (public), 1 (draft) or 2 (deleted)"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (req *postRequest) toInput() service.PostInput {
	status := model.PostStatusPublic
	if req.Status != nil {
		status = *req.Status
	}
	return service.PostInput{
		Title:  req.Title,
		Body:   req.Body,
		Status: status,
	}
}

type postView struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	BodyHTML  string           `json:"body_html,omitempty"`
	Status    model.PostStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (h *blogHandler) formatPost(post *model.Post, rendered bool) (*postView, error) {
	view := &postView{
		ID:        post.ID,
		Title:     post.Title,
		Body:      post.Body,
		Status:    post.Status,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}

	if rendered {
		html, err := h.blogService.RenderBody(post)
		if err != nil {
			return nil, err
		}
		view.BodyHTML = html
	}

	return view, nil
}

// List returns one page of posts. Bodies stay raw markdown in the index.
func (h *blogHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	result, err := h.blogService.Posts(page)
	if err != nil {
		slog.Error("failed to list posts", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not list posts.")
		return
	}

	posts := make([]*postView, 0, len(result.Posts))
	for _, post := range result.Posts {
		view, viewErr := h.formatPost(post, false)
		if viewErr != nil {
			slog.Error("failed to format post", "error", viewErr, "post_id", post.ID)
			writeProblem(w, http.StatusInternalServerError, "Could not list posts.")
			return
		}
		posts = append(posts, view)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"posts":       posts,
		"page":        result.Page,
		"page_size":   result.PageSize,
		"total_count": result.TotalCount,
		"total_pages": result.TotalPages(),
	})
}

// Get returns a single post with the body rendered to HTML.
func (h *blogHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.blogService.Post(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeProblem(w, http.StatusNotFound, "Post not found.")
			return
		}
		slog.Error("failed to load post", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not load the post.")
		return
	}

	view, err := h.formatPost(post, true)
	if err != nil {
		slog.Error("failed to render post", "error", err, "post_id", post.ID)
		writeProblem(w, http.StatusInternalServerError, "Could not render the post.")
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *blogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Request body must be valid JSON.")
		return
	}
	if errs := req.validate(); errs != nil {
		writeValidationProblem(w, errs)
		return
	}

	post, err := h.blogService.Create(req.toInput())
	if err != nil {
		slog.Error("failed to create post", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not create the post.")
		return
	}

	view, err := h.formatPost(post, false)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Could not create the post.")
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

func (h *blogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Request body must be valid JSON.")
		return
	}
	if errs := req.validate(); errs != nil {
		writeValidationProblem(w, errs)
		return
	}

	post, err := h.blogService.Update(r.PathValue("id"), req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeProblem(w, http.StatusNotFound, "Post not found.")
			return
		}
		slog.Error("failed to update post", "error", err)
		writeProblem(w, http.StatusInternalServerError, "Could not update the post.")
		return
	}

	view, err := h.formatPost(post, false)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Could not update the post.")
		return
	}

	writeJSON(w, http.StatusOK, view)
}

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ProblemDetails is the RFC 7807 error document returned by every failing
// endpoint.
type ProblemDetails struct {
	Type   string            `json:"type,omitempty"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeProblem(w http.ResponseWriter, status int, detail string) {
	writeProblemDetails(w, ProblemDetails{
		Type:   problemType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}

// writeValidationProblem returns a 422 with per-field messages.
func writeValidationProblem(w http.ResponseWriter, errors map[string]string) {
	writeProblemDetails(w, ProblemDetails{
		Type:   "/docs/errors/validation",
		Title:  "Unprocessable Entity",
		Status: http.StatusUnprocessableEntity,
		Detail: "The request body failed validation.",
		Errors: errors,
	})
}

func writeProblemDetails(w http.ResponseWriter, problem ProblemDetails) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	if err := json.NewEncoder(w).Encode(problem); err != nil {
		slog.Error("failed to encode problem response", "error", err)
	}
}

func problemType(status int) string {
	switch status {
	case http.StatusNotFound:
		return "/docs/errors/not-found"
	case http.StatusConflict:
		return "/docs/errors/conflict"
	case http.StatusUnauthorized:
		return "/docs/errors/unauthorized"
	case http.StatusUnprocessableEntity:
		return "/docs/errors/validation"
	default:
		return "/docs/errors/internal"
	}
}

// decodeJSON reads a JSON request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

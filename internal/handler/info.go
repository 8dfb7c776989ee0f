package handler

import "net/http"

// Version is overridable at build time with
// -ldflags "-X github.com/taskdeck/taskdeck/internal/handler.Version=..."
var Version = "dev"

type infoHandler struct {
	appName string
}

func NewInfoHandler(appName string) *infoHandler {
	return &infoHandler{appName: appName}
}

func (h *infoHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":    h.appName,
		"version": Version,
	})
}

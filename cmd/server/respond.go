package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Simplici0/vitrea/internal/project"
	"github.com/Simplici0/vitrea/internal/quote"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v before committing status, so a value that cannot be
// encoded is answered with 500 instead of an empty body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode response failed", "err", err)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Error: "failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeProject reads a project from the request body. With ?strict=1 every
// style code must use only known pane tokens.
func decodeProject(w http.ResponseWriter, r *http.Request) (project.Project, bool) {
	p, err := project.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return project.Project{}, false
	}
	if strictRequested(r) {
		if err := quote.CheckStyles(p); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return project.Project{}, false
		}
	}
	return p, true
}

func strictRequested(r *http.Request) bool {
	switch r.URL.Query().Get("strict") {
	case "1", "true", "yes":
		return true
	}
	return false
}

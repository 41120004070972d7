package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/vitrea/internal/estimate"
	"github.com/Simplici0/vitrea/internal/project"
	"github.com/Simplici0/vitrea/internal/quote"
	"github.com/Simplici0/vitrea/internal/store"
)

const errOutOfRange = "project totals are out of range"

type estimateResponse struct {
	Breakdown estimate.Breakdown `json:"breakdown"`
	Rounded   estimate.Breakdown `json:"rounded"`
	Skipped   []quote.Skipped    `json:"skipped"`
}

type planResponse struct {
	Openings []quote.OpeningSheet `json:"openings"`
	Skipped  []quote.Skipped      `json:"skipped"`
}

type saveQuoteRequest struct {
	Name    string          `json:"name"`
	Notes   string          `json:"notes"`
	Project json.RawMessage `json:"project"`
}

type quoteResponse struct {
	store.Record
	Rounded estimate.Breakdown `json:"rounded"`
	Project project.Request    `json:"project"`
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeProject(w, r)
	if !ok {
		return
	}

	q := s.svc.Build(p)
	if !q.Breakdown.Finite() {
		writeError(w, http.StatusUnprocessableEntity, errOutOfRange)
		return
	}
	writeJSON(w, http.StatusOK, estimateResponse{Breakdown: q.Breakdown, Rounded: q.Rounded, Skipped: q.Skipped})
}

func (s *server) handlePlan(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeProject(w, r)
	if !ok {
		return
	}

	q := s.svc.Build(p)
	writeJSON(w, http.StatusOK, planResponse{Openings: q.Openings, Skipped: q.Skipped})
}

func (s *server) handleQuoteCreate(w http.ResponseWriter, r *http.Request) {
	var req saveQuoteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode quote: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(req.Project) == 0 {
		writeError(w, http.StatusBadRequest, "project is required")
		return
	}

	p, err := project.Decode(bytes.NewReader(req.Project))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strictRequested(r) {
		if err := quote.CheckStyles(p); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	breakdown := s.svc.Estimate(p)
	if !breakdown.Finite() {
		writeError(w, http.StatusUnprocessableEntity, errOutOfRange)
		return
	}

	rec, err := s.quotes.Save(r.Context(), req.Name, req.Notes, p, breakdown)
	if err != nil {
		s.serverError(w, r, "save quote", err)
		return
	}
	writeJSON(w, http.StatusCreated, newQuoteResponse(rec))
}

func (s *server) handleQuoteList(w http.ResponseWriter, r *http.Request) {
	items, err := s.quotes.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.serverError(w, r, "list quotes", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *server) handleQuoteGet(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookupQuote(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newQuoteResponse(rec))
}

// lookupQuote resolves the {id} URL parameter, answering 404 or 500 itself
// when it cannot.
func (s *server) lookupQuote(w http.ResponseWriter, r *http.Request) (store.Record, bool) {
	rec, err := s.quotes.Lookup(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "quote not found")
		return store.Record{}, false
	}
	if err != nil {
		s.serverError(w, r, "load quote", err)
		return store.Record{}, false
	}
	return rec, true
}

func (s *server) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.logger.Error(op+" failed", "err", err, "path", r.URL.Path)
	writeError(w, http.StatusInternalServerError, "failed to "+op)
}

func newQuoteResponse(rec store.Record) quoteResponse {
	return quoteResponse{Record: rec, Rounded: rec.Breakdown.Rounded(), Project: project.ToRequest(rec.Project)}
}

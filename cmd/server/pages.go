package main

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/Simplici0/vitrea/internal/document"
	"github.com/Simplici0/vitrea/internal/quote"
	"github.com/Simplici0/vitrea/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).ParseFS(templateFS, "templates/*.html"))

type baseViewData struct {
	ErrorMessage string
	User         string
}

type loginViewData struct {
	baseViewData
	Email string
}

type quotesViewData struct {
	baseViewData
	Query  string
	Quotes []store.ListItem
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/quotes", http.StatusSeeOther)
}

func (s *server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.auth.currentUser(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderTemplate(w, http.StatusOK, "login.html", loginViewData{})
}

func (s *server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	valid, err := s.auth.validateCredentials(r.Context(), email, r.FormValue("password"))
	if err != nil {
		s.logger.Error("validate credentials failed", "err", err)
		http.Error(w, "authentication error", http.StatusInternalServerError)
		return
	}
	if !valid {
		s.renderTemplate(w, http.StatusUnauthorized, "login.html", loginViewData{
			baseViewData: baseViewData{ErrorMessage: "Invalid email or password."},
			Email:        email,
		})
		return
	}

	if err := s.auth.startSession(w, r, email); err != nil {
		s.logger.Error("start session failed", "err", err)
		http.Error(w, "authentication error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.endSession(w, r); err != nil {
		s.logger.Warn("end session failed", "err", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *server) handleQuotesPage(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	items, err := s.quotes.List(r.Context(), query)
	if err != nil {
		s.logger.Error("list quotes failed", "err", err)
		http.Error(w, "failed to load quotes", http.StatusInternalServerError)
		return
	}

	user, _ := s.auth.currentUser(r)
	s.renderTemplate(w, http.StatusOK, "quotes.html", quotesViewData{
		baseViewData: baseViewData{User: user},
		Query:        query,
		Quotes:       items,
	})
}

func (s *server) handleQuoteDetail(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookupQuote(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := document.HTML(&buf, s.storedQuote(rec), metaOf(rec)); err != nil {
		s.serverError(w, r, "render quote", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookupQuote(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := document.Text(&buf, s.storedQuote(rec), metaOf(rec)); err != nil {
		s.serverError(w, r, "render quote", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *server) handleQuotePDF(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookupQuote(w, r)
	if !ok {
		return
	}

	var page bytes.Buffer
	if err := document.HTML(&page, s.storedQuote(rec), metaOf(rec)); err != nil {
		s.serverError(w, r, "render quote", err)
		return
	}
	pdf, err := s.pdf(r.Context(), page.Bytes())
	if err != nil {
		s.serverError(w, r, "render pdf", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="quote-%d-v%d.pdf"`, rec.ID, rec.Version))
	_, _ = w.Write(pdf)
}

func (s *server) storedQuote(rec store.Record) quote.Quote {
	return s.svc.Rebuild(rec.Project, rec.Breakdown)
}

func metaOf(rec store.Record) document.Meta {
	return document.Meta{
		Name:      rec.Name,
		Reference: rec.PublicID,
		Version:   rec.Version,
		Notes:     rec.Notes,
		CreatedAt: rec.CreatedAt,
	}
}

func (s *server) renderTemplate(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, page, data); err != nil {
		s.logger.Error("render template failed", "page", page, "err", err)
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

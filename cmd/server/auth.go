package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionName     = "vitrea_session"
	sessionEmailKey = "email"
	sessionMaxAge   = 7 * 24 * 60 * 60
)

type credentialStore interface {
	PasswordHash(ctx context.Context, email string) (hash string, ok bool, err error)
}

type authService struct {
	users    credentialStore
	sessions *sessions.CookieStore
}

// newAuthService signs session cookies with secret. An empty secret gets a
// random key, so sessions do not survive a restart.
func newAuthService(users credentialStore, secret string, secure bool) *authService {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
	}

	cookies := sessions.NewCookieStore(key)
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &authService{users: users, sessions: cookies}
}

func (a *authService) validateCredentials(ctx context.Context, email, password string) (bool, error) {
	hash, ok, err := a.users.PasswordHash(ctx, strings.TrimSpace(email))
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("compare password hash: %w", err)
	}
	return true, nil
}

func (a *authService) startSession(w http.ResponseWriter, r *http.Request, email string) error {
	// A cookie that fails to decode still yields a fresh session.
	session, _ := a.sessions.Get(r, sessionName)
	session.Values[sessionEmailKey] = strings.TrimSpace(email)
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (a *authService) endSession(w http.ResponseWriter, r *http.Request) error {
	session, _ := a.sessions.Get(r, sessionName)
	session.Options.MaxAge = -1
	delete(session.Values, sessionEmailKey)
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (a *authService) currentUser(r *http.Request) (string, bool) {
	session, err := a.sessions.Get(r, sessionName)
	if err != nil {
		return "", false
	}
	email, ok := session.Values[sessionEmailKey].(string)
	return email, ok && email != ""
}

// requireAuth answers API requests without a session with 401 and sends
// page requests to the login form.
func (a *authService) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := a.currentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		if strings.HasPrefix(r.URL.Path, "/api/") {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})
}

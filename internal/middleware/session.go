package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/healthguard/healthguard-go/internal/crypto"
)

const SessionCookieName = "healthguard_session"

type contextKey string

const sessionKey contextKey = "session"

// Session identifies the authenticated user of a request.
type Session struct {
	UserID string
	Email  string
}

// Sessions issues and checks the signed session cookie.
type Sessions struct {
	secret string
	ttl    time.Duration
	secure bool
}

// NewSessions creates a session authority signing cookies with secret.
func NewSessions(secret string, ttl time.Duration, secure bool) *Sessions {
	return &Sessions{secret: secret, ttl: ttl, secure: secure}
}

// Start binds the user to the client by setting the session cookie.
func (s *Sessions) Start(w http.ResponseWriter, userID, email string) error {
	token, err := crypto.NewSessionToken(userID, email, s.secret, s.ttl)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// End clears the session cookie.
func (s *Sessions) End(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Require rejects requests without a valid session cookie.
func (s *Sessions) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := crypto.ParseSessionToken(cookie.Value, s.secret)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, Session{UserID: claims.UserID, Email: claims.Email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromContext extracts the authenticated session from the request context.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok
}

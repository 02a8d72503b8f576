package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoSession(w http.ResponseWriter, r *http.Request) {
	s, ok := SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "no session", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"user_id": s.UserID, "email": s.Email})
}

func startCookie(t *testing.T, s *Sessions, userID, email string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, s.Start(rec, userID, email))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSessions_StartSetsCookie(t *testing.T) {
	s := NewSessions("secret", time.Hour, true)
	c := startCookie(t, s, "u1", "a@x.com")

	assert.Equal(t, SessionCookieName, c.Name)
	assert.NotEmpty(t, c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 3600, c.MaxAge)
	assert.NotContains(t, c.Value, "a@x.com", "token is signed, claims are base64 encoded")
}

func TestSessions_RequireAcceptsValidCookie(t *testing.T) {
	s := NewSessions("secret", time.Hour, false)
	c := startCookie(t, s, "u1", "a@x.com")

	req := httptest.NewRequest(http.MethodGet, "/api/health-data", nil)
	req.AddCookie(c)
	rec := httptest.NewRecorder()
	s.Require(http.HandlerFunc(echoSession)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":"u1","email":"a@x.com"}`, rec.Body.String())
}

func TestSessions_RequireRejects(t *testing.T) {
	s := NewSessions("secret", time.Hour, false)
	other := NewSessions("other-secret", time.Hour, false)
	expired := NewSessions("secret", -time.Minute, false)

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{name: "no cookie"},
		{name: "empty cookie", cookie: &http.Cookie{Name: SessionCookieName, Value: ""}},
		{name: "garbage cookie", cookie: &http.Cookie{Name: SessionCookieName, Value: "abc.def.ghi"}},
		{name: "other secret", cookie: startCookie(t, other, "u1", "a@x.com")},
		{name: "expired", cookie: &http.Cookie{Name: SessionCookieName, Value: startCookieValue(t, expired)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/health-data", nil)
			if tt.cookie != nil {
				req.AddCookie(&http.Cookie{Name: tt.cookie.Name, Value: tt.cookie.Value})
			}
			rec := httptest.NewRecorder()
			called := false
			s.Require(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })).ServeHTTP(rec, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
		})
	}
}

// startCookieValue returns the raw token; with a negative ttl the cookie
// itself is a deletion, so its value has to be read from the header.
func startCookieValue(t *testing.T, s *Sessions) string {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, s.Start(rec, "u1", "a@x.com"))
	header := rec.Header().Get("Set-Cookie")
	prefix := SessionCookieName + "="
	require.Contains(t, header, prefix)
	v := header[len(prefix):]
	for i, ch := range v {
		if ch == ';' {
			return v[:i]
		}
	}
	return v
}

func TestSessions_EndExpiresCookie(t *testing.T) {
	s := NewSessions("secret", time.Hour, false)
	rec := httptest.NewRecorder()
	s.End(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestSessionFromContext_Missing(t *testing.T) {
	_, ok := SessionFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}

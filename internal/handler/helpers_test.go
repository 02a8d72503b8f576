package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/healthguard/healthguard-go/internal/crypto"
	"github.com/healthguard/healthguard-go/internal/middleware"
	"github.com/healthguard/healthguard-go/internal/repository"
	"github.com/healthguard/healthguard-go/internal/service"
)

const testSecret = "test-secret"

type fixture struct {
	store    *repository.MemoryStore
	sessions *middleware.Sessions
	auth     *AuthHandler
	health   *HealthHandler
	contacts *ContactHandler
	alerts   *EmergencyHandler
	doctor   *DoctorHandler
}

func newFixture() *fixture {
	store := repository.NewMemoryStore()
	sessions := middleware.NewSessions(testSecret, time.Hour, false)
	hasher := crypto.NewPasswordHasher(crypto.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})

	healthSvc := service.NewHealthService(store, nil)
	return &fixture{
		store:    store,
		sessions: sessions,
		auth:     NewAuthHandler(service.NewAuthService(store, hasher), sessions),
		health:   NewHealthHandler(healthSvc),
		contacts: NewContactHandler(service.NewContactService(store)),
		alerts:   NewEmergencyHandler(service.NewEmergencyService(store, service.NewLogDispatcher(nil), nil)),
		doctor:   NewDoctorHandler(service.NewDoctorService(store, healthSvc)),
	}
}

// sessionCookie returns a valid session cookie for userID.
func (f *fixture) sessionCookie(t *testing.T, userID, email string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, f.sessions.Start(rec, userID, email))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

// serve runs h behind the session middleware, as the router mounts it.
func (f *fixture) serve(h http.HandlerFunc, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.sessions.Require(h).ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

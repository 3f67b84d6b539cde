package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/auth-system/internal/api/handler"
	"github.com/99minutos/auth-system/internal/core/domain"
	"github.com/99minutos/auth-system/internal/core/service"
	"github.com/99minutos/auth-system/internal/infrastructure/security"
)

type memoryStore struct {
	mu    sync.Mutex
	users map[string]domain.UserRecord
}

func (s *memoryStore) FindByEmail(_ context.Context, email string) (*domain.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (s *memoryStore) Insert(_ context.Context, rec domain.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[rec.Email]; ok {
		return domain.ErrAlreadyExists
	}
	s.users[rec.Email] = rec
	return nil
}

func newTestRouter(t *testing.T, checks ...handler.DependencyCheck) (*echo.Echo, *memoryStore) {
	t.Helper()
	issuer, err := security.NewJWTIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	store := &memoryStore{users: make(map[string]domain.UserRecord)}
	svc := service.NewAuthService(store, security.NewBcryptHasher(bcrypt.MinCost), security.NewUUIDGenerator(), issuer, zerolog.Nop())

	e := NewRouter(Dependencies{
		AuthService:   svc,
		TokenVerifier: issuer,
		HealthChecks:  checks,
		Logger:        zerolog.Nop(),
		Registry:      prometheus.NewRegistry(),
	})
	return e, store
}

func do(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestRouter_SignupLoginMe(t *testing.T) {
	e, store := newTestRouter(t)
	const signup = `{"name":"Ana","email":"ana@x.com","password":"secret1"}`

	rec := do(e, http.MethodPost, "/users/signup", signup, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if body["message"] != "Registration done successfully" || body["token"] == "" {
		t.Fatalf("signup: unexpected body %+v", body)
	}
	stored := store.users["ana@x.com"]
	if stored.Password == "secret1" || stored.Role != "NORMAL" {
		t.Fatalf("unexpected stored record: %+v", stored)
	}

	rec = do(e, http.MethodPost, "/users/signup", signup, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate signup: expected 409, got %d", rec.Code)
	}
	if decode(t, rec)["error"] != "email already registered" {
		t.Fatalf("duplicate signup: unexpected body %s", rec.Body.String())
	}

	rec = do(e, http.MethodPost, "/users/login", `{"email":"ana@x.com","password":"secret1"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body = decode(t, rec)
	if body["message"] != "Login successful" {
		t.Fatalf("login: unexpected body %+v", body)
	}

	rec = do(e, http.MethodGet, "/users/me", "", body["token"])
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	me := decode(t, rec)
	if me["id"] != stored.ID || me["name"] != "Ana" || me["role"] != "NORMAL" {
		t.Fatalf("me: unexpected body %+v (stored id %s)", me, stored.ID)
	}
}

func TestRouter_LoginFailures(t *testing.T) {
	e, _ := newTestRouter(t)
	do(e, http.MethodPost, "/users/signup", `{"name":"Ana","email":"ana@x.com","password":"secret1"}`, "")

	rec := do(e, http.MethodPost, "/users/login", `{"email":"missing@x.com","password":"x"}`, "")
	if rec.Code != http.StatusNotFound || decode(t, rec)["error"] != "email not found" {
		t.Fatalf("missing email: got %d %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodPost, "/users/login", `{"email":"ana@x.com","password":"wrong"}`, "")
	if rec.Code != http.StatusUnauthorized || decode(t, rec)["error"] != "email or password invalid" {
		t.Fatalf("wrong password: got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_MeRequiresToken(t *testing.T) {
	e, _ := newTestRouter(t)

	if rec := do(e, http.MethodGet, "/users/me", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/users/me", "", "garbage"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	e, _ := newTestRouter(t, handler.DependencyCheck{
		Name: "mongodb",
		Ping: func(context.Context) error { return errors.New("down") },
	})

	if rec := do(e, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readiness: expected 503, got %d", rec.Code)
	}

	rec := do(e, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "auth_http_requests_total") {
		t.Fatalf("metrics: expected http request counter in output")
	}
}

func TestRouter_SignupRejectsPasswordOverBcryptLimit(t *testing.T) {
	e, store := newTestRouter(t)

	// 40 runes, 80 bytes: within the rune count, over bcrypt's byte limit.
	body := `{"name":"Ana","email":"ana@x.com","password":"` + strings.Repeat("é", 40) + `"}`
	rec := do(e, http.MethodPost, "/users/signup", body, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode(t, rec)["error"]; got != "password must be at most 72 bytes" {
		t.Fatalf("unexpected error message: %q", got)
	}
	if len(store.users) != 0 {
		t.Fatalf("nothing should be stored, got %d users", len(store.users))
	}
}

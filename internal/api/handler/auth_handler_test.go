package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	apimw "github.com/pokeshop/storefront/internal/api/middleware"
	"github.com/pokeshop/storefront/internal/core/domain"
	"github.com/pokeshop/storefront/internal/core/ports"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, input ports.LoginInput) (*domain.Session, error)
	logoutFn func(ctx context.Context, sessionID string) error
}

func (s *stubAuthService) Login(ctx context.Context, input ports.LoginInput) (*domain.Session, error) {
	return s.loginFn(ctx, input)
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx, sessionID)
}

func jsonContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == apimw.CookieName {
			return ck
		}
	}
	return nil
}

func TestLoginSetsSessionCookie(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(_ context.Context, input ports.LoginInput) (*domain.Session, error) {
			if input.Email != "ash@pallet.com" || input.Senha != "pikachu" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Session{ID: "new-sid", UserID: "u1"}, nil
		},
	}
	h := NewAuthHandler(auth, time.Hour, false)

	c, rec := jsonContext(t, http.MethodPost, "/api/login", `{"email":"ash@pallet.com","senha":"pikachu"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	ck := sessionCookie(rec)
	if ck == nil || ck.Value != "new-sid" {
		t.Fatalf("expected the new session cookie, got %+v", ck)
	}
	if !ck.HttpOnly {
		t.Fatal("session cookie must be http-only")
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload["ok"] != true {
		t.Fatalf("expected ok:true, got %v", payload)
	}
}

func TestLoginForwardsPreviousSessionID(t *testing.T) {
	var gotPrev string
	auth := &stubAuthService{
		loginFn: func(_ context.Context, input ports.LoginInput) (*domain.Session, error) {
			gotPrev = input.PrevSessionID
			return &domain.Session{ID: "new-sid", UserID: "u1"}, nil
		},
	}
	h := NewAuthHandler(auth, time.Hour, false)

	c, _ := jsonContext(t, http.MethodPost, "/api/login", `{"email":"a@b.com","senha":"x"}`)
	apimw.SetSession(c, &domain.Session{ID: "anon-1"})
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if gotPrev != "anon-1" {
		t.Fatalf("expected prev session id forwarded, got %q", gotPrev)
	}
}

func TestLoginPropagatesInvalidCredentials(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(_ context.Context, _ ports.LoginInput) (*domain.Session, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(auth, time.Hour, false)

	c, rec := jsonContext(t, http.MethodPost, "/api/login", `{"email":"a@b.com","senha":"wrong"}`)
	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if sessionCookie(rec) != nil {
		t.Fatal("no cookie on failed login")
	}
}

func TestLoginRejectsIncompletePayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(_ context.Context, _ ports.LoginInput) (*domain.Session, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}, time.Hour, false)

	c, _ := jsonContext(t, http.MethodPost, "/api/login", `{"email":"a@b.com"}`)
	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	var destroyed string
	auth := &stubAuthService{
		loginFn: func(_ context.Context, _ ports.LoginInput) (*domain.Session, error) { return nil, nil },
		logoutFn: func(_ context.Context, id string) error {
			destroyed = id
			return nil
		},
	}
	h := NewAuthHandler(auth, time.Hour, false)

	c, rec := jsonContext(t, http.MethodPost, "/api/logout", "")
	apimw.SetSession(c, &domain.Session{ID: "sid-1", UserID: "u1"})
	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if destroyed != "sid-1" {
		t.Fatalf("expected session sid-1 destroyed, got %q", destroyed)
	}
	ck := sessionCookie(rec)
	if ck == nil || ck.MaxAge >= 0 {
		t.Fatalf("expected a cookie deletion, got %+v", ck)
	}
}

func TestMeReturnsSessionIdentity(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Hour, false)

	c, rec := jsonContext(t, http.MethodGet, "/api/me", "")
	apimw.SetSession(c, &domain.Session{ID: "s1", UserID: "u1", Nome: "Ash", Role: domain.RoleEmployee, Cargo: "Atendente"})
	if err := h.Me(c); err != nil {
		t.Fatalf("me: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload["nome"] != "Ash" || payload["role"] != "employee" || payload["cargo"] != "Atendente" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestMeRequiresAuthentication(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Hour, false)

	c, _ := jsonContext(t, http.MethodGet, "/api/me", "")
	if err := h.Me(c); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

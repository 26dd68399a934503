package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pokeshop/storefront/internal/core/domain"
)

type stubSessionStore struct {
	sessions map[string]*domain.Session
	deleted  []string
	touched  []string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	clone := *sess
	return &clone, nil
}

func (s *stubSessionStore) Save(_ context.Context, sess *domain.Session) error {
	clone := *sess
	s.sessions[sess.ID] = &clone
	return nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	delete(s.sessions, id)
	return nil
}

func (s *stubSessionStore) Touch(_ context.Context, id string) error {
	s.touched = append(s.touched, id)
	return nil
}

func sessionRequest(cookie string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func capture(t *testing.T) (echo.HandlerFunc, **domain.Session) {
	t.Helper()
	var seen *domain.Session
	return func(c echo.Context) error {
		seen = CurrentSession(c)
		return c.NoContent(http.StatusOK)
	}, &seen
}

func findCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CookieName {
			return ck
		}
	}
	return nil
}

func TestSessionLoadsAndTouches(t *testing.T) {
	store := newStubSessionStore()
	store.sessions["sid-1"] = &domain.Session{ID: "sid-1", UserID: "u1", ServerStart: 100}
	cfg := SessionConfig{Store: store, ServerStart: 100, TTL: time.Hour, Log: zerolog.Nop()}

	c, rec := sessionRequest("sid-1")
	next, seen := capture(t)
	if err := Session(cfg)(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}

	if *seen == nil || (*seen).UserID != "u1" {
		t.Fatalf("expected the stored session in context, got %+v", *seen)
	}
	if len(store.touched) != 1 || store.touched[0] != "sid-1" {
		t.Fatalf("expected a TTL touch, got %v", store.touched)
	}
	ck := findCookie(rec)
	if ck == nil || ck.Value != "sid-1" || ck.MaxAge != int(time.Hour.Seconds()) {
		t.Fatalf("expected a refreshed cookie, got %+v", ck)
	}
	if !ck.HttpOnly || ck.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie attributes wrong: %+v", ck)
	}
}

func TestSessionUnknownIDClearsCookie(t *testing.T) {
	cfg := SessionConfig{Store: newStubSessionStore(), ServerStart: 100, TTL: time.Hour, Log: zerolog.Nop()}

	c, rec := sessionRequest("gone")
	next, seen := capture(t)
	if err := Session(cfg)(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}

	if *seen != nil {
		t.Fatal("expected no session in context")
	}
	ck := findCookie(rec)
	if ck == nil || ck.MaxAge >= 0 {
		t.Fatalf("expected a cookie deletion, got %+v", ck)
	}
}

func TestSessionStaleServerStartIsDestroyed(t *testing.T) {
	store := newStubSessionStore()
	store.sessions["old"] = &domain.Session{ID: "old", UserID: "u1", ServerStart: 50}
	cfg := SessionConfig{Store: store, ServerStart: 100, TTL: time.Hour, Log: zerolog.Nop()}

	c, rec := sessionRequest("old")
	next, seen := capture(t)
	if err := Session(cfg)(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}

	if *seen != nil {
		t.Fatal("stale session must not reach the handler")
	}
	if len(store.deleted) != 1 || store.deleted[0] != "old" {
		t.Fatalf("expected the stale session destroyed, got %v", store.deleted)
	}
	if ck := findCookie(rec); ck == nil || ck.MaxAge >= 0 {
		t.Fatalf("expected a cookie deletion, got %+v", ck)
	}
}

func TestSessionWithoutCookiePassesThrough(t *testing.T) {
	cfg := SessionConfig{Store: newStubSessionStore(), ServerStart: 100, TTL: time.Hour, Log: zerolog.Nop()}

	c, rec := sessionRequest("")
	next, seen := capture(t)
	if err := Session(cfg)(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if *seen != nil {
		t.Fatal("expected no session")
	}
	if findCookie(rec) != nil {
		t.Fatal("no cookie should be set")
	}
}

func TestEnsureSessionCreatesAnonymousSession(t *testing.T) {
	store := newStubSessionStore()
	cfg := SessionConfig{Store: store, ServerStart: 100, TTL: time.Hour, Log: zerolog.Nop()}

	c, rec := sessionRequest("")
	next, seen := capture(t)
	if err := EnsureSession(cfg)(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}

	if *seen == nil || (*seen).Authenticated() {
		t.Fatalf("expected a fresh anonymous session, got %+v", *seen)
	}
	if (*seen).ServerStart != 100 {
		t.Fatalf("expected the current server start marker, got %d", (*seen).ServerStart)
	}
	if store.sessions[(*seen).ID] == nil {
		t.Fatal("anonymous session was not persisted")
	}
	ck := findCookie(rec)
	if ck == nil || ck.Value != (*seen).ID {
		t.Fatalf("expected a cookie for the new session, got %+v", ck)
	}
}

func TestEnsureSessionKeepsExistingSession(t *testing.T) {
	store := newStubSessionStore()
	cfg := SessionConfig{Store: store, ServerStart: 100, TTL: time.Hour, Log: zerolog.Nop()}

	c, _ := sessionRequest("")
	existing := &domain.Session{ID: "sid-1", UserID: "u1"}
	SetSession(c, existing)

	next, seen := capture(t)
	if err := EnsureSession(cfg)(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if *seen != existing {
		t.Fatal("existing session must be kept")
	}
	if len(store.sessions) != 0 {
		t.Fatal("no new session should be created")
	}
}

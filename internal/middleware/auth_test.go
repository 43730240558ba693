package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coffeehub/coffeehub/internal/token"
)

// dummyHandler records if it was called and the context it received.
type dummyHandler struct {
	called bool
	ctx    context.Context
}

func (d *dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.called = true
	d.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

// fakeVerifier implements TokenVerifier for testing.
type fakeVerifier struct {
	claims *token.Claims
	err    error
}

func (f *fakeVerifier) Verify(raw string) (*token.Claims, error) {
	return f.claims, f.err
}

func TestAdminAuth_MissingHeader(t *testing.T) {
	dummy := &dummyHandler{}
	h := AdminAuth(&fakeVerifier{})(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/users", nil)
	h.ServeHTTP(rec, req)

	if dummy.called {
		t.Error("handler must not be called without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want 401", rec.Code)
	}
}

func TestAdminAuth_NonBearerHeader(t *testing.T) {
	dummy := &dummyHandler{}
	h := AdminAuth(&fakeVerifier{})(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/users", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want 401", rec.Code)
	}
}

func TestAdminAuth_InvalidToken(t *testing.T) {
	dummy := &dummyHandler{}
	h := AdminAuth(&fakeVerifier{err: errors.New("invalid token")})(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/users", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	h.ServeHTTP(rec, req)

	if dummy.called {
		t.Error("handler must not be called with an invalid token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want 401", rec.Code)
	}
}

func TestAdminAuth_NonAdminForbidden(t *testing.T) {
	dummy := &dummyHandler{}
	h := AdminAuth(&fakeVerifier{claims: &token.Claims{UserID: "bob"}})(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/users", nil)
	req.Header.Set("Authorization", "Bearer valid-but-not-admin")
	h.ServeHTTP(rec, req)

	if dummy.called {
		t.Error("handler must not be called for a non-admin")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d; want 403", rec.Code)
	}
}

func TestAdminAuth_AdminPasses(t *testing.T) {
	dummy := &dummyHandler{}
	h := AdminAuth(&fakeVerifier{claims: &token.Claims{UserID: "admin", IsAdmin: true}})(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/users", nil)
	req.Header.Set("Authorization", "Bearer valid-admin")
	h.ServeHTTP(rec, req)

	if !dummy.called {
		t.Fatal("handler must be called for an admin")
	}
	if got := GetUserIDFromContext(dummy.ctx); got != "admin" {
		t.Errorf("user id in context = %q; want %q", got, "admin")
	}
}

func TestGetUserIDFromContext_Empty(t *testing.T) {
	if got := GetUserIDFromContext(context.Background()); got != "" {
		t.Errorf("user id = %q; want empty", got)
	}
}

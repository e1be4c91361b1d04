package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/task-manager/internal/core/domain"
	"github.com/99minutos/task-manager/internal/infrastructure/token"
)

type stubRevocations struct {
	revoked bool
	err     error
	checked []domain.Identity
}

func (s *stubRevocations) RevokeToken(context.Context, string, time.Time) error    { return nil }
func (s *stubRevocations) RevokeUser(context.Context, string, time.Duration) error { return nil }
func (s *stubRevocations) IsRevoked(_ context.Context, id domain.Identity) (bool, error) {
	s.checked = append(s.checked, id)
	return s.revoked, s.err
}

func newIssuer(t *testing.T) *token.Issuer {
	t.Helper()
	issuer, err := token.NewIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	return issuer
}

func signed(t *testing.T, issuer *token.Issuer) string {
	t.Helper()
	tok, err := issuer.Issue(domain.Identity{UserID: "u1", Email: "alice@example.com", FirstName: "Alice"})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func runAuth(t *testing.T, header string, revocations *stubRevocations, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var mw echo.MiddlewareFunc
	if revocations == nil {
		mw = Auth(newIssuer(t), nil, zerolog.Nop())
	} else {
		mw = Auth(newIssuer(t), revocations, zerolog.Nop())
	}
	if err := mw(next)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func mustNotReach(t *testing.T) echo.HandlerFunc {
	return func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	issuer := newIssuer(t)
	revocations := &stubRevocations{}

	called := false
	rec := runAuth(t, "Bearer "+signed(t, issuer), revocations, func(c echo.Context) error {
		called = true
		identity, ok := IdentityFrom(c.Request().Context())
		if !ok {
			t.Fatalf("identity not set")
		}
		if identity.UserID != "u1" || identity.Email != "alice@example.com" {
			t.Fatalf("unexpected identity: %+v", identity)
		}
		if identity.TokenID == "" {
			t.Fatalf("token id not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(revocations.checked) != 1 {
		t.Fatalf("expected one revocation check, got %d", len(revocations.checked))
	}
}

func TestAuthMiddleware_LowercaseScheme(t *testing.T) {
	rec := runAuth(t, "bearer "+signed(t, newIssuer(t)), nil, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Token abc"},
		{name: "empty token", header: "Bearer "},
		{name: "malformed token", header: "Bearer not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runAuth(t, tt.header, nil, mustNotReach(t))
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	other, err := token.NewIssuer("other-secret", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	rec := runAuth(t, "Bearer "+signed(t, other), nil, mustNotReach(t))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	rec := runAuth(t, "Bearer "+signed(t, newIssuer(t)), &stubRevocations{revoked: true}, mustNotReach(t))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RevocationStoreDown(t *testing.T) {
	revocations := &stubRevocations{err: errors.New("redis: connection refused")}

	rec := runAuth(t, "Bearer "+signed(t, newIssuer(t)), revocations, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected request to proceed, got %d", rec.Code)
	}
}

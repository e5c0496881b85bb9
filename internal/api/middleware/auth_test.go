package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skycast/weather-api/internal/core/token"
)

func newAuthContext(t *testing.T, authHeader string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func httpErrorCode(t *testing.T, err error) (int, string) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	msg, _ := he.Message.(string)
	return he.Code, msg
}

func TestAuth_ValidToken(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Hour)
	signed, err := issuer.Issue("u42", "ADMIN")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c := newAuthContext(t, "Bearer "+signed)

	called := false
	handler := Auth(issuer)(func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != "u42" {
			t.Fatalf("user_id not set")
		}
		if c.Get(CtxRole) != "ADMIN" {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Hour)
	c := newAuthContext(t, "")

	handler := Auth(issuer)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	code, msg := httpErrorCode(t, handler(c))
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if msg != "Authorization token is missing" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestAuth_NonBearerScheme(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Hour)
	c := newAuthContext(t, "Token abc")

	handler := Auth(issuer)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	// No extractable bearer credential: treated as missing, not invalid.
	code, _ := httpErrorCode(t, handler(c))
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Hour)
	c := newAuthContext(t, "Bearer not-a-token")

	handler := Auth(issuer)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	code, msg := httpErrorCode(t, handler(c))
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
	if msg != "Authorization token is invalid" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestAuth_TamperedToken(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Hour)
	other := token.NewIssuer("other-secret", time.Hour)
	signed, err := other.Issue("u1", "USER")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c := newAuthContext(t, "Bearer "+signed)
	handler := Auth(issuer)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	code, _ := httpErrorCode(t, handler(c))
	if code != http.StatusForbidden {
		t.Fatalf("expected 403 for tampered token, got %d", code)
	}
}

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skycast/weather-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not the message envelope: %v", err)
	}
	return rec.Code, body.Message
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"email in use", domain.ErrEmailInUse, http.StatusBadRequest, "Email is already in use"},
		{"invalid role", domain.ErrInvalidRole, http.StatusBadRequest, "Invalid role"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"weather fetch", domain.ErrWeatherFetch, http.StatusInternalServerError, "Failed to fetch weather data"},
		{"wrapped weather fetch", fmt.Errorf("%w: paris", domain.ErrWeatherFetch), http.StatusInternalServerError, "Failed to fetch weather data"},
		{"unknown", errors.New("driver exploded"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := renderError(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
			if msg != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, msg)
			}
		})
	}
}

func TestErrorHandler_HTTPErrorPassthrough(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusForbidden, "Forbidden: Insufficient permissions"))
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
	if msg != "Forbidden: Insufficient permissions" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

// Raw collaborator errors must never leak through the envelope.
func TestErrorHandler_NoInternalDetailLeak(t *testing.T) {
	_, msg := renderError(t, errors.New("mongo: connection refused 10.0.0.3:27017"))
	if msg != "Internal server error" {
		t.Fatalf("internal detail leaked: %q", msg)
	}
}

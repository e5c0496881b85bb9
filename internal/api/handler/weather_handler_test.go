package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skycast/weather-api/internal/api/middleware"
	"github.com/skycast/weather-api/internal/core/domain"
)

type stubWeatherService struct {
	data       *domain.WeatherData
	getErr     error
	lastCity   string
	lastUserID string
	mine       []*domain.WeatherQuery
	all        []*domain.WeatherQueryWithUser
}

func (s *stubWeatherService) GetByCity(_ context.Context, city, userID string) (*domain.WeatherData, error) {
	s.lastCity, s.lastUserID = city, userID
	return s.data, s.getErr
}

func (s *stubWeatherService) MyQueries(_ context.Context, _ string) ([]*domain.WeatherQuery, error) {
	return s.mine, nil
}

func (s *stubWeatherService) AllQueries(_ context.Context) ([]*domain.WeatherQueryWithUser, error) {
	return s.all, nil
}

func newWeatherContext(userID, role, city string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(middleware.CtxUserID, userID)
		c.Set(middleware.CtxRole, role)
	}
	if city != "" {
		c.SetParamNames("city")
		c.SetParamValues(city)
	}
	return c, rec
}

func TestWeatherHandler_GetByCity(t *testing.T) {
	svc := &stubWeatherService{
		data: &domain.WeatherData{Name: "Paris", Main: domain.WeatherMain{Temp: 20}},
	}
	h := NewWeatherHandler(svc)

	c, rec := newWeatherContext("u1", "USER", "Paris")
	if err := h.GetByCity(c); err != nil {
		t.Fatalf("GetByCity returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastCity != "Paris" || svc.lastUserID != "u1" {
		t.Fatalf("service called with %q/%q", svc.lastCity, svc.lastUserID)
	}

	var data domain.WeatherData
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if data.Name != "Paris" {
		t.Fatalf("unexpected payload: %+v", data)
	}
}

func TestWeatherHandler_GetByCity_NoIdentity(t *testing.T) {
	h := NewWeatherHandler(&stubWeatherService{})

	c, _ := newWeatherContext("", "", "Paris")
	err := h.GetByCity(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %v", err)
	}
}

func TestWeatherHandler_GetByCity_FetchErrorPropagates(t *testing.T) {
	h := NewWeatherHandler(&stubWeatherService{getErr: domain.ErrWeatherFetch})

	c, _ := newWeatherContext("u1", "USER", "Nowhere")
	if err := h.GetByCity(c); !errors.Is(err, domain.ErrWeatherFetch) {
		t.Fatalf("expected ErrWeatherFetch, got %v", err)
	}
}

func TestWeatherHandler_MyQueries(t *testing.T) {
	svc := &stubWeatherService{
		mine: []*domain.WeatherQuery{
			{ID: "q2", City: "Berlin", UserID: "u1", QueriedAt: time.Now().UTC()},
			{ID: "q1", City: "Paris", UserID: "u1", QueriedAt: time.Now().UTC().Add(-time.Hour)},
		},
	}
	h := NewWeatherHandler(svc)

	c, rec := newWeatherContext("u1", "USER", "")
	if err := h.MyQueries(c); err != nil {
		t.Fatalf("MyQueries returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var out []domain.WeatherQuery
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(out) != 2 || out[0].City != "Berlin" {
		t.Fatalf("unexpected listing: %+v", out)
	}
}

func TestWeatherHandler_AllQueries(t *testing.T) {
	svc := &stubWeatherService{
		all: []*domain.WeatherQueryWithUser{
			{WeatherQuery: domain.WeatherQuery{ID: "q1", City: "Paris", UserID: "u1"}, UserEmail: "a@example.com"},
		},
	}
	h := NewWeatherHandler(svc)

	c, rec := newWeatherContext("admin", "ADMIN", "")
	if err := h.AllQueries(c); err != nil {
		t.Fatalf("AllQueries returned error: %v", err)
	}

	var out []domain.WeatherQueryWithUser
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(out) != 1 || out[0].UserEmail != "a@example.com" {
		t.Fatalf("unexpected listing: %+v", out)
	}
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skycast/weather-api/internal/core/ports"
)

// WeatherHandler handles weather retrieval and the ledger projections.
type WeatherHandler struct {
	weatherService ports.WeatherService
}

func NewWeatherHandler(weatherService ports.WeatherService) *WeatherHandler {
	return &WeatherHandler{weatherService: weatherService}
}

// GetByCity fetches current weather for a city via the cache-aside flow and
// records the query against the calling user.
//
// @Summary      Get weather for a city
// @Tags         weather
// @Produce      json
// @Security     BearerAuth
// @Param        city  path      string  true  "City name (e.g. Istanbul)"
// @Success      200   {object}  domain.WeatherData
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /weather/{city} [get]
func (h *WeatherHandler) GetByCity(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	data, err := h.weatherService.GetByCity(c.Request().Context(), c.Param("city"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, data)
}

// MyQueries lists the calling user's weather queries, newest first.
//
// @Summary      List my weather queries
// @Tags         weather
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.WeatherQuery
// @Failure      401  {object}  map[string]string
// @Router       /weather/my [get]
func (h *WeatherHandler) MyQueries(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	queries, err := h.weatherService.MyQueries(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, queries)
}

// AllQueries lists every user's weather queries, newest first. ADMIN only.
//
// @Summary      List all weather queries
// @Tags         weather
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.WeatherQueryWithUser
// @Failure      403  {object}  map[string]string
// @Router       /weather/all [get]
func (h *WeatherHandler) AllQueries(c echo.Context) error {
	queries, err := h.weatherService.AllQueries(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, queries)
}

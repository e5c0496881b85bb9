package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skycast/weather-api/internal/core/domain"
	"github.com/skycast/weather-api/internal/core/ports"
)

// UserHandler handles the admin-only account management endpoints.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN USER"`
}

type updateRoleResponse struct {
	Message string             `json:"message"`
	User    *domain.PublicUser `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// List returns all registered users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.PublicUser
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateRole changes a user's role.
//
// @Summary      Update a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateRoleRequest  true  "New role"
// @Success      200   {object}  updateRoleResponse
// @Failure      404   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Required fields are missing")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateRole(c.Request().Context(), c.Param("id"), req.Role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updateRoleResponse{
		Message: "User role updated successfully",
		User:    user,
	})
}

// Delete removes a user account.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "User ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cryptotrack/portfolio-api/internal/core/domain"
	"github.com/cryptotrack/portfolio-api/internal/core/ports"
)

// AdminHandler handles the admin-only user administration endpoints. Routes
// are guarded by the RBAC middleware; the handler still passes the actor id
// down so the self-protection rules hold even if the wiring changes.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListUsers returns every user, newest first, password hash excluded.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usersResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, usersResponse{Users: users})
}

// UpdateRole changes a user's role.
//
// @Summary      Update a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateRoleRequest  true  "New role"
// @Success      200   {object}  userUpdatedResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/users/{id} [put]
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Valid role (user or admin) is required")
	}

	user, err := h.service.UpdateRole(c.Request().Context(), identity.Subject, c.Param("id"), req.Role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userUpdatedResponse{Message: "User role updated successfully", User: user})
}

// DeleteUser removes a user account. The user's assets are kept and their
// owner reference is left dangling.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteUser(c.Request().Context(), identity.Subject, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/avdeyev/postline/internal/cache"
	"github.com/avdeyev/postline/internal/repositories"
	"github.com/labstack/echo/v4"
)

// AdminHandler owns the operational endpoints
type AdminHandler struct {
	pageCache      cache.PageCache
	userRepository repositories.UserRepository
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(pageCache cache.PageCache, userRepo repositories.UserRepository) *AdminHandler {
	return &AdminHandler{pageCache: pageCache, userRepository: userRepo}
}

// RegisterAdminRoutes registers the admin routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.POST("/cache/clear", h.ClearCache)
	g.DELETE("/users/:username", h.DeleteUser)
}

// ClearCache drops every cached page. This is the escape hatch for when a write
// must become visible before the TTL runs out; normal request flow never calls it.
func (h *AdminHandler) ClearCache(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	if err := h.pageCache.Clear(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// DeleteUser removes an account and everything it authored: posts, comments
// and follow edges in both directions.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.userRepository.DeleteUser(user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *AdminHandler) requireAdmin(c echo.Context) error {
	claims := currentUser(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unknown user")
	}
	if !user.IsAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "Administrator access required")
	}
	return nil
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/avdeyev/postline/internal/models"
	"github.com/avdeyev/postline/internal/repositories"
	"github.com/labstack/echo/v4"
)

// GroupHandler handles group administration and listing
type GroupHandler struct {
	groupRepository repositories.GroupRepository
	userRepository  repositories.UserRepository
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupRepo repositories.GroupRepository, userRepo repositories.UserRepository) *GroupHandler {
	return &GroupHandler{
		groupRepository: groupRepo,
		userRepository:  userRepo,
	}
}

// RegisterAdminGroupRoutes registers the admin-only group routes
func (h *GroupHandler) RegisterAdminGroupRoutes(g *echo.Group) {
	g.POST("/groups", h.CreateGroup)
	g.DELETE("/groups/:slug", h.DeleteGroup)
}

// RegisterPublicGroupRoutes registers the public group routes
func (h *GroupHandler) RegisterPublicGroupRoutes(g *echo.Group) {
	g.GET("/groups", h.GetGroups)
}

// CreateGroup creates a new group. Administrators only; groups are immutable
// once created.
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	var req models.CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.groupRepository.GetGroupBySlug(req.Slug); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "A group with this slug already exists")
	}

	group := &models.Group{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	}
	if err := h.groupRepository.CreateGroup(group); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"group": group}})
}

// GetGroups lists every group
func (h *GroupHandler) GetGroups(c echo.Context) error {
	groups, err := h.groupRepository.GetGroups()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"groups": groups}})
}

// DeleteGroup removes a group by slug. Its posts stay, detached from any group.
func (h *GroupHandler) DeleteGroup(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	group, err := h.groupRepository.GetGroupBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Group not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.groupRepository.DeleteGroup(group.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *GroupHandler) requireAdmin(c echo.Context) error {
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

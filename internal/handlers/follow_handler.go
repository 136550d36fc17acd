package handlers

import (
	"errors"
	"net/http"

	"github.com/avdeyev/postline/internal/models"
	"github.com/avdeyev/postline/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	strictUnfollow   bool
}

// NewFollowHandler creates a new FollowHandler. strictUnfollow controls whether
// unfollowing an absent edge is a 404 (the historical behavior) or an
// idempotent no-op.
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, strictUnfollow bool) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
		strictUnfollow:   strictUnfollow,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:username/follow", h.FollowAuthor)
	g.DELETE("/users/:username/follow", h.UnfollowAuthor)
}

// FollowAuthor subscribes the current user to an author's posts. Following an
// already-followed author succeeds without a second edge, and following
// yourself is silently skipped rather than rejected.
func (h *FollowHandler) FollowAuthor(c echo.Context) error {
	claims := currentUser(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	author, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if claims.UserID == author.ID {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
	}

	follow := &models.Follow{
		UserID:   claims.UserID,
		AuthorID: author.ID,
	}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": true}})
}

// UnfollowAuthor removes the follow edge toward an author
func (h *FollowHandler) UnfollowAuthor(c echo.Context) error {
	claims := currentUser(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	author, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.followRepository.DeleteFollow(claims.UserID, author.ID); err != nil {
		if errors.Is(err, repositories.ErrFollowNotFound) {
			if h.strictUnfollow {
				return echo.NewHTTPError(http.StatusNotFound, "Follow relationship not found")
			}
		} else {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
}

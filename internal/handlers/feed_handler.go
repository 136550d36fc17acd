package handlers

import (
	"errors"
	"net/http"

	"github.com/avdeyev/postline/internal/feed"
	"github.com/avdeyev/postline/internal/models"
	"github.com/avdeyev/postline/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	composer          *feed.Composer
	userRepository    repositories.UserRepository
	followRepository  repositories.FollowRepository
	commentRepository repositories.CommentRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	composer *feed.Composer,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	commentRepo repositories.CommentRepository,
) *FeedHandler {
	return &FeedHandler{
		composer:          composer,
		userRepository:    userRepo,
		followRepository:  followRepo,
		commentRepository: commentRepo,
	}
}

// EnrichedPost is a post with its author and comment count attached
type EnrichedPost struct {
	models.Post
	Author       models.UserCompact `json:"author"`
	CommentCount int64              `json:"comment_count"`
}

// GetPublicFeed returns the public index: every post, newest first. This route
// sits behind the page cache middleware.
func (h *FeedHandler) GetPublicFeed(c echo.Context) error {
	page, err := h.composer.Public(pageNumber(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": h.enrich(page.Items)},
		"meta":    feedMeta(page),
	})
}

// GetGroupFeed returns one group's posts plus the group metadata
func (h *FeedHandler) GetGroupFeed(c echo.Context) error {
	page, group, err := h.composer.Group(c.Param("slug"), pageNumber(c))
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Group not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"group": group, "posts": h.enrich(page.Items)},
		"meta":    feedMeta(page),
	})
}

// GetAuthorFeed returns one author's posts, their total post count, and the
// viewer's follow state toward them.
func (h *FeedHandler) GetAuthorFeed(c echo.Context) error {
	page, author, err := h.composer.Author(c.Param("username"), pageNumber(c))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	followers, err := h.followRepository.GetFollowersCount(author.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	following, err := h.followRepository.GetFollowingCount(author.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	isFollowing := false
	if claims := currentUser(c); claims != nil {
		isFollowing, err = h.followRepository.IsFollowing(claims.UserID, author.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"author":          author.ToCompact(),
			"posts":           h.enrich(page.Items),
			"post_count":      page.Total,
			"followers_count": followers,
			"following_count": following,
			"is_following":    isFollowing,
		},
		"meta": feedMeta(page),
	})
}

// GetFollowedFeed returns posts by the authors the viewer follows. Following
// nobody means an empty page, not an error.
func (h *FeedHandler) GetFollowedFeed(c echo.Context) error {
	claims := currentUser(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, err := h.composer.Followed(claims.UserID, pageNumber(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": h.enrich(page.Items)},
		"meta":    feedMeta(page),
	})
}

// enrich attaches author info and comment counts to a page of posts, resolving
// each distinct author once.
func (h *FeedHandler) enrich(posts []models.Post) []EnrichedPost {
	authors := make(map[uint]models.UserCompact)
	for _, p := range posts {
		if _, ok := authors[p.AuthorID]; ok {
			continue
		}
		if user, err := h.userRepository.GetUserByID(p.AuthorID); err == nil {
			authors[p.AuthorID] = user.ToCompact()
		}
	}

	enriched := make([]EnrichedPost, len(posts))
	for i, p := range posts {
		count, _ := h.commentRepository.CountCommentsByPostID(p.ID)
		enriched[i] = EnrichedPost{Post: p, Author: authors[p.AuthorID], CommentCount: count}
	}
	return enriched
}

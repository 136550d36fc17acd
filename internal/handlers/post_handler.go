package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/avdeyev/postline/internal/media"
	"github.com/avdeyev/postline/internal/models"
	"github.com/avdeyev/postline/internal/repositories"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
	userRepository    repositories.UserRepository
	groupRepository   repositories.GroupRepository
	mediaStore        media.Store // nil when media storage is not configured
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
	groupRepo repositories.GroupRepository,
	mediaStore media.Store,
) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		commentRepository: commentRepo,
		userRepository:    userRepo,
		groupRepository:   groupRepo,
		mediaStore:        mediaStore,
	}
}

// RegisterPostRoutes registers routes that require an authenticated user
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.POST("/posts/:id/edit", h.EditPost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// RegisterPublicPostRoutes registers routes available to anonymous viewers
func (h *PostHandler) RegisterPublicPostRoutes(g *echo.Group) {
	g.GET("/users/:username/posts/:id", h.GetPost)
}

// CreatePost creates a new post for the current user and sends them back to the
// public feed, matching the post-then-index flow. A validation failure returns
// the field errors without touching storage.
func (h *PostHandler) CreatePost(c echo.Context) error {
	claims := currentUser(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.GroupID != nil {
		if _, err := h.groupRepository.GetGroupByID(*req.GroupID); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown group")
		}
	}

	imageID, err := h.saveImage(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store image")
	}

	post := &models.Post{
		Text:     req.Text,
		AuthorID: claims.UserID,
		GroupID:  req.GroupID,
		ImageID:  imageID,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, "/feed")
}

// GetPost returns a single post with its comments. The username in the path
// must match the post's author, otherwise the post "does not exist" here.
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.lookupPost(c)
	if err != nil {
		return err
	}

	author, err := h.userRepository.GetUserByID(post.AuthorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comments, err := h.commentRepository.GetCommentsByPostID(post.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	postCount, _ := h.postRepository.CountPostsByAuthorID(author.ID)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"post":       post,
			"author":     author.ToCompact(),
			"post_count": postCount,
			"comments":   comments,
		},
	})
}

// EditPost updates a post's text, group and image. Only the author may edit;
// anyone else gets quietly sent back to the public feed with nothing changed.
func (h *PostHandler) EditPost(c echo.Context) error {
	claims := currentUser(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.AuthorID != claims.UserID {
		return c.Redirect(http.StatusFound, "/feed")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.GroupID != nil {
		if _, err := h.groupRepository.GetGroupByID(*req.GroupID); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown group")
		}
	}

	imageID, err := h.saveImage(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store image")
	}

	post.Text = req.Text
	post.GroupID = req.GroupID
	if imageID != "" {
		post.ImageID = imageID
	}
	if err := h.postRepository.UpdatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, fmt.Sprintf("/users/%s/posts/%d", claims.Username, post.ID))
}

// DeletePost deletes the current user's post and its comments
func (h *PostHandler) DeletePost(c echo.Context) error {
	claims := currentUser(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if post.AuthorID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the author can delete a post")
	}

	if err := h.postRepository.DeletePost(post.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if post.ImageID != "" && h.mediaStore != nil {
		_ = h.mediaStore.Delete(c.Request().Context(), post.ImageID)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// lookupPost resolves the :username/:id pair to a post, 404ing on any mismatch
func (h *PostHandler) lookupPost(c echo.Context) (*models.Post, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	author, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil || author.ID != post.AuthorID {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return post, nil
}

// saveImage stores an uploaded "image" multipart part, if any, and returns its
// reference. No file part is not an error.
func (h *PostHandler) saveImage(c echo.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	if h.mediaStore == nil {
		return "", nil
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	return h.mediaStore.Save(c.Request().Context(), file.Filename, src)
}

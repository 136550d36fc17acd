package handlers

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/avdeyev/postline/internal/media"
	"github.com/labstack/echo/v4"
)

// MediaHandler handles image upload and serving
type MediaHandler struct {
	store media.Store
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(store media.Store) *MediaHandler {
	return &MediaHandler{store: store}
}

// RegisterMediaRoutes registers the authenticated upload route
func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.POST("/media", h.Upload)
}

// RegisterPublicMediaRoutes registers the public serving route
func (h *MediaHandler) RegisterPublicMediaRoutes(g *echo.Group) {
	g.GET("/media/:id", h.Serve)
}

// Upload stores an uploaded image and returns its reference
func (h *MediaHandler) Upload(c echo.Context) error {
	if claims := currentUser(c); claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing image file")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read upload")
	}
	defer src.Close()

	id, err := h.store.Save(c.Request().Context(), file.Filename, src)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data":    echo.Map{"id": id, "url": "/media/" + id},
	})
}

// Serve streams a stored image back to the client
func (h *MediaHandler) Serve(c echo.Context) error {
	stream, filename, err := h.store.Open(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Media not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer stream.Close()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.Stream(http.StatusOK, contentType, stream)
}

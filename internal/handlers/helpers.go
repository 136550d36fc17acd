package handlers

import (
	"strconv"

	"github.com/avdeyev/postline/internal/feed"
	"github.com/avdeyev/postline/internal/models"
	"github.com/labstack/echo/v4"
)

// currentUser returns the viewer's claims, or nil for anonymous requests
func currentUser(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get("user").(*models.JwtCustomClaims)
	return claims
}

// pageNumber reads the page query parameter. Anything non-numeric means the
// first page; out-of-range values are clamped later by the paginator.
func pageNumber(c echo.Context) int {
	n, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		return 1
	}
	return n
}

// feedMeta is the pagination envelope shared by every feed response
func feedMeta(p feed.Page[models.Post]) echo.Map {
	return echo.Map{
		"currentPage":     p.Number,
		"totalPages":      p.PageCount,
		"totalItems":      p.Total,
		"hasNextPage":     p.HasNext,
		"hasPreviousPage": p.HasPrev,
	}
}

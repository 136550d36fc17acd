package handlers

import (
	"net/http"
	"testing"

	"github.com/avdeyev/postline/internal/models"
	"github.com/avdeyev/postline/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func followEdgeCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	return count
}

func TestFollowAuthorCreatesSingleEdge(t *testing.T) {
	db := newTestDB(t)
	e := newEcho()
	h := NewFollowHandler(repositories.NewPostgresFollowRepository(db), repositories.NewPostgresUserRepository(db), true)
	user := createUser(t, db, "testusername")
	createUser(t, db, "testauthor")

	for i := 0; i < 2; i++ {
		c, rec := formContext(e, http.MethodPost, "/users/testauthor/follow", nil)
		c.SetParamNames("username")
		c.SetParamValues("testauthor")
		asUser(c, user)
		require.NoError(t, h.FollowAuthor(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, int64(1), followEdgeCount(t, db))
}

func TestSelfFollowIsSilentlySkipped(t *testing.T) {
	db := newTestDB(t)
	e := newEcho()
	h := NewFollowHandler(repositories.NewPostgresFollowRepository(db), repositories.NewPostgresUserRepository(db), true)
	user := createUser(t, db, "testusername")

	for i := 0; i < 3; i++ {
		c, rec := formContext(e, http.MethodPost, "/users/testusername/follow", nil)
		c.SetParamNames("username")
		c.SetParamValues("testusername")
		asUser(c, user)
		require.NoError(t, h.FollowAuthor(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, int64(0), followEdgeCount(t, db))
}

func TestFollowUnknownAuthor(t *testing.T) {
	db := newTestDB(t)
	e := newEcho()
	h := NewFollowHandler(repositories.NewPostgresFollowRepository(db), repositories.NewPostgresUserRepository(db), true)
	user := createUser(t, db, "testusername")

	c, _ := formContext(e, http.MethodPost, "/users/nobody/follow", nil)
	c.SetParamNames("username")
	c.SetParamValues("nobody")
	asUser(c, user)
	requireHTTPError(t, h.FollowAuthor(c), http.StatusNotFound)
}

func TestUnfollowRemovesEdge(t *testing.T) {
	db := newTestDB(t)
	e := newEcho()
	h := NewFollowHandler(repositories.NewPostgresFollowRepository(db), repositories.NewPostgresUserRepository(db), true)
	user := createUser(t, db, "testusername")
	author := createUser(t, db, "testauthor")
	require.NoError(t, db.Create(&models.Follow{UserID: user.ID, AuthorID: author.ID}).Error)

	c, rec := formContext(e, http.MethodDelete, "/users/testauthor/follow", nil)
	c.SetParamNames("username")
	c.SetParamValues("testauthor")
	asUser(c, user)
	require.NoError(t, h.UnfollowAuthor(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), followEdgeCount(t, db))
}

func TestUnfollowAbsentEdgeStrictMode(t *testing.T) {
	db := newTestDB(t)
	e := newEcho()
	h := NewFollowHandler(repositories.NewPostgresFollowRepository(db), repositories.NewPostgresUserRepository(db), true)
	user := createUser(t, db, "testusername")
	createUser(t, db, "testauthor")

	c, _ := formContext(e, http.MethodDelete, "/users/testauthor/follow", nil)
	c.SetParamNames("username")
	c.SetParamValues("testauthor")
	asUser(c, user)
	requireHTTPError(t, h.UnfollowAuthor(c), http.StatusNotFound)
}

func TestUnfollowAbsentEdgeIdempotentMode(t *testing.T) {
	db := newTestDB(t)
	e := newEcho()
	h := NewFollowHandler(repositories.NewPostgresFollowRepository(db), repositories.NewPostgresUserRepository(db), false)
	user := createUser(t, db, "testusername")
	createUser(t, db, "testauthor")

	c, rec := formContext(e, http.MethodDelete, "/users/testauthor/follow", nil)
	c.SetParamNames("username")
	c.SetParamValues("testauthor")
	asUser(c, user)
	require.NoError(t, h.UnfollowAuthor(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

package handlers

import (
	"net/http"
	"testing"

	"github.com/avdeyev/postline/internal/cache"
	"github.com/avdeyev/postline/internal/models"
	"github.com/avdeyev/postline/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAdminHandler(db *gorm.DB) *AdminHandler {
	return NewAdminHandler(cache.NewMemory(), repositories.NewPostgresUserRepository(db))
}

func TestAdminDeleteUserRemovesAccountAndContent(t *testing.T) {
	db := newTestDB(t)
	e := newEcho()
	h := newAdminHandler(db)
	admin := createAdmin(t, db, "testadmin")
	victim := createUser(t, db, "testusername")

	post := models.Post{Text: "hello", AuthorID: victim.ID}
	require.NoError(t, db.Create(&post).Error)
	require.NoError(t, db.Create(&models.Comment{PostID: &post.ID, AuthorID: victim.ID, Text: "test_text"}).Error)

	c, rec := formContext(e, http.MethodDelete, "/api/v1/admin/users/testusername", nil)
	c.SetParamNames("username")
	c.SetParamValues("testusername")
	asUser(c, admin)

	require.NoError(t, h.DeleteUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), countRows(t, db, &models.Post{}))
	assert.Equal(t, int64(0), countRows(t, db, &models.Comment{}))

	var remaining int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "testusername").Count(&remaining).Error)
	assert.Equal(t, int64(0), remaining)
}

func TestAdminDeleteUserRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	e := newEcho()
	h := newAdminHandler(db)
	user := createUser(t, db, "testusername")
	createUser(t, db, "testauthor")

	c, _ := formContext(e, http.MethodDelete, "/api/v1/admin/users/testauthor", nil)
	c.SetParamNames("username")
	c.SetParamValues("testauthor")
	asUser(c, user)

	requireHTTPError(t, h.DeleteUser(c), http.StatusForbidden)
	assert.Equal(t, int64(2), countRows(t, db, &models.User{}))
}

func TestAdminDeleteUnknownUser(t *testing.T) {
	db := newTestDB(t)
	e := newEcho()
	h := newAdminHandler(db)
	admin := createAdmin(t, db, "testadmin")

	c, _ := formContext(e, http.MethodDelete, "/api/v1/admin/users/nobody", nil)
	c.SetParamNames("username")
	c.SetParamValues("nobody")
	asUser(c, admin)

	requireHTTPError(t, h.DeleteUser(c), http.StatusNotFound)
}

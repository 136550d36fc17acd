package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/avdeyev/postline/internal/models"
	"github.com/avdeyev/postline/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPostHandler(db *gorm.DB) *PostHandler {
	return NewPostHandler(
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresCommentRepository(db),
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresGroupRepository(db),
		nil,
	)
}

func postCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	return count
}

func TestCreatePostRedirectsToPublicFeed(t *testing.T) {
	db := newTestDB(t)
	e := newEcho()
	h := newPostHandler(db)
	author := createUser(t, db, "testauthor")

	c, rec := formContext(e, http.MethodPost, "/posts", url.Values{"text": {"first post"}})
	asUser(c, author)

	require.NoError(t, h.CreatePost(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/feed", rec.Header().Get("Location"))
	assert.Equal(t, int64(1), postCount(t, db))
}

func TestCreatePostValidationFailureMutatesNothing(t *testing.T) {
	db := newTestDB(t)
	e := newEcho()
	h := newPostHandler(db)
	author := createUser(t, db, "testauthor")

	c, _ := formContext(e, http.MethodPost, "/posts", url.Values{"text": {""}})
	asUser(c, author)

	err := h.CreatePost(c)
	requireHTTPError(t, err, http.StatusBadRequest)
	assert.Equal(t, int64(0), postCount(t, db))
}

func TestCreatePostRejectsUnknownGroup(t *testing.T) {
	db := newTestDB(t)
	e := newEcho()
	h := newPostHandler(db)
	author := createUser(t, db, "testauthor")

	c, _ := formContext(e, http.MethodPost, "/posts", url.Values{"text": {"hello"}, "group_id": {"42"}})
	asUser(c, author)

	err := h.CreatePost(c)
	requireHTTPError(t, err, http.StatusBadRequest)
	assert.Equal(t, int64(0), postCount(t, db))
}

func TestEditPostByAuthor(t *testing.T) {
	db := newTestDB(t)
	e := newEcho()
	h := newPostHandler(db)
	author := createUser(t, db, "testauthor")
	post := models.Post{Text: "original", AuthorID: author.ID}
	require.NoError(t, db.Create(&post).Error)

	c, rec := formContext(e, http.MethodPost, "/posts/1/edit", url.Values{"text": {"edited"}})
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(post.ID))
	asUser(c, author)

	require.NoError(t, h.EditPost(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, fmt.Sprintf("/users/testauthor/posts/%d", post.ID), rec.Header().Get("Location"))

	var reloaded models.Post
	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Equal(t, "edited", reloaded.Text)
}

func TestEditPostByNonAuthorRedirectsWithoutMutation(t *testing.T) {
	db := newTestDB(t)
	e := newEcho()
	h := newPostHandler(db)
	author := createUser(t, db, "testauthor")
	intruder := createUser(t, db, "intruder")
	post := models.Post{Text: "original", AuthorID: author.ID}
	require.NoError(t, db.Create(&post).Error)

	c, rec := formContext(e, http.MethodPost, "/posts/1/edit", url.Values{"text": {"hijacked"}})
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(post.ID))
	asUser(c, intruder)

	require.NoError(t, h.EditPost(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/feed", rec.Header().Get("Location"))

	var reloaded models.Post
	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Equal(t, "original", reloaded.Text)
}

func TestGetPostRequiresMatchingAuthorUsername(t *testing.T) {
	db := newTestDB(t)
	e := newEcho()
	h := newPostHandler(db)
	author := createUser(t, db, "testauthor")
	other := createUser(t, db, "other")
	_ = other
	post := models.Post{Text: "hello", AuthorID: author.ID}
	require.NoError(t, db.Create(&post).Error)

	c, rec := formContext(e, http.MethodGet, "/users/testauthor/posts/1", nil)
	c.SetParamNames("username", "id")
	c.SetParamValues("testauthor", fmt.Sprint(post.ID))
	require.NoError(t, h.GetPost(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, _ = formContext(e, http.MethodGet, "/users/other/posts/1", nil)
	c.SetParamNames("username", "id")
	c.SetParamValues("other", fmt.Sprint(post.ID))
	requireHTTPError(t, h.GetPost(c), http.StatusNotFound)
}

func TestDeletePostCascadesComments(t *testing.T) {
	db := newTestDB(t)
	e := newEcho()
	h := newPostHandler(db)
	author := createUser(t, db, "testauthor")
	commenter := createUser(t, db, "commenter")
	post := models.Post{Text: "hello", AuthorID: author.ID}
	require.NoError(t, db.Create(&post).Error)
	require.NoError(t, db.Create(&models.Comment{PostID: &post.ID, AuthorID: commenter.ID, Text: "nice"}).Error)

	c, rec := formContext(e, http.MethodDelete, "/posts/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(post.ID))
	asUser(c, author)

	require.NoError(t, h.DeletePost(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), postCount(t, db))

	var comments int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Equal(t, int64(0), comments)
}

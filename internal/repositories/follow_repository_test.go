package repositories

import (
	"fmt"
	"strings"
	"testing"

	"github.com/avdeyev/postline/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Group{}, &models.Post{}, &models.Comment{}, &models.Follow{}))
	return db
}

func seedPair(t *testing.T, db *gorm.DB) (*models.User, *models.User) {
	t.Helper()
	user := &models.User{Username: "testusername", Email: "testusername@testmail.com"}
	require.NoError(t, db.Create(user).Error)
	author := &models.User{Username: "testauthor", Email: "testauthor@testmail.com"}
	require.NoError(t, db.Create(author).Error)
	return user, author
}

func edgeCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	return count
}

func TestCreateFollowIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	user, author := seedPair(t, db)

	require.NoError(t, repo.CreateFollow(&models.Follow{UserID: user.ID, AuthorID: author.ID}))
	require.NoError(t, repo.CreateFollow(&models.Follow{UserID: user.ID, AuthorID: author.ID}))

	assert.Equal(t, int64(1), edgeCount(t, db))

	following, err := repo.IsFollowing(user.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, following)
}

func TestDeleteFollowRemovesEdge(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	user, author := seedPair(t, db)

	require.NoError(t, repo.CreateFollow(&models.Follow{UserID: user.ID, AuthorID: author.ID}))
	require.NoError(t, repo.DeleteFollow(user.ID, author.ID))

	assert.Equal(t, int64(0), edgeCount(t, db))

	following, err := repo.IsFollowing(user.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestDeleteFollowAbsentEdge(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	user, author := seedPair(t, db)

	err := repo.DeleteFollow(user.ID, author.ID)
	assert.ErrorIs(t, err, ErrFollowNotFound)
}

func TestGetFollowedAuthorIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	user, author := seedPair(t, db)
	second := &models.User{Username: "secondauthor", Email: "secondauthor@testmail.com"}
	require.NoError(t, db.Create(second).Error)

	require.NoError(t, repo.CreateFollow(&models.Follow{UserID: user.ID, AuthorID: author.ID}))
	require.NoError(t, repo.CreateFollow(&models.Follow{UserID: user.ID, AuthorID: second.ID}))

	ids, err := repo.GetFollowedAuthorIDs(user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{author.ID, second.ID}, ids)

	// edges are directed: the author follows nobody
	ids, err = repo.GetFollowedAuthorIDs(author.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFollowCounts(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	user, author := seedPair(t, db)

	require.NoError(t, repo.CreateFollow(&models.Follow{UserID: user.ID, AuthorID: author.ID}))

	followers, err := repo.GetFollowersCount(author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), followers)

	following, err := repo.GetFollowingCount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), following)
}

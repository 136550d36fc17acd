package repositories

import (
	"github.com/avdeyev/postline/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(userID, authorID uint) error
	IsFollowing(userID, authorID uint) (bool, error)
	GetFollowedAuthorIDs(userID uint) ([]uint, error)
	GetFollowersCount(authorID uint) (int64, error)
	GetFollowingCount(userID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts the edge unless the (user, author) pair already exists.
// The insert races against itself safely: the unique index plus ON CONFLICT DO
// NOTHING means two concurrent follows of the same pair produce exactly one row
// and neither caller sees an error.
func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "author_id"}},
		DoNothing: true,
	}).Create(follow).Error
}

// DeleteFollow removes the edge if present and reports ErrFollowNotFound otherwise
func (r *PostgresFollowRepository) DeleteFollow(userID, authorID uint) error {
	res := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

// IsFollowing reports whether userID follows authorID
func (r *PostgresFollowRepository) IsFollowing(userID, authorID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("user_id = ? AND author_id = ?", userID, authorID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowedAuthorIDs returns the ids of every author the user follows
func (r *PostgresFollowRepository) GetFollowedAuthorIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("user_id = ?", userID).Pluck("author_id", &ids).Error
	return ids, err
}

// GetFollowersCount counts how many users follow the author
func (r *PostgresFollowRepository) GetFollowersCount(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// GetFollowingCount counts how many authors the user follows
func (r *PostgresFollowRepository) GetFollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

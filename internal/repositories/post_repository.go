package repositories

import (
	"errors"

	"github.com/avdeyev/postline/internal/models"
	"gorm.io/gorm"
)

// feedOrder is the global listing order: newest first, with the id as a
// deterministic tie-break when creation timestamps collide.
const feedOrder = "created_at DESC, id DESC"

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetAllPosts() ([]models.Post, error)
	GetPostsByGroupID(groupID uint) ([]models.Post, error)
	GetPostsByAuthorID(authorID uint) ([]models.Post, error)
	GetPostsByAuthorIDs(authorIDs []uint) ([]models.Post, error)
	CountPostsByAuthorID(authorID uint) (int64, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by ID from PostgreSQL
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves every post, newest first
func (r *PostgresPostRepository) GetAllPosts() ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Order(feedOrder).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByGroupID retrieves a group's posts, newest first
func (r *PostgresPostRepository) GetPostsByGroupID(groupID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Where("group_id = ?", groupID).Order(feedOrder).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByAuthorID retrieves one author's posts, newest first
func (r *PostgresPostRepository) GetPostsByAuthorID(authorID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Where("author_id = ?", authorID).Order(feedOrder).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByAuthorIDs retrieves posts by any of the given authors, newest first.
// An empty author set yields an empty result without touching the database.
func (r *PostgresPostRepository) GetPostsByAuthorIDs(authorIDs []uint) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, nil
	}
	var posts []models.Post
	if err := r.db.Where("author_id IN (?)", authorIDs).Order(feedOrder).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CountPostsByAuthorID counts one author's posts
func (r *PostgresPostRepository) CountPostsByAuthorID(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// UpdatePost updates an existing post in PostgreSQL
func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Save(post).Error
}

// DeletePost deletes a post by ID, cascading to its comments
func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})
}

package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/communityhub/internal/models"
)

// PostStore abstracts the newsfeed collection.
type PostStore interface {
	GetByID(id uuid.UUID) (*models.Post, error)
	List() ([]models.Post, error)
	Create(post *models.Post) error
	Update(id uuid.UUID, fields map[string]interface{}) error
	Delete(id uuid.UUID) error
	AddLike(id uuid.UUID, username string) error
	AddComment(comment *models.Comment) error
}

// Posts is the Postgres-backed PostStore.
type Posts struct {
	db *gorm.DB
}

// NewPosts constructs a Posts store over the given connection.
func NewPosts(db *gorm.DB) *Posts {
	return &Posts{db: db}
}

// GetByID returns a post with its comments, or (nil, nil) when absent.
func (s *Posts) GetByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc")
	}).First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// List returns all posts, newest first.
func (s *Posts) List() ([]models.Post, error) {
	var posts []models.Post
	err := s.db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc")
	}).Order("created_at desc").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Create persists a new post.
func (s *Posts) Create(post *models.Post) error {
	return s.db.Create(post).Error
}

// Update applies a partial update to a post.
func (s *Posts) Update(id uuid.UUID, fields map[string]interface{}) error {
	return s.db.Model(&models.Post{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes a post and its comments.
func (s *Posts) Delete(id uuid.UUID) error {
	return s.db.Delete(&models.Post{}, "id = ?", id).Error
}

// AddLike appends the username to the post's likes unless it is already there.
func (s *Posts) AddLike(id uuid.UUID, username string) error {
	return s.db.Exec(
		`UPDATE posts SET likes = array_append(likes, ?) WHERE id = ? AND NOT (? = ANY (likes))`,
		username, id, username,
	).Error
}

// AddComment attaches a comment to its post.
func (s *Posts) AddComment(comment *models.Comment) error {
	return s.db.Create(comment).Error
}

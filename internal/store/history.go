package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/communityhub/internal/models"
)

// HistoryStore abstracts the slug-keyed page collection.
type HistoryStore interface {
	GetBySlug(slug string) (*models.HistoryPage, error)
	Upsert(page *models.HistoryPage) error
}

// History is the Postgres-backed HistoryStore.
type History struct {
	db *gorm.DB
}

// NewHistory constructs a History store over the given connection.
func NewHistory(db *gorm.DB) *History {
	return &History{db: db}
}

// GetBySlug returns the page for the slug, or (nil, nil) when absent.
func (s *History) GetBySlug(slug string) (*models.HistoryPage, error) {
	var page models.HistoryPage
	if err := s.db.First(&page, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}

// Upsert writes the page, overwriting any existing record with the same slug.
func (s *History) Upsert(page *models.HistoryPage) error {
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(page).Error
}

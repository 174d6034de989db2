package models

import "time"

// HistoryPage is a CMS-style document keyed by its slug.
type HistoryPage struct {
	Slug      string    `gorm:"primaryKey" json:"slug"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

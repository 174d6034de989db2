package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Post is a newsfeed entry owned by the user who created it. Likes hold the
// usernames that liked the post, at most once each.
type Post struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string         `gorm:"index" json:"username"`
	Content   string         `json:"content"`
	ImageURL  *string        `json:"imageUrl"`
	Likes     pq.StringArray `gorm:"type:text[]" json:"likes"`
	Comments  []Comment      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`
	CreatedAt time.Time      `json:"createdAt"`
}

// BeforeCreate ensures UUIDs are generated for new posts.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Comment is a single comment attached to a post.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	PostID    uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate ensures UUIDs are generated for new comments.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

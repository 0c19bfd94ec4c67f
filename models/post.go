package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a feed entry authored by a user. Name and Avatar are snapshots of
// the author at creation time so the feed stays renderable without a join.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Name      string         `json:"name"`
	Avatar    string         `json:"avatar"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	Likes     []Like         `gorm:"foreignKey:PostID" json:"likes"`
	Comments  []Comment      `gorm:"foreignKey:PostID" json:"comments"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

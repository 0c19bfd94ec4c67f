package models

import "time"

// Comment represents a comment on a post. Like posts, comments carry an
// author name/avatar snapshot taken at creation time.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a comment on a post. Like posts, Name and Avatar snapshot the
// author at creation time.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PostID    uint           `gorm:"not null;index" json:"-"`
	UserID    uint           `gorm:"not null" json:"user"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	Name      string         `json:"name"`
	Avatar    string         `json:"avatar"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

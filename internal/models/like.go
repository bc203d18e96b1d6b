package models

import "time"

// Like represents a user's like on a post.
// The combination of UserID and PostID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

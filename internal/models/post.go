package models

import "time"

// Post is a piece of user-authored content.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:64;not null;index:idx_posts_username" json:"username"`
	Text     string `gorm:"type:text;not null" json:"text"`
	ImageURL string `gorm:"size:512" json:"imageUrl"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likesCount"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int       `gorm:"->" json:"commentsCount"`
	CreatedAt     time.Time `gorm:"index:idx_posts_created_at" json:"createdAt"`
}

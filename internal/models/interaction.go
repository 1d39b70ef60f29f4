package models

import "time"

// Like records that Username liked a post.
// The combination of PostID and Username must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_post_user" json:"postId"`
	Username  string    `gorm:"size:64;not null;uniqueIndex:idx_likes_post_user" json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment is a text reply attached to a post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index:idx_comments_post" json:"postId"`
	Username  string    `gorm:"size:64;not null" json:"username"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikeSummary is the public view of the likes on a post.
type LikeSummary struct {
	Count int64    `json:"count"`
	Users []string `json:"users"`
}

// Package models contains data structures for the application's domain models.
package models

import "time"

// User is a registered account. Username is the public identity key; the
// numeric ID never leaves the process.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	Username     string    `gorm:"size:64;not null;uniqueIndex:idx_users_username" json:"username"`
	Password     string    `gorm:"not null" json:"-"`
	DisplayName  string    `gorm:"size:128;not null" json:"displayName"`
	Email        string    `gorm:"size:255;not null" json:"email"`
	Bio          string    `gorm:"type:text" json:"bio"`
	Location     string    `gorm:"size:128" json:"location"`
	ProfileImage string    `gorm:"size:512" json:"profileImage"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

// ProfileUpdate carries a partial profile edit. Nil fields were not sent.
type ProfileUpdate struct {
	DisplayName *string `json:"displayName"`
	Email       *string `json:"email"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
}

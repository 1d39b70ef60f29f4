package models

import "time"

// Follow is a directed edge: Follower sees Followee's posts in their feed.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Follower  string    `gorm:"size:64;not null;uniqueIndex:idx_follows_pair" json:"follower"`
	Followee  string    `gorm:"size:64;not null;uniqueIndex:idx_follows_pair;index:idx_follows_followee" json:"followee"`
	CreatedAt time.Time `json:"createdAt"`
}

// FriendRequestStatus represents the state of a friend request.
type FriendRequestStatus string

const (
	// FriendRequestPending indicates a request awaiting the recipient.
	FriendRequestPending FriendRequestStatus = "pending"
	// FriendRequestAccepted is terminal.
	FriendRequestAccepted FriendRequestStatus = "accepted"
)

// FriendRequest asks ToUsername to become mutual followers with FromUsername.
// At most one pending request may exist per ordered pair.
type FriendRequest struct {
	ID           uint                `gorm:"primaryKey" json:"id"`
	FromUsername string              `gorm:"size:64;not null;uniqueIndex:idx_friend_requests_pending,where:status = 'pending'" json:"fromUsername"`
	ToUsername   string              `gorm:"size:64;not null;uniqueIndex:idx_friend_requests_pending,where:status = 'pending';index:idx_friend_requests_to" json:"toUsername"`
	Status       FriendRequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt    time.Time           `json:"createdAt"`
	HandledAt    *time.Time          `json:"handledAt,omitempty"`
}

// TableName specifies the table name for GORM
func (FriendRequest) TableName() string {
	return "friend_requests"
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Zarsham27/social-networking-web-app/internal/cache"
	"github.com/Zarsham27/social-networking-web-app/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendRepository defines the interface for friend request operations
type FriendRepository interface {
	Create(ctx context.Context, req *models.FriendRequest) error
	GetByID(ctx context.Context, id uint) (*models.FriendRequest, error)
	ListIncoming(ctx context.Context, to string) ([]models.FriendRequest, error)
	// Accept marks a pending request accepted and makes both users follow
	// each other, in one transaction.
	Accept(ctx context.Context, req *models.FriendRequest) error
}

// friendRepository implements FriendRepository
type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

// Create inserts a pending request. The partial unique index on pending
// (from, to) pairs rejects a concurrent duplicate.
func (r *friendRepository) Create(ctx context.Context, req *models.FriendRequest) error {
	req.Status = models.FriendRequestPending
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(req)
	if res.Error != nil {
		if isUniqueConstraintError(res.Error) {
			return models.NewConflictError("Friend request already pending")
		}
		return dbError(ctx, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewConflictError("Friend request already pending")
	}
	return nil
}

func (r *friendRepository) GetByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friend request", id)
		}
		return nil, dbError(ctx, err)
	}
	return &req, nil
}

func (r *friendRepository) ListIncoming(ctx context.Context, to string) ([]models.FriendRequest, error) {
	requests := []models.FriendRequest{}
	if err := r.db.WithContext(ctx).
		Where("to_username = ? AND status = ?", to, models.FriendRequestPending).
		Order("created_at ASC, id ASC").
		Find(&requests).Error; err != nil {
		return nil, dbError(ctx, err)
	}
	return requests, nil
}

func (r *friendRepository) Accept(ctx context.Context, req *models.FriendRequest) error {
	now := time.Now().UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Conditional update: a concurrent accept that got here first leaves
		// zero matching rows.
		res := tx.Model(&models.FriendRequest{}).
			Where("id = ? AND status = ?", req.ID, models.FriendRequestPending).
			Updates(map[string]interface{}{
				"status":     models.FriendRequestAccepted,
				"handled_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewStateError("Friend request already handled")
		}

		edges := []models.Follow{
			{Follower: req.FromUsername, Followee: req.ToUsername},
			{Follower: req.ToUsername, Followee: req.FromUsername},
		}
		// Existing edges are kept as they are.
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edges).Error
	})
	if err != nil {
		return dbError(ctx, err)
	}

	req.Status = models.FriendRequestAccepted
	req.HandledAt = &now
	cache.InvalidateFollowees(ctx, req.FromUsername, req.ToUsername)
	return nil
}

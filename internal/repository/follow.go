package repository

import (
	"context"

	"github.com/Zarsham27/social-networking-web-app/internal/cache"
	"github.com/Zarsham27/social-networking-web-app/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository stores directed follow edges.
type FollowRepository interface {
	Create(ctx context.Context, follower, followee string) error
	Delete(ctx context.Context, follower, followee string) error
	ListFollowees(ctx context.Context, follower string) ([]string, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the edge. The unique (follower, followee) index decides
// concurrent duplicates; the loser sees zero rows and gets a conflict.
func (r *followRepository) Create(ctx context.Context, follower, followee string) error {
	edge := models.Follow{Follower: follower, Followee: followee}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&edge)
	if res.Error != nil {
		if isUniqueConstraintError(res.Error) {
			return models.NewConflictError("Already following this user")
		}
		return dbError(ctx, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewConflictError("Already following this user")
	}
	cache.InvalidateFollowees(ctx, follower)
	return nil
}

func (r *followRepository) Delete(ctx context.Context, follower, followee string) error {
	res := r.db.WithContext(ctx).
		Where("follower = ? AND followee = ?", follower, followee).
		Delete(&models.Follow{})
	if res.Error != nil {
		return dbError(ctx, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundMessage("Not following this user")
	}
	cache.InvalidateFollowees(ctx, follower)
	return nil
}

func (r *followRepository) ListFollowees(ctx context.Context, follower string) ([]string, error) {
	followees := []string{}
	err := cache.Aside(ctx, cache.FolloweesKey(follower), &followees, cache.FolloweesTTL, func() error {
		if err := r.db.WithContext(ctx).
			Model(&models.Follow{}).
			Where("follower = ?", follower).
			Order("followee ASC").
			Pluck("followee", &followees).Error; err != nil {
			return dbError(ctx, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return followees, nil
}

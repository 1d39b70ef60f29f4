package repository

import (
	"context"
	"errors"

	"github.com/Zarsham27/social-networking-web-app/internal/cache"
	"github.com/Zarsham27/social-networking-web-app/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	// GetByUsername loads the full record including the password hash.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// GetProfile loads the public projection, served from cache when possible.
	GetProfile(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, username string, fields map[string]interface{}) (*models.User, error)
	Search(ctx context.Context, query string) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Username already taken")
		}
		return dbError(ctx, err)
	}
	return nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", username)
		}
		return nil, dbError(ctx, err)
	}
	return &user, nil
}

func (r *userRepository) GetProfile(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(username), &user, cache.UserTTL, func() error {
		found, err := r.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		user = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Exists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, dbError(ctx, err)
	}
	return count > 0, nil
}

func (r *userRepository) Update(ctx context.Context, username string, fields map[string]interface{}) (*models.User, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Updates(fields)
	if res.Error != nil {
		return nil, dbError(ctx, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("User", username)
	}
	cache.InvalidateUser(ctx, username)
	return r.GetByUsername(ctx, username)
}

func (r *userRepository) Search(ctx context.Context, query string) ([]models.User, error) {
	users := []models.User{}
	q := r.db.WithContext(ctx).Order("username ASC")
	if query != "" {
		q = q.Where("LOWER(username) LIKE ? ESCAPE '"+likeEscape+"'", containsPattern(query))
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, dbError(ctx, err)
	}
	return users, nil
}

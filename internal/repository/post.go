package repository

import (
	"context"
	"errors"

	"github.com/Zarsham27/social-networking-web-app/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post and like data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Search(ctx context.Context, query string) ([]models.Post, error)
	ListByAuthors(ctx context.Context, authors []string) ([]models.Post, error)
	Like(ctx context.Context, postID uint, username string) error
	Unlike(ctx context.Context, postID uint, username string) error
	CountLikes(ctx context.Context, postID uint) (int64, error)
	ListLikers(ctx context.Context, postID uint) ([]string, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return dbError(ctx, err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.applyPostDetails(r.db.WithContext(ctx)).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Content", id)
		}
		return nil, dbError(ctx, err)
	}
	return &post, nil
}

func (r *postRepository) Search(ctx context.Context, query string) ([]models.Post, error) {
	posts := []models.Post{}
	q := r.applyPostDetails(r.db.WithContext(ctx))
	if query != "" {
		q = q.Where("LOWER(posts.text) LIKE ? ESCAPE '"+likeEscape+"'", containsPattern(query))
	}
	if err := newestFirst(q).Find(&posts).Error; err != nil {
		return nil, dbError(ctx, err)
	}
	return posts, nil
}

func (r *postRepository) ListByAuthors(ctx context.Context, authors []string) ([]models.Post, error) {
	posts := []models.Post{}
	if len(authors) == 0 {
		return posts, nil
	}
	q := r.applyPostDetails(r.db.WithContext(ctx)).Where("posts.username IN ?", authors)
	if err := newestFirst(q).Find(&posts).Error; err != nil {
		return nil, dbError(ctx, err)
	}
	return posts, nil
}

// Like inserts the like. The unique (post_id, username) index makes a
// concurrent double like insert exactly one row.
func (r *postRepository) Like(ctx context.Context, postID uint, username string) error {
	like := models.Like{PostID: postID, Username: username}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
	if res.Error != nil {
		if isUniqueConstraintError(res.Error) {
			return models.NewConflictError("Already liked")
		}
		return dbError(ctx, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewConflictError("Already liked")
	}
	return nil
}

func (r *postRepository) Unlike(ctx context.Context, postID uint, username string) error {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND username = ?", postID, username).
		Delete(&models.Like{})
	if res.Error != nil {
		return dbError(ctx, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundMessage("Like not found")
	}
	return nil
}

func (r *postRepository) CountLikes(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, dbError(ctx, err)
	}
	return count, nil
}

func (r *postRepository) ListLikers(ctx context.Context, postID uint) ([]string, error) {
	users := []string{}
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Pluck("username", &users).Error; err != nil {
		return nil, dbError(ctx, err)
	}
	return users, nil
}

// applyPostDetails adds subqueries to fetch like and comment counts in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count")
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("posts.created_at DESC").Order("posts.id DESC")
}

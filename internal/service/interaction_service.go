package service

import (
	"context"

	"github.com/Zarsham27/social-networking-web-app/internal/models"
	"github.com/Zarsham27/social-networking-web-app/internal/observability"
	"github.com/Zarsham27/social-networking-web-app/internal/repository"
	"github.com/Zarsham27/social-networking-web-app/internal/validation"
)

// InteractionService handles likes and comments on posts.
type InteractionService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// AddCommentInput is the payload for a new comment.
type AddCommentInput struct {
	PostID   uint
	Username string
	Text     string
}

// NewInteractionService returns a new InteractionService.
func NewInteractionService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) *InteractionService {
	return &InteractionService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// Like records that username likes the post. Liking twice is a conflict.
func (s *InteractionService) Like(ctx context.Context, postID uint, username string) error {
	if err := s.requirePost(ctx, postID); err != nil {
		return err
	}
	if err := s.postRepo.Like(ctx, postID, username); err != nil {
		return err
	}
	observability.GraphEvents.WithLabelValues("like").Inc()
	return nil
}

// Unlike removes username's like from the post.
func (s *InteractionService) Unlike(ctx context.Context, postID uint, username string) error {
	if postID == 0 {
		return models.NewValidationError("Invalid content ID")
	}
	if err := s.postRepo.Unlike(ctx, postID, username); err != nil {
		return err
	}
	observability.GraphEvents.WithLabelValues("unlike").Inc()
	return nil
}

// CountLikes returns how many users like the post.
func (s *InteractionService) CountLikes(ctx context.Context, postID uint) (int64, error) {
	if postID == 0 {
		return 0, models.NewValidationError("Invalid content ID")
	}
	return s.postRepo.CountLikes(ctx, postID)
}

// ListLikers returns the usernames that like the post.
func (s *InteractionService) ListLikers(ctx context.Context, postID uint) ([]string, error) {
	if postID == 0 {
		return nil, models.NewValidationError("Invalid content ID")
	}
	return s.postRepo.ListLikers(ctx, postID)
}

// Likes returns the count and likers together.
func (s *InteractionService) Likes(ctx context.Context, postID uint) (*models.LikeSummary, error) {
	users, err := s.ListLikers(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &models.LikeSummary{Count: int64(len(users)), Users: users}, nil
}

// AddComment appends a trimmed comment to the post.
func (s *InteractionService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	text, err := validation.RequireText("Comment text", in.Text)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := s.requirePost(ctx, in.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   in.PostID,
		Username: in.Username,
		Text:     text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	observability.GraphEvents.WithLabelValues("comment").Inc()
	return comment, nil
}

// ListComments returns the post's comments oldest first.
func (s *InteractionService) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	if postID == 0 {
		return nil, models.NewValidationError("Invalid content ID")
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

func (s *InteractionService) requirePost(ctx context.Context, postID uint) error {
	if postID == 0 {
		return models.NewValidationError("Invalid content ID")
	}
	_, err := s.postRepo.GetByID(ctx, postID)
	return err
}

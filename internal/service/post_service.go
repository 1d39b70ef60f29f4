package service

import (
	"context"
	"strings"

	"github.com/Zarsham27/social-networking-web-app/internal/models"
	"github.com/Zarsham27/social-networking-web-app/internal/observability"
	"github.com/Zarsham27/social-networking-web-app/internal/repository"
	"github.com/Zarsham27/social-networking-web-app/internal/validation"
)

// PostService provides content creation and search.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput is the payload for a new post.
type CreatePostInput struct {
	Username string
	Text     string
	ImageURL string
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost stores trimmed text owned by in.Username.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	text, err := validation.RequireText("Text", in.Text)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		Username: in.Username,
		Text:     text,
		ImageURL: strings.TrimSpace(in.ImageURL),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	observability.PostsCreated.Inc()
	return post, nil
}

// GetPost returns a single post with its counters.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	if id == 0 {
		return nil, models.NewValidationError("Invalid content ID")
	}
	return s.postRepo.GetByID(ctx, id)
}

// SearchPosts matches query anywhere in the text, ignoring case, newest
// first. An empty query lists every post.
func (s *PostService) SearchPosts(ctx context.Context, query string) ([]models.Post, error) {
	return s.postRepo.Search(ctx, strings.TrimSpace(query))
}

// ListByAuthors returns posts by any of authors, newest first.
func (s *PostService) ListByAuthors(ctx context.Context, authors []string) ([]models.Post, error) {
	return s.postRepo.ListByAuthors(ctx, authors)
}

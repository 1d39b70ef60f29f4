package service

import (
	"context"

	"github.com/Zarsham27/social-networking-web-app/internal/models"
	"github.com/Zarsham27/social-networking-web-app/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// FolloweeLister lists who a user follows.
type FolloweeLister interface {
	ListFollowees(ctx context.Context, follower string) ([]string, error)
}

// AuthorPostLister lists posts by a set of authors, newest first.
type AuthorPostLister interface {
	ListByAuthors(ctx context.Context, authors []string) ([]models.Post, error)
}

// FeedService assembles a viewer's home feed.
type FeedService struct {
	graph FolloweeLister
	posts AuthorPostLister
}

// NewFeedService returns a new FeedService.
func NewFeedService(graph FolloweeLister, posts AuthorPostLister) *FeedService {
	return &FeedService{graph: graph, posts: posts}
}

// BuildFeed returns posts by everyone the viewer follows, newest first.
// Following nobody yields an empty feed.
func (s *FeedService) BuildFeed(ctx context.Context, viewer string) ([]models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "feed.build", attribute.String("feed.viewer", viewer))
	defer span.End()

	followees, err := s.graph.ListFollowees(ctx, viewer)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	span.AddAttributes(attribute.Int("feed.followees", len(followees)))
	if len(followees) == 0 {
		return []models.Post{}, nil
	}

	posts, err := s.posts.ListByAuthors(ctx, followees)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	span.AddAttributes(attribute.Int("feed.posts", len(posts)))
	return posts, nil
}

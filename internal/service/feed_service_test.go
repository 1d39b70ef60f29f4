package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Zarsham27/social-networking-web-app/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type followeeListerStub struct {
	listFolloweesFn func(context.Context, string) ([]string, error)
}

func (s *followeeListerStub) ListFollowees(ctx context.Context, follower string) ([]string, error) {
	return s.listFolloweesFn(ctx, follower)
}

type authorPostListerStub struct {
	listByAuthorsFn func(context.Context, []string) ([]models.Post, error)
}

func (s *authorPostListerStub) ListByAuthors(ctx context.Context, authors []string) ([]models.Post, error) {
	return s.listByAuthorsFn(ctx, authors)
}

func TestFeedService_EmptyFolloweesSkipsPostLookup(t *testing.T) {
	graph := &followeeListerStub{listFolloweesFn: func(context.Context, string) ([]string, error) {
		return []string{}, nil
	}}
	posts := &authorPostListerStub{listByAuthorsFn: func(context.Context, []string) ([]models.Post, error) {
		t.Fatal("ListByAuthors must not be called for an empty followee set")
		return nil, nil
	}}

	feed, err := NewFeedService(graph, posts).BuildFeed(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}

func TestFeedService_PropagatesErrors(t *testing.T) {
	boom := models.NewTimeoutError(errors.New("deadline"))
	graph := &followeeListerStub{listFolloweesFn: func(context.Context, string) ([]string, error) {
		return nil, boom
	}}

	_, err := NewFeedService(graph, &authorPostListerStub{}).BuildFeed(context.Background(), "alice")
	assert.ErrorIs(t, err, boom)
}

func TestFeedService_PassesFolloweesToPosts(t *testing.T) {
	var gotAuthors []string
	graph := &followeeListerStub{listFolloweesFn: func(_ context.Context, follower string) ([]string, error) {
		assert.Equal(t, "alice", follower)
		return []string{"bob", "carol"}, nil
	}}
	posts := &authorPostListerStub{listByAuthorsFn: func(_ context.Context, authors []string) ([]models.Post, error) {
		gotAuthors = authors
		return []models.Post{{ID: 2, Username: "carol"}, {ID: 1, Username: "bob"}}, nil
	}}

	feed, err := NewFeedService(graph, posts).BuildFeed(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, gotAuthors)
	assert.Len(t, feed, 2)
}

func TestFeedService_Scenarios(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	svc.register(t, "alice")
	svc.register(t, "bob")
	svc.register(t, "carol")

	_, err := svc.posts.CreatePost(ctx, CreatePostInput{Username: "carol", Text: "global noise"})
	require.NoError(t, err)

	// Following nobody gives an empty feed even with posts around
	feed, err := svc.feed.BuildFeed(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, feed)

	require.NoError(t, svc.graph.Follow(ctx, "alice", "bob"))
	_, err = svc.posts.CreatePost(ctx, CreatePostInput{Username: "bob", Text: "Hello"})
	require.NoError(t, err)

	feed, err = svc.feed.BuildFeed(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "Hello", feed[0].Text)

	time.Sleep(5 * time.Millisecond)
	_, err = svc.posts.CreatePost(ctx, CreatePostInput{Username: "bob", Text: "Second"})
	require.NoError(t, err)

	feed, err = svc.feed.BuildFeed(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "Second", feed[0].Text)
	for _, p := range feed {
		assert.Equal(t, "bob", p.Username)
	}
}

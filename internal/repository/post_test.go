package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Zarsham27/social-networking-web-app/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPost(t *testing.T, repo PostRepository, author, text string, at time.Time) *models.Post {
	t.Helper()
	post := &models.Post{Username: author, Text: text, CreatedAt: at}
	require.NoError(t, repo.Create(context.Background(), post))
	return post
}

func TestPostRepository_SearchAndOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	createPost(t, repo, "alice", "Hello world", base)
	createPost(t, repo, "bob", "hello again", base.Add(time.Minute))
	createPost(t, repo, "carol", "Goodbye", base.Add(2*time.Minute))

	all, err := repo.Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Goodbye", all[0].Text)
	assert.Equal(t, "Hello world", all[2].Text)

	hello, err := repo.Search(ctx, "HELLO")
	require.NoError(t, err)
	require.Len(t, hello, 2)
	assert.Equal(t, "hello again", hello[0].Text)

	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt), "posts must be newest first")
	}
}

func TestPostRepository_ListByAuthors(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	createPost(t, repo, "alice", "a1", base)
	createPost(t, repo, "bob", "b1", base.Add(time.Minute))
	createPost(t, repo, "alice", "a2", base.Add(2*time.Minute))

	posts, err := repo.ListByAuthors(ctx, []string{"alice"})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "a2", posts[0].Text)
	assert.Equal(t, "a1", posts[1].Text)

	posts, err = repo.ListByAuthors(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestPostRepository_Likes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	post := createPost(t, repo, "alice", "likeable", time.Now())

	require.NoError(t, repo.Like(ctx, post.ID, "bob"))
	require.NoError(t, repo.Like(ctx, post.ID, "carol"))
	requireCode(t, repo.Like(ctx, post.ID, "bob"), models.CodeConflict)

	count, err := repo.CountLikes(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	likers, err := repo.ListLikers(ctx, post.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"bob", "carol"}, likers)

	loaded, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.LikesCount)

	require.NoError(t, repo.Unlike(ctx, post.ID, "bob"))
	requireCode(t, repo.Unlike(ctx, post.ID, "bob"), models.CodeNotFound)

	count, err = repo.CountLikes(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPostRepository_GetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	_, err := NewPostRepository(db).GetByID(context.Background(), 999)
	requireCode(t, err, models.CodeNotFound)
}

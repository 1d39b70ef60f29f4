package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/Zarsham27/social-networking-web-app/internal/cache"
	"github.com/Zarsham27/social-networking-web-app/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_CreateListDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "alice", "bob"))
	require.NoError(t, repo.Create(ctx, "alice", "carol"))

	followees, err := repo.ListFollowees(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, followees)

	requireCode(t, repo.Create(ctx, "alice", "bob"), models.CodeConflict)

	require.NoError(t, repo.Delete(ctx, "alice", "bob"))
	requireCode(t, repo.Delete(ctx, "alice", "bob"), models.CodeNotFound)

	followees, err = repo.ListFollowees(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"carol"}, followees)

	followees, err = repo.ListFollowees(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, followees)
}

func TestFollowRepository_ConcurrentDuplicateYieldsOneEdge(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(ctx, "alice", "bob")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, models.IsCode(err, models.CodeConflict), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFollowRepository_CacheInvalidation(t *testing.T) {
	db := setupTestDB(t)
	mr, err := miniredis.Run()
	require.NoError(t, err)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() {
		cache.SetClient(nil)
		mr.Close()
	})

	repo := NewFollowRepository(db)
	ctx := context.Background()

	followees, err := repo.ListFollowees(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, followees)
	assert.True(t, mr.Exists(cache.FolloweesKey("alice")))

	require.NoError(t, repo.Create(ctx, "alice", "bob"))
	assert.False(t, mr.Exists(cache.FolloweesKey("alice")))

	followees, err = repo.ListFollowees(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, followees)
}

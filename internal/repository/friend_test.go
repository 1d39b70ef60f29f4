package repository

import (
	"context"
	"testing"

	"github.com/Zarsham27/social-networking-web-app/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendRepository_CreateAndListIncoming(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFriendRepository(db)
	ctx := context.Background()

	first := &models.FriendRequest{FromUsername: "bob", ToUsername: "alice"}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, models.FriendRequestPending, first.Status)
	assert.NotZero(t, first.ID)

	second := &models.FriendRequest{FromUsername: "carol", ToUsername: "alice"}
	require.NoError(t, repo.Create(ctx, second))

	// Opposite direction is a different ordered pair
	require.NoError(t, repo.Create(ctx, &models.FriendRequest{FromUsername: "alice", ToUsername: "bob"}))

	dup := &models.FriendRequest{FromUsername: "bob", ToUsername: "alice"}
	requireCode(t, repo.Create(ctx, dup), models.CodeConflict)

	incoming, err := repo.ListIncoming(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, incoming, 2)
	assert.Equal(t, "bob", incoming[0].FromUsername)
	assert.Equal(t, "carol", incoming[1].FromUsername)
}

func TestFriendRepository_Accept(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFriendRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	// alice already follows bob; accept must not fail on the existing edge
	require.NoError(t, follows.Create(ctx, "alice", "bob"))

	req := &models.FriendRequest{FromUsername: "bob", ToUsername: "alice"}
	require.NoError(t, repo.Create(ctx, req))

	require.NoError(t, repo.Accept(ctx, req))
	assert.Equal(t, models.FriendRequestAccepted, req.Status)
	assert.NotNil(t, req.HandledAt)

	stored, err := repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestAccepted, stored.Status)
	assert.NotNil(t, stored.HandledAt)

	bobFollows, err := follows.ListFollowees(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, bobFollows)

	aliceFollows, err := follows.ListFollowees(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, aliceFollows)

	// A stale copy still marked pending loses the conditional update
	stale := *stored
	stale.Status = models.FriendRequestPending
	requireCode(t, repo.Accept(ctx, &stale), models.CodeState)

	incoming, err := repo.ListIncoming(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, incoming)
}

func TestFriendRepository_GetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	_, err := NewFriendRepository(db).GetByID(context.Background(), 404)
	requireCode(t, err, models.CodeNotFound)
}

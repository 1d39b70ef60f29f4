package service

import (
	"testing"

	"github.com/Zarsham27/social-networking-web-app/internal/models"
	"github.com/Zarsham27/social-networking-web-app/internal/repository"
	"github.com/Zarsham27/social-networking-web-app/internal/testutil"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServices struct {
	users        *UserService
	graph        *GraphService
	posts        *PostService
	interactions *InteractionService
	feed         *FeedService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db := testutil.NewTestDB(t)

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	users := NewUserService(userRepo)
	users.hashCost = bcrypt.MinCost
	graph := NewGraphService(repository.NewFollowRepository(db), repository.NewFriendRepository(db), userRepo)
	posts := NewPostService(postRepo)

	return &testServices{
		users:        users,
		graph:        graph,
		posts:        posts,
		interactions: NewInteractionService(postRepo, repository.NewCommentRepository(db)),
		feed:         NewFeedService(graph, posts),
	}
}

func (s *testServices) register(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := s.users.Register(t.Context(), RegisterInput{
		Username:    username,
		Password:    "Abcd123!",
		DisplayName: username,
		Email:       username + "@example.com",
	})
	require.NoError(t, err)
	return user
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, models.IsCode(err, code), "expected %s, got %v", code, err)
}

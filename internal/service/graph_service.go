package service

import (
	"context"
	"strings"

	"github.com/Zarsham27/social-networking-web-app/internal/models"
	"github.com/Zarsham27/social-networking-web-app/internal/observability"
	"github.com/Zarsham27/social-networking-web-app/internal/repository"
)

// GraphService provides follow and friend-request business logic.
type GraphService struct {
	followRepo repository.FollowRepository
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewGraphService returns a new GraphService.
func NewGraphService(
	followRepo repository.FollowRepository,
	friendRepo repository.FriendRepository,
	userRepo repository.UserRepository,
) *GraphService {
	return &GraphService{
		followRepo: followRepo,
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// Follow makes follower see followee's posts.
func (s *GraphService) Follow(ctx context.Context, follower, followee string) error {
	followee = strings.TrimSpace(followee)
	if followee == "" {
		return models.NewValidationError("Username to follow is required")
	}
	if follower == followee {
		return models.NewSelfReferenceError("You cannot follow yourself")
	}
	if err := s.requireUser(ctx, followee); err != nil {
		return err
	}
	if err := s.followRepo.Create(ctx, follower, followee); err != nil {
		return err
	}
	observability.GraphEvents.WithLabelValues("follow").Inc()
	return nil
}

// Unfollow removes the edge follower → followee.
func (s *GraphService) Unfollow(ctx context.Context, follower, followee string) error {
	followee = strings.TrimSpace(followee)
	if followee == "" {
		return models.NewValidationError("Username to unfollow is required")
	}
	if err := s.followRepo.Delete(ctx, follower, followee); err != nil {
		return err
	}
	observability.GraphEvents.WithLabelValues("unfollow").Inc()
	return nil
}

// ListFollowees returns the usernames follower follows.
func (s *GraphService) ListFollowees(ctx context.Context, follower string) ([]string, error) {
	return s.followRepo.ListFollowees(ctx, follower)
}

// SendFriendRequest creates a pending request from → to.
func (s *GraphService) SendFriendRequest(ctx context.Context, from, to string) (*models.FriendRequest, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return nil, models.NewValidationError("Recipient username is required")
	}
	if from == to {
		return nil, models.NewSelfReferenceError("You cannot send a friend request to yourself")
	}
	if err := s.requireUser(ctx, to); err != nil {
		return nil, err
	}

	req := &models.FriendRequest{FromUsername: from, ToUsername: to}
	if err := s.friendRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	observability.GraphEvents.WithLabelValues("friend_request").Inc()
	return req, nil
}

// ListIncomingRequests returns pending requests addressed to username.
func (s *GraphService) ListIncomingRequests(ctx context.Context, username string) ([]models.FriendRequest, error) {
	return s.friendRepo.ListIncoming(ctx, username)
}

// AcceptFriendRequest accepts a pending request on behalf of its recipient
// and makes both users follow each other.
func (s *GraphService) AcceptFriendRequest(ctx context.Context, requestID uint, actor string) (*models.FriendRequest, error) {
	if requestID == 0 {
		return nil, models.NewValidationError("Invalid friend request ID")
	}

	req, err := s.friendRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.ToUsername != actor {
		return nil, models.NewForbiddenError("You can only accept friend requests sent to you")
	}
	if req.Status != models.FriendRequestPending {
		return nil, models.NewStateError("Friend request already handled")
	}

	if err := s.friendRepo.Accept(ctx, req); err != nil {
		return nil, err
	}
	observability.GraphEvents.WithLabelValues("friend_accept").Inc()
	return req, nil
}

func (s *GraphService) requireUser(ctx context.Context, username string) error {
	exists, err := s.userRepo.Exists(ctx, username)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("User", username)
	}
	return nil
}

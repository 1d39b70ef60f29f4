package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowRequest is the body of POST /follow.
type FollowRequest struct {
	UsernameToFollow string `json:"usernameToFollow"`
}

// UnfollowRequest is the body of DELETE /follow.
type UnfollowRequest struct {
	UsernameToUnfollow string `json:"usernameToUnfollow"`
}

// SendFriendRequestRequest is the body of POST /friend-requests.
type SendFriendRequestRequest struct {
	ToUsername string `json:"toUsername"`
}

// Follow handles POST /api/follow
// @Summary Follow a user
// @Tags graph
// @Accept json
// @Produce json
// @Param request body FollowRequest true "Who to follow"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /follow [post]
func (s *Server) Follow(c *fiber.Ctx) error {
	var req FollowRequest
	if err := s.bindJSON(c, &req); err != nil {
		return nil
	}

	if err := s.graphService.Follow(c.UserContext(), currentUsername(c), req.UsernameToFollow); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Now following " + req.UsernameToFollow})
}

// Unfollow handles DELETE /api/follow
func (s *Server) Unfollow(c *fiber.Ctx) error {
	var req UnfollowRequest
	if err := s.bindJSON(c, &req); err != nil {
		return nil
	}

	if err := s.graphService.Unfollow(c.UserContext(), currentUsername(c), req.UsernameToUnfollow); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Unfollowed " + req.UsernameToUnfollow})
}

// GetFollowing handles GET /api/follow
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	following, err := s.graphService.ListFollowees(c.UserContext(), currentUsername(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"following": following})
}

// SendFriendRequest handles POST /api/friend-requests
// @Summary Send a friend request
// @Tags graph
// @Accept json
// @Produce json
// @Param request body SendFriendRequestRequest true "Recipient"
// @Success 201 {object} models.FriendRequest
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /friend-requests [post]
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	var req SendFriendRequestRequest
	if err := s.bindJSON(c, &req); err != nil {
		return nil
	}

	friendReq, err := s.graphService.SendFriendRequest(c.UserContext(), currentUsername(c), req.ToUsername)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(friendReq)
}

// GetIncomingRequests handles GET /api/friend-requests
func (s *Server) GetIncomingRequests(c *fiber.Ctx) error {
	requests, err := s.graphService.ListIncomingRequests(c.UserContext(), currentUsername(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(requests)
}

// AcceptFriendRequest handles POST /api/friend-requests/:id/accept
// @Summary Accept a friend request
// @Description Only the recipient may accept; both users then follow each other
// @Tags graph
// @Produce json
// @Param id path int true "Friend request ID"
// @Success 200 {object} models.FriendRequest
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /friend-requests/{id}/accept [post]
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	friendReq, err := s.graphService.AcceptFriendRequest(c.UserContext(), requestID, currentUsername(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(friendReq)
}

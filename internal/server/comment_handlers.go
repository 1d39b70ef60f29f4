package server

import (
	"github.com/Zarsham27/social-networking-web-app/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateCommentRequest is the body of POST /contents/:id/comments.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// LikeContent handles POST /api/contents/:id/like
func (s *Server) LikeContent(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx := c.UserContext()
	if err := s.interactionService.Like(ctx, postID, currentUsername(c)); err != nil {
		return s.respondError(c, err)
	}
	count, err := s.interactionService.CountLikes(ctx, postID)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Liked",
		"count":   count,
	})
}

// UnlikeContent handles DELETE /api/contents/:id/like
func (s *Server) UnlikeContent(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx := c.UserContext()
	if err := s.interactionService.Unlike(ctx, postID, currentUsername(c)); err != nil {
		return s.respondError(c, err)
	}
	count, err := s.interactionService.CountLikes(ctx, postID)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Unliked",
		"count":   count,
	})
}

// GetLikes handles GET /api/contents/:id/likes
// @Summary List likes
// @Tags contents
// @Produce json
// @Param id path int true "Content ID"
// @Success 200 {object} models.LikeSummary
// @Failure 400 {object} models.ErrorResponse
// @Router /contents/{id}/likes [get]
func (s *Server) GetLikes(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	summary, err := s.interactionService.Likes(c.UserContext(), postID)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(summary)
}

// CreateComment handles POST /api/contents/:id/comments
// @Summary Comment on content
// @Tags contents
// @Accept json
// @Produce json
// @Param id path int true "Content ID"
// @Param request body CreateCommentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /contents/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req CreateCommentRequest
	if err := s.bindJSON(c, &req); err != nil {
		return nil
	}

	comment, err := s.interactionService.AddComment(c.UserContext(), service.AddCommentInput{
		PostID:   postID,
		Username: currentUsername(c),
		Text:     req.Text,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/contents/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.interactionService.ListComments(c.UserContext(), postID)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(comments)
}

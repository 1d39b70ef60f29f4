package server

import (
	"github.com/Zarsham27/social-networking-web-app/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateContentRequest is the body of POST /contents.
type CreateContentRequest struct {
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// CreateContent handles POST /api/contents
// @Summary Create content
// @Tags contents
// @Accept json
// @Produce json
// @Param request body CreateContentRequest true "Content"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Router /contents [post]
func (s *Server) CreateContent(c *fiber.Ctx) error {
	var req CreateContentRequest
	if err := s.bindJSON(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		Username: currentUsername(c),
		Text:     req.Text,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// SearchContents handles GET /api/contents?q=
// @Summary Search content
// @Description Case-insensitive substring match on the text, newest first. No query lists everything.
// @Tags contents
// @Produce json
// @Param q query string false "Substring of the text"
// @Success 200 {array} models.Post
// @Router /contents [get]
func (s *Server) SearchContents(c *fiber.Ctx) error {
	posts, err := s.postService.SearchPosts(c.UserContext(), c.Query("q"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(posts)
}

// GetFeed handles GET /api/feed
// @Summary Home feed
// @Description Posts by everyone the caller follows, newest first
// @Tags contents
// @Produce json
// @Success 200 {array} models.Post
// @Router /feed [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	posts, err := s.feedService.BuildFeed(c.UserContext(), currentUsername(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(posts)
}

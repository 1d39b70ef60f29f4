package server

import (
	"github.com/Zarsham27/social-networking-web-app/internal/models"
	"github.com/Zarsham27/social-networking-web-app/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RegisterRequest is the body of POST /users.
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Register handles POST /api/users
// @Summary Register
// @Description Create an account with an empty bio, location and picture
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration"
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /users [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := s.bindJSON(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.Register(c.UserContext(), service.RegisterInput{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Email:       req.Email,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// SearchUsers handles GET /api/users?q=
// @Summary Search users
// @Tags users
// @Produce json
// @Param q query string false "Substring of the username"
// @Success 200 {array} models.User
// @Router /users [get]
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	users, err := s.userService.SearchUsers(c.UserContext(), c.Query("q"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(users)
}

// GetUserProfile handles GET /api/users/:username
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.UserContext(), c.Params("username"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(user)
}

// GetMyProfile handles GET /api/profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.UserContext(), currentUsername(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/profile
// @Summary Edit profile
// @Description Only the fields present in the body change
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.ProfileUpdate true "Profile fields"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /profile [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req models.ProfileUpdate
	if err := s.bindJSON(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), currentUsername(c), req)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateProfilePicture handles PUT /api/profile/picture (multipart "image")
func (s *Server) UpdateProfilePicture(c *fiber.Ctx) error {
	username := currentUsername(c)
	file, err := s.readFormFile(c, "image")
	if err != nil {
		return nil
	}

	uploaded, err := s.imageService.Upload(service.UploadImageInput{
		Username:    username,
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Content:     file.Content,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	user, err := s.userService.UpdateProfileImage(c.UserContext(), username, uploaded.URL)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(user)
}

package server

import (
	"github.com/Zarsham27/social-networking-web-app/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadImage handles POST /api/uploads (multipart "image")
// @Summary Upload an image
// @Description Stores a JPEG master and a WebP copy and returns their URLs
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image"
// @Success 201 {object} models.Upload
// @Failure 400 {object} models.ErrorResponse
// @Router /uploads [post]
func (s *Server) UploadImage(c *fiber.Ctx) error {
	file, err := s.readFormFile(c, "image")
	if err != nil {
		return nil
	}

	uploaded, err := s.imageService.Upload(service.UploadImageInput{
		Username:    currentUsername(c),
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Content:     file.Content,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(uploaded)
}

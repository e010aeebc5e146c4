package server

import (
	"gather/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateGroupPost handles POST /api/groups/:id/posts
func (s *Server) CreateGroupPost(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content *string `json:"content"`
		Picture *string `json:"picture"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreateGroupPost(c.UserContext(), actorID(c), groupID, req.Content, req.Picture)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GroupFeed handles GET /api/groups/:id/posts
func (s *Server) GroupFeed(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	posts, err := s.postService.GroupFeed(c.UserContext(), actorID(c), groupID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// DeleteGroupPost handles DELETE /api/group-posts/:id
func (s *Server) DeleteGroupPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeleteGroupPost(c.UserContext(), actorID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

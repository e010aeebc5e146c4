package server

import (
	"gather/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateGroup handles POST /api/groups
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Picture     string `json:"picture"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	group, err := s.groupService.CreateGroup(c.UserContext(), actorID(c), req.Name, req.Description, req.Picture)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// GetGroup handles GET /api/groups/:id
func (s *Server) GetGroup(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	group, err := s.groupService.GetGroup(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(group)
}

// ListGroups handles GET /api/groups
func (s *Server) ListGroups(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	groups, err := s.groupService.ListGroups(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(groups)
}

// ListOwnedGroups handles GET /api/groups/owned
func (s *Server) ListOwnedGroups(c *fiber.Ctx) error {
	groups, err := s.groupService.ListOwned(c.UserContext(), actorID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(groups)
}

// ListJoinedGroups handles GET /api/groups/joined
func (s *Server) ListJoinedGroups(c *fiber.Ctx) error {
	groups, err := s.groupService.ListJoined(c.UserContext(), actorID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(groups)
}

// DeleteGroup handles DELETE /api/groups/:id
func (s *Server) DeleteGroup(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.groupService.DeleteGroup(c.UserContext(), actorID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Group deleted"})
}

// ListGroupMembers handles GET /api/groups/:id/members
func (s *Server) ListGroupMembers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	members, err := s.groupService.ListMembers(c.UserContext(), actorID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(members)
}

// ListGroupRequests handles GET /api/groups/:id/requests
func (s *Server) ListGroupRequests(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	requests, err := s.groupService.ListRequests(c.UserContext(), actorID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(requests)
}

package server

import (
	"github.com/gofiber/fiber/v2"
)

// RequestJoin handles POST /api/groups/:id/requests
func (s *Server) RequestJoin(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	request, err := s.membershipService.RequestJoin(c.UserContext(), actorID(c), groupID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

// CancelRequest handles DELETE /api/groups/:id/requests
func (s *Server) CancelRequest(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.membershipService.CancelRequest(c.UserContext(), actorID(c), groupID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Request cancelled"})
}

// AcceptRequest handles POST /api/groups/:id/requests/:userId/accept
func (s *Server) AcceptRequest(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	membership, err := s.membershipService.AcceptRequest(c.UserContext(), actorID(c), groupID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(membership)
}

// RejectRequest handles POST /api/groups/:id/requests/:userId/reject
func (s *Server) RejectRequest(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.membershipService.RejectRequest(c.UserContext(), actorID(c), groupID, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Request rejected"})
}

// LeaveGroup handles POST /api/groups/:id/leave
func (s *Server) LeaveGroup(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.membershipService.Leave(c.UserContext(), actorID(c), groupID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Left group"})
}

// RemoveMember handles DELETE /api/groups/:id/members/:userId
func (s *Server) RemoveMember(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.membershipService.RemoveMember(c.UserContext(), actorID(c), groupID, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Member removed"})
}

// PromoteMember handles POST /api/groups/:id/members/:userId/promote
func (s *Server) PromoteMember(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.membershipService.Promote(c.UserContext(), actorID(c), groupID, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Member promoted"})
}

// DemoteMember handles POST /api/groups/:id/members/:userId/demote
func (s *Server) DemoteMember(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.membershipService.Demote(c.UserContext(), actorID(c), groupID, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Member demoted"})
}

package service

import (
	"context"

	"gather/internal/models"
	"gather/internal/repository"
	"gather/internal/validation"
)

// GroupService provides group lifecycle and listing operations.
type GroupService struct {
	groupRepo      repository.GroupRepository
	membershipRepo repository.MembershipRepository
}

// NewGroupService returns a new GroupService.
func NewGroupService(groupRepo repository.GroupRepository, membershipRepo repository.MembershipRepository) *GroupService {
	return &GroupService{
		groupRepo:      groupRepo,
		membershipRepo: membershipRepo,
	}
}

// CreateGroup creates a group owned by the actor. The owner membership row
// (admin-flagged) is written in the same transaction as the group.
func (s *GroupService) CreateGroup(ctx context.Context, actorID uint, name, description, picture string) (*models.Group, error) {
	if err := validation.ValidateGroupName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	group := &models.Group{
		CreatorID:   actorID,
		Name:        name,
		Description: description,
		Picture:     picture,
	}
	if err := s.groupRepo.CreateWithOwner(ctx, group); err != nil {
		return nil, err
	}

	transitioned("create_group")
	return group, nil
}

// DeleteGroup deletes the group and cascades to its memberships, join
// requests, and group posts. Owner only.
func (s *GroupService) DeleteGroup(ctx context.Context, actorID, groupID uint) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return denied("delete_group", err)
	}

	if group.CreatorID != actorID {
		return denied("delete_group", models.NewForbiddenError("Only the group owner can delete the group"))
	}

	if err := s.groupRepo.DeleteCascade(ctx, groupID); err != nil {
		return denied("delete_group", err)
	}

	transitioned("delete_group")
	return nil
}

// GetGroup returns a group by id.
func (s *GroupService) GetGroup(ctx context.Context, groupID uint) (*models.Group, error) {
	return s.groupRepo.GetByID(ctx, groupID)
}

// ListGroups returns a page of all groups.
func (s *GroupService) ListGroups(ctx context.Context, limit, offset int) ([]models.Group, error) {
	return s.groupRepo.List(ctx, limit, offset)
}

// ListOwned returns the groups the actor created.
func (s *GroupService) ListOwned(ctx context.Context, actorID uint) ([]models.Group, error) {
	return s.groupRepo.ListByCreator(ctx, actorID)
}

// ListJoined returns the groups the actor is a member of.
func (s *GroupService) ListJoined(ctx context.Context, actorID uint) ([]models.Group, error) {
	return s.groupRepo.ListByMember(ctx, actorID)
}

// ListMembers returns the group's member roster. Members only.
func (s *GroupService) ListMembers(ctx context.Context, actorID, groupID uint) ([]models.GroupMembership, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	state, err := resolveRelationship(ctx, s.membershipRepo, group, actorID)
	if err != nil {
		return nil, err
	}
	if !state.IsMember() {
		return nil, models.NewForbiddenError("Only members can list the group roster")
	}

	return s.membershipRepo.ListGroupMembers(ctx, groupID)
}

// ListRequests returns the group's pending join requests. Admins and the
// owner only.
func (s *GroupService) ListRequests(ctx context.Context, actorID, groupID uint) ([]models.GroupRequest, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	state, err := resolveRelationship(ctx, s.membershipRepo, group, actorID)
	if err != nil {
		return nil, err
	}
	if !state.CanModerate() {
		return nil, models.NewForbiddenError("Only group admins can list join requests")
	}

	return s.membershipRepo.ListGroupRequests(ctx, groupID)
}

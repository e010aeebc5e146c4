package service

import (
	"context"

	"gather/internal/models"
	"gather/internal/repository"
)

// MembershipService governs the membership state machine for (user, group)
// pairs: None -> Requested -> Member -> Admin, with Owner fixed at group
// creation. Preconditions are checked here; the atomic check-then-act steps
// run inside the repository so concurrent callers resolve to one winner.
type MembershipService struct {
	groupRepo      repository.GroupRepository
	membershipRepo repository.MembershipRepository
}

// NewMembershipService returns a new MembershipService.
func NewMembershipService(groupRepo repository.GroupRepository, membershipRepo repository.MembershipRepository) *MembershipService {
	return &MembershipService{
		groupRepo:      groupRepo,
		membershipRepo: membershipRepo,
	}
}

// State returns the actor's relationship state for the group.
func (s *MembershipService) State(ctx context.Context, actorID, groupID uint) (models.RelationshipState, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return models.RelationshipNone, err
	}
	return resolveRelationship(ctx, s.membershipRepo, group, actorID)
}

// RequestJoin moves the (actor, group) pair from None to Requested.
func (s *MembershipService) RequestJoin(ctx context.Context, actorID, groupID uint) (*models.GroupRequest, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, denied("request_join", err)
	}

	state, err := resolveRelationship(ctx, s.membershipRepo, group, actorID)
	if err != nil {
		return nil, err
	}
	if state.IsMember() {
		return nil, denied("request_join", models.NewConflictError("You are already a member of this group"))
	}

	request := &models.GroupRequest{
		GroupID: groupID,
		UserID:  actorID,
	}
	// The unique key arbitrates the double-request race; the state check
	// above is advisory only.
	if err := s.membershipRepo.CreateRequest(ctx, request); err != nil {
		return nil, denied("request_join", err)
	}

	transitioned("request_join")
	return request, nil
}

// CancelRequest withdraws the actor's own pending request.
func (s *MembershipService) CancelRequest(ctx context.Context, actorID, groupID uint) error {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return denied("cancel_request", err)
	}
	if err := s.membershipRepo.DeleteRequest(ctx, groupID, actorID); err != nil {
		return denied("cancel_request", err)
	}
	transitioned("cancel_request")
	return nil
}

// AcceptRequest turns a pending request into a plain membership. Only
// admins and the owner may accept. The delete-request/insert-membership
// pair is one transaction; a racing accept or reject loses with NotFound.
func (s *MembershipService) AcceptRequest(ctx context.Context, actorID, groupID, userID uint) (*models.GroupMembership, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, denied("accept_request", err)
	}

	state, err := resolveRelationship(ctx, s.membershipRepo, group, actorID)
	if err != nil {
		return nil, err
	}
	if !state.CanModerate() {
		return nil, denied("accept_request", models.NewForbiddenError("Only group admins can accept join requests"))
	}

	membership, err := s.membershipRepo.AcceptRequest(ctx, groupID, userID)
	if err != nil {
		return nil, denied("accept_request", err)
	}

	transitioned("accept_request")
	return membership, nil
}

// RejectRequest deletes a pending request without creating a membership.
func (s *MembershipService) RejectRequest(ctx context.Context, actorID, groupID, userID uint) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return denied("reject_request", err)
	}

	state, err := resolveRelationship(ctx, s.membershipRepo, group, actorID)
	if err != nil {
		return err
	}
	if !state.CanModerate() {
		return denied("reject_request", models.NewForbiddenError("Only group admins can reject join requests"))
	}

	if err := s.membershipRepo.DeleteRequest(ctx, groupID, userID); err != nil {
		return denied("reject_request", err)
	}

	transitioned("reject_request")
	return nil
}

// Leave removes the actor's own membership. The owner cannot leave; the
// only exit for an owner is deleting the group.
func (s *MembershipService) Leave(ctx context.Context, actorID, groupID uint) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return denied("leave", err)
	}

	if group.CreatorID == actorID {
		return denied("leave", models.NewForbiddenError("The owner cannot leave; delete the group instead"))
	}

	if err := s.membershipRepo.DeleteMembership(ctx, groupID, actorID); err != nil {
		return denied("leave", err)
	}

	transitioned("leave")
	return nil
}

// RemoveMember removes another user's membership. An admin may remove plain
// members only; the owner may remove anyone but themselves.
func (s *MembershipService) RemoveMember(ctx context.Context, actorID, groupID, targetID uint) error {
	if actorID == targetID {
		return models.NewValidationError("Use leave to remove yourself from a group")
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return denied("remove_member", err)
	}

	actorState, err := resolveRelationship(ctx, s.membershipRepo, group, actorID)
	if err != nil {
		return err
	}
	if !actorState.CanModerate() {
		return denied("remove_member", models.NewForbiddenError("Only group admins can remove members"))
	}

	targetState, err := resolveRelationship(ctx, s.membershipRepo, group, targetID)
	if err != nil {
		return err
	}
	if !targetState.IsMember() {
		return denied("remove_member", models.NewNotFoundError("Membership", targetID))
	}
	if targetState.Rank() >= actorState.Rank() {
		return denied("remove_member", models.NewForbiddenError("Cannot remove a member of equal or higher rank"))
	}

	if err := s.membershipRepo.DeleteMembership(ctx, groupID, targetID); err != nil {
		return denied("remove_member", err)
	}

	transitioned("remove_member")
	return nil
}

// Promote grants the admin flag to a plain member. Owner only.
func (s *MembershipService) Promote(ctx context.Context, actorID, groupID, targetID uint) error {
	return s.setAdmin(ctx, actorID, groupID, targetID, true)
}

// Demote clears the admin flag of an admin. Owner only.
func (s *MembershipService) Demote(ctx context.Context, actorID, groupID, targetID uint) error {
	return s.setAdmin(ctx, actorID, groupID, targetID, false)
}

func (s *MembershipService) setAdmin(ctx context.Context, actorID, groupID, targetID uint, isAdmin bool) error {
	operation := "promote"
	if !isAdmin {
		operation = "demote"
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return denied(operation, err)
	}

	actorState, err := resolveRelationship(ctx, s.membershipRepo, group, actorID)
	if err != nil {
		return err
	}
	if actorState != models.RelationshipOwner {
		return denied(operation, models.NewForbiddenError("Only the group owner can promote or demote admins"))
	}

	if targetID == group.CreatorID {
		return denied(operation, models.NewForbiddenError("The owner's role cannot be changed"))
	}

	targetState, err := resolveRelationship(ctx, s.membershipRepo, group, targetID)
	if err != nil {
		return err
	}
	if !targetState.IsMember() {
		return denied(operation, models.NewNotFoundError("Membership", targetID))
	}
	if isAdmin && targetState == models.RelationshipAdmin {
		return denied(operation, models.NewConflictError("User is already an admin"))
	}
	if !isAdmin && targetState == models.RelationshipMember {
		return denied(operation, models.NewConflictError("User is not an admin"))
	}

	if err := s.membershipRepo.SetAdmin(ctx, groupID, targetID, isAdmin); err != nil {
		return denied(operation, err)
	}

	transitioned(operation)
	return nil
}

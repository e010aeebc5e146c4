package service

import (
	"context"
	"testing"

	"gather/internal/models"
)

func TestGroupServiceCreateGroupInvalidName(t *testing.T) {
	svc := NewGroupService(noopGroupRepo(), noopMembershipRepo())

	_, err := svc.CreateGroup(context.Background(), 7, "  ", "", "")
	assertAppErrorCode(t, err, models.CodeValidation)

	_, err = svc.CreateGroup(context.Background(), 7, "ab", "", "")
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestGroupServiceCreateGroupSetsCreator(t *testing.T) {
	var created *models.Group
	groups := noopGroupRepo()
	groups.createWithOwnerFn = func(_ context.Context, g *models.Group) error {
		created = g
		return nil
	}

	svc := NewGroupService(groups, noopMembershipRepo())
	group, err := svc.CreateGroup(context.Background(), 7, "Trail Runners", "weekly runs", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || group.CreatorID != 7 {
		t.Fatalf("unexpected group: %#v", group)
	}
}

func TestGroupServiceDeleteGroupNotOwner(t *testing.T) {
	svc := NewGroupService(noopGroupRepo(), noopMembershipRepo())
	err := svc.DeleteGroup(context.Background(), 7, 1)
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func TestGroupServiceDeleteGroupAdminStillForbidden(t *testing.T) {
	// Admins moderate; only the owner deletes.
	memberships := noopMembershipRepo()
	memberships.getMembershipFn = func(_ context.Context, _, userID uint) (*models.GroupMembership, error) {
		return &models.GroupMembership{GroupID: 1, UserID: userID, IsAdmin: true}, nil
	}

	svc := NewGroupService(noopGroupRepo(), memberships)
	err := svc.DeleteGroup(context.Background(), 7, 1)
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func TestGroupServiceDeleteGroupOwnerCascades(t *testing.T) {
	cascaded := false
	groups := noopGroupRepo()
	groups.deleteCascadeFn = func(context.Context, uint) error {
		cascaded = true
		return nil
	}

	svc := NewGroupService(groups, noopMembershipRepo())
	if err := svc.DeleteGroup(context.Background(), 100, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cascaded {
		t.Fatal("expected cascade delete to run")
	}
}

func TestGroupServiceListMembersNonMember(t *testing.T) {
	svc := NewGroupService(noopGroupRepo(), noopMembershipRepo())
	_, err := svc.ListMembers(context.Background(), 9, 1)
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func TestGroupServiceListMembersMember(t *testing.T) {
	memberships := noopMembershipRepo()
	memberships.getMembershipFn = func(_ context.Context, _, userID uint) (*models.GroupMembership, error) {
		return &models.GroupMembership{GroupID: 1, UserID: userID}, nil
	}
	memberships.listGroupMembersFn = func(context.Context, uint) ([]models.GroupMembership, error) {
		return []models.GroupMembership{{GroupID: 1, UserID: 9}}, nil
	}

	svc := NewGroupService(noopGroupRepo(), memberships)
	members, err := svc.ListMembers(context.Background(), 9, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("unexpected roster: %#v", members)
	}
}

func TestGroupServiceListRequestsPlainMemberForbidden(t *testing.T) {
	memberships := noopMembershipRepo()
	memberships.getMembershipFn = func(_ context.Context, _, userID uint) (*models.GroupMembership, error) {
		return &models.GroupMembership{GroupID: 1, UserID: userID}, nil
	}

	svc := NewGroupService(noopGroupRepo(), memberships)
	_, err := svc.ListRequests(context.Background(), 9, 1)
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func TestGroupServiceListRequestsOwner(t *testing.T) {
	memberships := noopMembershipRepo()
	memberships.listGroupRequestsFn = func(context.Context, uint) ([]models.GroupRequest, error) {
		return []models.GroupRequest{{GroupID: 1, UserID: 8}}, nil
	}

	svc := NewGroupService(noopGroupRepo(), memberships)
	requests, err := svc.ListRequests(context.Background(), 100, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(requests) != 1 || requests[0].UserID != 8 {
		t.Fatalf("unexpected requests: %#v", requests)
	}
}

// Package service implements the authorization engine: the membership state
// machine, the content visibility resolver, and the operations built on
// them. Every method takes an explicit actor id; nothing here reads ambient
// identity or caches relationship facts between calls.
package service

import (
	"context"
	"errors"

	"gather/internal/models"
	"gather/internal/observability"
	"gather/internal/repository"
)

// resolveRelationship computes the relationship state of a user to a group.
// Owner is derived from the group's creator id, never from a stored flag,
// so every call site agrees on who the owner is. The state is computed once
// per operation and passed around, not re-derived ad hoc.
func resolveRelationship(ctx context.Context, memberships repository.MembershipRepository, group *models.Group, userID uint) (models.RelationshipState, error) {
	if group.CreatorID == userID {
		return models.RelationshipOwner, nil
	}

	membership, err := memberships.GetMembership(ctx, group.ID, userID)
	if err != nil {
		return models.RelationshipNone, err
	}
	if membership != nil {
		if membership.IsAdmin {
			return models.RelationshipAdmin, nil
		}
		return models.RelationshipMember, nil
	}

	request, err := memberships.GetRequest(ctx, group.ID, userID)
	if err != nil {
		return models.RelationshipNone, err
	}
	if request != nil {
		return models.RelationshipRequested, nil
	}

	return models.RelationshipNone, nil
}

// denied records an authorization denial metric for caller-facing error
// kinds and passes the error through unchanged.
func denied(operation string, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeForbidden, models.CodeNotFound, models.CodeConflict:
			observability.AuthzDenials.WithLabelValues(operation, appErr.Code).Inc()
		}
	}
	return err
}

// transitioned records a successful state machine transition.
func transitioned(operation string) {
	observability.AuthzTransitions.WithLabelValues(operation).Inc()
}

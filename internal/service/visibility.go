package service

import (
	"context"

	"gather/internal/models"
	"gather/internal/repository"
)

// VisibilityResolver decides whether content is visible to a viewer. It is
// read-only and fetches blocking and membership facts fresh on every call,
// so a new block takes effect on the very next resolve.
//
// Rules, in order: a block edge in either direction hides the item
// unconditionally; a private post is visible to its author only; a group
// post is visible to group members only.
type VisibilityResolver struct {
	blockRepo      repository.BlockRepository
	membershipRepo repository.MembershipRepository
}

// NewVisibilityResolver returns a new VisibilityResolver.
func NewVisibilityResolver(blockRepo repository.BlockRepository, membershipRepo repository.MembershipRepository) *VisibilityResolver {
	return &VisibilityResolver{
		blockRepo:      blockRepo,
		membershipRepo: membershipRepo,
	}
}

// CanViewPost reports whether the viewer may see a single personal post.
func (v *VisibilityResolver) CanViewPost(ctx context.Context, viewerID uint, post *models.Post) (bool, error) {
	if viewerID == post.AuthorID {
		return true, nil
	}

	blocked, err := v.blockRepo.ExistsBetween(ctx, viewerID, post.AuthorID)
	if err != nil {
		return false, err
	}
	if blocked {
		return false, nil
	}

	return post.IsPublic, nil
}

// CanViewGroupPost reports whether the viewer may see a group post. The
// caller passes the post's group so ownership can be derived.
func (v *VisibilityResolver) CanViewGroupPost(ctx context.Context, viewerID uint, group *models.Group, post *models.GroupPost) (bool, error) {
	state, err := resolveRelationship(ctx, v.membershipRepo, group, viewerID)
	if err != nil {
		return false, err
	}
	if !state.IsMember() {
		return false, nil
	}

	if viewerID == post.AuthorID {
		return true, nil
	}
	blocked, err := v.blockRepo.ExistsBetween(ctx, viewerID, post.AuthorID)
	if err != nil {
		return false, err
	}
	return !blocked, nil
}

// FilterPosts applies the visibility rules to a slice of personal posts.
// The viewer's block set is fetched once for the call and never cached
// across calls.
func (v *VisibilityResolver) FilterPosts(ctx context.Context, viewerID uint, posts []models.Post) ([]models.Post, error) {
	hidden, err := v.hiddenAuthors(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Post, 0, len(posts))
	for _, post := range posts {
		if post.AuthorID != viewerID {
			if _, ok := hidden[post.AuthorID]; ok {
				continue
			}
			if !post.IsPublic {
				continue
			}
		}
		visible = append(visible, post)
	}
	return visible, nil
}

// FilterGroupPosts applies block exclusion to group posts. Callers must
// have already verified the viewer's membership in the group.
func (v *VisibilityResolver) FilterGroupPosts(ctx context.Context, viewerID uint, posts []models.GroupPost) ([]models.GroupPost, error) {
	hidden, err := v.hiddenAuthors(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	visible := make([]models.GroupPost, 0, len(posts))
	for _, post := range posts {
		if post.AuthorID != viewerID {
			if _, ok := hidden[post.AuthorID]; ok {
				continue
			}
		}
		visible = append(visible, post)
	}
	return visible, nil
}

func (v *VisibilityResolver) hiddenAuthors(ctx context.Context, viewerID uint) (map[uint]struct{}, error) {
	peers, err := v.blockRepo.BlockedPeerIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	hidden := make(map[uint]struct{}, len(peers))
	for _, id := range peers {
		hidden[id] = struct{}{}
	}
	return hidden, nil
}

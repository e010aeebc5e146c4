package service

import (
	"context"

	"gather/internal/models"
	"gather/internal/repository"
)

// PostService provides content operations behind the visibility resolver.
// Reads go through the resolver on every call; a post hidden from the
// viewer is indistinguishable from one that does not exist.
type PostService struct {
	postRepo       repository.PostRepository
	groupPostRepo  repository.GroupPostRepository
	groupRepo      repository.GroupRepository
	membershipRepo repository.MembershipRepository
	resolver       *VisibilityResolver
}

// NewPostService returns a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	groupPostRepo repository.GroupPostRepository,
	groupRepo repository.GroupRepository,
	membershipRepo repository.MembershipRepository,
	resolver *VisibilityResolver,
) *PostService {
	return &PostService{
		postRepo:       postRepo,
		groupPostRepo:  groupPostRepo,
		groupRepo:      groupRepo,
		membershipRepo: membershipRepo,
		resolver:       resolver,
	}
}

// CreatePost creates a personal post. A post with neither content nor
// picture is rejected with InvalidContent.
func (s *PostService) CreatePost(ctx context.Context, actorID uint, content, picture *string, isPublic bool) (*models.Post, error) {
	post := &models.Post{
		AuthorID: actorID,
		Content:  content,
		Picture:  picture,
		IsPublic: isPublic,
	}
	if !post.HasPayload() {
		return nil, models.NewInvalidContentError("A post needs content or a picture")
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns a single post if the viewer may see it, NotFound
// otherwise. Hidden and absent posts are deliberately indistinguishable.
func (s *PostService) GetPost(ctx context.Context, viewerID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	visible, err := s.resolver.CanViewPost(ctx, viewerID, post)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return post, nil
}

// DeletePost deletes the actor's own post.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return models.NewForbiddenError("Only the author can delete a post")
	}
	return s.postRepo.Delete(ctx, postID)
}

// FeedByAuthor returns the author's personal posts visible to the viewer.
// Group posts never appear here even when the same user authored both.
func (s *PostService) FeedByAuthor(ctx context.Context, viewerID, authorID uint) ([]models.Post, error) {
	posts, err := s.postRepo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return s.resolver.FilterPosts(ctx, viewerID, posts)
}

// PublicFeed returns a page of public posts visible to the viewer.
func (s *PostService) PublicFeed(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error) {
	posts, err := s.postRepo.ListPublic(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.resolver.FilterPosts(ctx, viewerID, posts)
}

// CreateGroupPost creates a post inside a group. Members only; the same
// payload invariant as personal posts applies.
func (s *PostService) CreateGroupPost(ctx context.Context, actorID, groupID uint, content, picture *string) (*models.GroupPost, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	state, err := resolveRelationship(ctx, s.membershipRepo, group, actorID)
	if err != nil {
		return nil, err
	}
	if !state.IsMember() {
		return nil, models.NewForbiddenError("Only members can post in a group")
	}

	post := &models.GroupPost{
		AuthorID: actorID,
		GroupID:  groupID,
		Content:  content,
		Picture:  picture,
	}
	if !post.HasPayload() {
		return nil, models.NewInvalidContentError("A post needs content or a picture")
	}

	if err := s.groupPostRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GroupFeed returns the group's posts for a member viewer, with blocked
// authors filtered out.
func (s *PostService) GroupFeed(ctx context.Context, viewerID, groupID uint) ([]models.GroupPost, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	state, err := resolveRelationship(ctx, s.membershipRepo, group, viewerID)
	if err != nil {
		return nil, err
	}
	if !state.IsMember() {
		return nil, models.NewForbiddenError("Only members can read a group's posts")
	}

	posts, err := s.groupPostRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return s.resolver.FilterGroupPosts(ctx, viewerID, posts)
}

// DeleteGroupPost deletes a group post. Allowed for the post's author and
// for the group's admins and owner.
func (s *PostService) DeleteGroupPost(ctx context.Context, actorID, postID uint) error {
	post, err := s.groupPostRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != actorID {
		group, err := s.groupRepo.GetByID(ctx, post.GroupID)
		if err != nil {
			return err
		}
		state, err := resolveRelationship(ctx, s.membershipRepo, group, actorID)
		if err != nil {
			return err
		}
		if !state.CanModerate() {
			return models.NewForbiddenError("Only the author or a group admin can delete a group post")
		}
	}

	return s.groupPostRepo.Delete(ctx, postID)
}

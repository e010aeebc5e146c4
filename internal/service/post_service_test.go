package service

import (
	"context"
	"testing"

	"gather/internal/models"
)

type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	getByIDFn      func(context.Context, uint) (*models.Post, error)
	listByAuthorFn func(context.Context, uint) ([]models.Post, error)
	listPublicFn   func(context.Context, int, int) ([]models.Post, error)
	deleteFn       func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	return s.listByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) ListPublic(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.listPublicFn(ctx, limit, offset)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type groupPostRepoStub struct {
	createFn      func(context.Context, *models.GroupPost) error
	getByIDFn     func(context.Context, uint) (*models.GroupPost, error)
	listByGroupFn func(context.Context, uint) ([]models.GroupPost, error)
	deleteFn      func(context.Context, uint) error
}

func (s *groupPostRepoStub) Create(ctx context.Context, post *models.GroupPost) error {
	return s.createFn(ctx, post)
}
func (s *groupPostRepoStub) GetByID(ctx context.Context, id uint) (*models.GroupPost, error) {
	return s.getByIDFn(ctx, id)
}
func (s *groupPostRepoStub) ListByGroup(ctx context.Context, groupID uint) ([]models.GroupPost, error) {
	return s.listByGroupFn(ctx, groupID)
}
func (s *groupPostRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:       func(context.Context, *models.Post) error { return nil },
		getByIDFn:      func(context.Context, uint) (*models.Post, error) { return &models.Post{}, nil },
		listByAuthorFn: func(context.Context, uint) ([]models.Post, error) { return nil, nil },
		listPublicFn:   func(context.Context, int, int) ([]models.Post, error) { return nil, nil },
		deleteFn:       func(context.Context, uint) error { return nil },
	}
}

func noopGroupPostRepo() *groupPostRepoStub {
	return &groupPostRepoStub{
		createFn:      func(context.Context, *models.GroupPost) error { return nil },
		getByIDFn:     func(context.Context, uint) (*models.GroupPost, error) { return &models.GroupPost{}, nil },
		listByGroupFn: func(context.Context, uint) ([]models.GroupPost, error) { return nil, nil },
		deleteFn:      func(context.Context, uint) error { return nil },
	}
}

func newPostService(posts *postRepoStub, groupPosts *groupPostRepoStub, groups *groupRepoStub, memberships *membershipRepoStub, blocks *blockRepoStub) *PostService {
	resolver := NewVisibilityResolver(blocks, memberships)
	return NewPostService(posts, groupPosts, groups, memberships, resolver)
}

func TestPostServiceCreatePostEmptyPayload(t *testing.T) {
	svc := newPostService(noopPostRepo(), noopGroupPostRepo(), noopGroupRepo(), noopMembershipRepo(), noopBlockRepo())

	_, err := svc.CreatePost(context.Background(), 7, nil, nil, true)
	assertAppErrorCode(t, err, models.CodeInvalidContent)

	empty := ""
	_, err = svc.CreatePost(context.Background(), 7, &empty, nil, true)
	assertAppErrorCode(t, err, models.CodeInvalidContent)
}

func TestPostServiceCreatePostPictureOnly(t *testing.T) {
	var created *models.Post
	posts := noopPostRepo()
	posts.createFn = func(_ context.Context, p *models.Post) error {
		created = p
		return nil
	}

	svc := newPostService(posts, noopGroupPostRepo(), noopGroupRepo(), noopMembershipRepo(), noopBlockRepo())
	post, err := svc.CreatePost(context.Background(), 7, nil, strPtr("https://example.com/p.jpg"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || post.AuthorID != 7 || post.IsPublic {
		t.Fatalf("unexpected post: %#v", post)
	}
}

func TestPostServiceGetPostHiddenIsNotFound(t *testing.T) {
	// The viewer is blocked by the author; the post must read as missing,
	// not as forbidden.
	posts := noopPostRepo()
	posts.getByIDFn = func(context.Context, uint) (*models.Post, error) {
		return &models.Post{ID: 5, AuthorID: 2, IsPublic: true}, nil
	}
	blocks := noopBlockRepo()
	blocks.existsBetweenFn = func(context.Context, uint, uint) (bool, error) { return true, nil }

	svc := newPostService(posts, noopGroupPostRepo(), noopGroupRepo(), noopMembershipRepo(), blocks)
	_, err := svc.GetPost(context.Background(), 9, 5)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestPostServiceGetPostPrivateIsNotFound(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(context.Context, uint) (*models.Post, error) {
		return &models.Post{ID: 5, AuthorID: 2, IsPublic: false}, nil
	}

	svc := newPostService(posts, noopGroupPostRepo(), noopGroupRepo(), noopMembershipRepo(), noopBlockRepo())
	_, err := svc.GetPost(context.Background(), 9, 5)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestPostServiceDeletePostNotAuthor(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(context.Context, uint) (*models.Post, error) {
		return &models.Post{ID: 5, AuthorID: 2}, nil
	}

	svc := newPostService(posts, noopGroupPostRepo(), noopGroupRepo(), noopMembershipRepo(), noopBlockRepo())
	err := svc.DeletePost(context.Background(), 9, 5)
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func TestPostServiceCreateGroupPostNonMember(t *testing.T) {
	svc := newPostService(noopPostRepo(), noopGroupPostRepo(), noopGroupRepo(), noopMembershipRepo(), noopBlockRepo())
	_, err := svc.CreateGroupPost(context.Background(), 9, 1, strPtr("hello"), nil)
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func TestPostServiceCreateGroupPostRequestedStillForbidden(t *testing.T) {
	// A pending request grants no posting rights.
	memberships := noopMembershipRepo()
	memberships.getRequestFn = func(_ context.Context, _, userID uint) (*models.GroupRequest, error) {
		return &models.GroupRequest{GroupID: 1, UserID: userID}, nil
	}

	svc := newPostService(noopPostRepo(), noopGroupPostRepo(), noopGroupRepo(), memberships, noopBlockRepo())
	_, err := svc.CreateGroupPost(context.Background(), 9, 1, strPtr("hello"), nil)
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func TestPostServiceCreateGroupPostMember(t *testing.T) {
	memberships := noopMembershipRepo()
	memberships.getMembershipFn = func(_ context.Context, _, userID uint) (*models.GroupMembership, error) {
		return &models.GroupMembership{GroupID: 1, UserID: userID}, nil
	}
	var created *models.GroupPost
	groupPosts := noopGroupPostRepo()
	groupPosts.createFn = func(_ context.Context, p *models.GroupPost) error {
		created = p
		return nil
	}

	svc := newPostService(noopPostRepo(), groupPosts, noopGroupRepo(), memberships, noopBlockRepo())
	post, err := svc.CreateGroupPost(context.Background(), 9, 1, strPtr("hello"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || post.GroupID != 1 || post.AuthorID != 9 {
		t.Fatalf("unexpected post: %#v", post)
	}
}

func TestPostServiceGroupFeedNonMember(t *testing.T) {
	svc := newPostService(noopPostRepo(), noopGroupPostRepo(), noopGroupRepo(), noopMembershipRepo(), noopBlockRepo())
	_, err := svc.GroupFeed(context.Background(), 9, 1)
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func TestPostServiceGroupFeedFiltersBlockedAuthors(t *testing.T) {
	memberships := noopMembershipRepo()
	memberships.getMembershipFn = func(_ context.Context, _, userID uint) (*models.GroupMembership, error) {
		return &models.GroupMembership{GroupID: 1, UserID: userID}, nil
	}
	groupPosts := noopGroupPostRepo()
	groupPosts.listByGroupFn = func(context.Context, uint) ([]models.GroupPost, error) {
		return []models.GroupPost{
			{ID: 1, GroupID: 1, AuthorID: 2},
			{ID: 2, GroupID: 1, AuthorID: 3},
		}, nil
	}
	blocks := noopBlockRepo()
	blocks.blockedPeerIDsFn = func(context.Context, uint) ([]uint, error) {
		return []uint{3}, nil
	}

	svc := newPostService(noopPostRepo(), groupPosts, noopGroupRepo(), memberships, blocks)
	posts, err := svc.GroupFeed(context.Background(), 9, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != 1 {
		t.Fatalf("unexpected feed: %#v", posts)
	}
}

func TestPostServiceDeleteGroupPostByModerator(t *testing.T) {
	groupPosts := noopGroupPostRepo()
	groupPosts.getByIDFn = func(context.Context, uint) (*models.GroupPost, error) {
		return &models.GroupPost{ID: 5, GroupID: 1, AuthorID: 2}, nil
	}
	memberships := noopMembershipRepo()
	memberships.getMembershipFn = func(_ context.Context, _, userID uint) (*models.GroupMembership, error) {
		if userID == 9 {
			return &models.GroupMembership{GroupID: 1, UserID: 9, IsAdmin: true}, nil
		}
		return nil, nil
	}
	deleted := false
	groupPosts.deleteFn = func(context.Context, uint) error {
		deleted = true
		return nil
	}

	svc := newPostService(noopPostRepo(), groupPosts, noopGroupRepo(), memberships, noopBlockRepo())
	if err := svc.DeleteGroupPost(context.Background(), 9, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to run")
	}
}

func TestPostServiceDeleteGroupPostPlainMemberForbidden(t *testing.T) {
	groupPosts := noopGroupPostRepo()
	groupPosts.getByIDFn = func(context.Context, uint) (*models.GroupPost, error) {
		return &models.GroupPost{ID: 5, GroupID: 1, AuthorID: 2}, nil
	}
	memberships := noopMembershipRepo()
	memberships.getMembershipFn = func(_ context.Context, _, userID uint) (*models.GroupMembership, error) {
		return &models.GroupMembership{GroupID: 1, UserID: userID}, nil
	}

	svc := newPostService(noopPostRepo(), groupPosts, noopGroupRepo(), memberships, noopBlockRepo())
	err := svc.DeleteGroupPost(context.Background(), 9, 5)
	assertAppErrorCode(t, err, models.CodeForbidden)
}

// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"time"

	"gather/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and by integration tests.
type Factory struct {
	db   *gorm.DB
	opts Options
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts}
}

// CreateUser constructs and persists a sample user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Name:     gofakeit.Name(),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Password123!abc"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateGroup persists a group and its owner membership row, mirroring what
// the API does on group creation.
func (f *Factory) CreateGroup(owner *models.User, overrides ...func(*models.Group)) (*models.Group, error) {
	group := &models.Group{
		Name:        fmt.Sprintf("%s %s", gofakeit.HackerAdjective(), gofakeit.HackerNoun()),
		Description: gofakeit.Sentence(12),
		Picture:     fmt.Sprintf("https://picsum.photos/seed/%s/400/400", gofakeit.UUID()),
		CreatorID:   owner.ID,
	}

	for _, override := range overrides {
		override(group)
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		membership := &models.GroupMembership{
			GroupID: group.ID,
			UserID:  owner.ID,
			IsAdmin: true,
		}
		return tx.Create(membership).Error
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// AddMember persists a membership row for the given user.
func (f *Factory) AddMember(group *models.Group, user *models.User, isAdmin bool) error {
	membership := &models.GroupMembership{
		GroupID: group.ID,
		UserID:  user.ID,
		IsAdmin: isAdmin,
	}
	return f.db.Create(membership).Error
}

// AddRequest persists a pending join request.
func (f *Factory) AddRequest(group *models.Group, user *models.User) error {
	request := &models.GroupRequest{
		GroupID: group.ID,
		UserID:  user.ID,
	}
	return f.db.Create(request).Error
}

// AddBlock persists a directed block edge.
func (f *Factory) AddBlock(blocker, blocked *models.User) error {
	block := &models.UserBlock{
		BlockerID: blocker.ID,
		BlockedID: blocked.ID,
	}
	return f.db.Create(block).Error
}

// CreatePost persists a personal post for the given author.
func (f *Factory) CreatePost(author *models.User, isPublic bool, overrides ...func(*models.Post)) (*models.Post, error) {
	content := gofakeit.Paragraph(1, 3, 8, "\n")
	post := &models.Post{
		AuthorID: author.ID,
		Content:  &content,
		IsPublic: isPublic,
	}

	// roughly a third of posts carry an image
	if gofakeit.Number(0, 2) == 0 {
		picture := fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		post.Picture = &picture
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateGroupPost persists a post inside the given group.
func (f *Factory) CreateGroupPost(group *models.Group, author *models.User, overrides ...func(*models.GroupPost)) (*models.GroupPost, error) {
	content := gofakeit.Paragraph(1, 2, 6, "\n")
	post := &models.GroupPost{
		GroupID:  group.ID,
		AuthorID: author.ID,
		Content:  &content,
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

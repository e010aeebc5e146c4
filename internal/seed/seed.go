package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"gather/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumGroups   int
	NumPosts    int
	ShouldClean bool
	SkipBcrypt  bool
}

// Seed populates the database with test data: users, a block mesh, groups
// with members and pending requests, and personal and group posts.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Seeding %d users, %d groups, %d posts...", opts.NumUsers, opts.NumGroups, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db, opts)
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("✓ %d users created", len(users))

	// Sparse block mesh, roughly 5% of user pairs in one direction
	blocks := 0
	for _, blocker := range users {
		for _, blocked := range users {
			if blocker.ID == blocked.ID || r.Intn(20) != 0 {
				continue
			}
			if err := f.AddBlock(blocker, blocked); err == nil {
				blocks++
			}
		}
	}
	log.Printf("✓ %d blocks created", blocks)

	groups := make([]*models.Group, 0, opts.NumGroups)
	for i := 0; i < opts.NumGroups; i++ {
		owner := users[r.Intn(len(users))]
		group, err := f.CreateGroup(owner)
		if err != nil {
			return fmt.Errorf("failed to create groups: %w", err)
		}
		groups = append(groups, group)

		// Roughly half the user base joins; a few of them get admin.
		// The rest occasionally leave a pending request behind.
		for _, user := range users {
			if user.ID == owner.ID {
				continue
			}
			switch r.Intn(4) {
			case 0, 1:
				_ = f.AddMember(group, user, r.Intn(8) == 0)
			case 2:
				_ = f.AddRequest(group, user)
			}
		}
	}
	log.Printf("✓ %d groups created", len(groups))

	for i := 0; i < opts.NumPosts; i++ {
		author := users[r.Intn(len(users))]
		// a third of personal posts are private
		if _, err := f.CreatePost(author, r.Intn(3) != 0); err != nil {
			return fmt.Errorf("failed to create posts: %w", err)
		}

		if len(groups) > 0 && r.Intn(2) == 0 {
			group := groups[r.Intn(len(groups))]
			var members []models.GroupMembership
			if err := db.Where("group_id = ?", group.ID).Find(&members).Error; err == nil && len(members) > 0 {
				member := members[r.Intn(len(members))]
				var author models.User
				if err := db.First(&author, member.UserID).Error; err == nil {
					_, _ = f.CreateGroupPost(group, &author)
				}
			}
		}
	}
	log.Printf("✓ %d personal posts created", opts.NumPosts)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE group_posts, posts, group_requests, group_memberships, groups, user_blocks, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

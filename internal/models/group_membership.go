package models

import "time"

// GroupMembership maps users to groups. A (group, user) pair holds at most
// one membership row, and a membership row never coexists with a
// GroupRequest row for the same pair.
//
// The owner is not flagged here; ownership is derived from
// Group.CreatorID so there is a single source of truth for the owner role.
type GroupMembership struct {
	GroupID   uint      `gorm:"primaryKey;autoIncrement:false" json:"group_id"`
	Group     *Group    `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (GroupMembership) TableName() string {
	return "group_memberships"
}

// RelationshipState is the resolved relationship of a user to a group.
type RelationshipState string

const (
	// RelationshipNone indicates no relationship exists for the pair.
	RelationshipNone RelationshipState = "none"
	// RelationshipRequested indicates a pending join request.
	RelationshipRequested RelationshipState = "requested"
	// RelationshipMember indicates a plain membership.
	RelationshipMember RelationshipState = "member"
	// RelationshipAdmin indicates a membership with the admin flag set.
	RelationshipAdmin RelationshipState = "admin"
	// RelationshipOwner indicates the user created the group.
	RelationshipOwner RelationshipState = "owner"
)

// Rank orders relationship states by authority. Owner outranks Admin,
// Admin outranks Member; Requested and None carry no authority.
func (s RelationshipState) Rank() int {
	switch s {
	case RelationshipOwner:
		return 3
	case RelationshipAdmin:
		return 2
	case RelationshipMember:
		return 1
	default:
		return 0
	}
}

// IsMember reports whether the state grants membership of any rank.
func (s RelationshipState) IsMember() bool {
	return s.Rank() >= 1
}

// CanModerate reports whether the state may act on requests and members.
func (s RelationshipState) CanModerate() bool {
	return s.Rank() >= 2
}

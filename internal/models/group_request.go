package models

import "time"

// GroupRequest is a pending ask to join a group. The composite primary key
// makes a second request for the same pair a unique-constraint violation,
// and acceptance replaces the row with a GroupMembership inside one
// transaction, so the pair is always in exactly one of
// {no-relation, requested, member}.
type GroupRequest struct {
	GroupID   uint      `gorm:"primaryKey;autoIncrement:false" json:"group_id"`
	Group     *Group    `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (GroupRequest) TableName() string {
	return "group_requests"
}

package models

import "time"

// UserBlock is a directed blocking edge between two users. Visibility
// treats the edge as symmetric: content is hidden in both directions no
// matter who created the block.
type UserBlock struct {
	BlockerID uint      `gorm:"primaryKey;autoIncrement:false" json:"blocker_id"`
	Blocker   *User     `gorm:"foreignKey:BlockerID" json:"blocker,omitempty"`
	BlockedID uint      `gorm:"primaryKey;autoIncrement:false" json:"blocked_id"`
	Blocked   *User     `gorm:"foreignKey:BlockedID" json:"blocked,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (UserBlock) TableName() string {
	return "user_blocks"
}

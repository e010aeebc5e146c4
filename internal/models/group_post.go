package models

import "time"

// GroupPost is a post scoped to a group. It carries no public/private flag;
// group membership is its visibility boundary. The same non-empty-payload
// invariant as Post applies.
type GroupPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	GroupID   uint      `gorm:"not null;index" json:"group_id"`
	Group     *Group    `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Content   *string   `gorm:"type:text" json:"content"`
	Picture   *string   `json:"picture"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (GroupPost) TableName() string {
	return "group_posts"
}

// HasPayload reports whether the group post carries at least one of content
// or picture.
func (p *GroupPost) HasPayload() bool {
	return (p.Content != nil && *p.Content != "") || (p.Picture != nil && *p.Picture != "")
}

package models

import "time"

// Post is a personal feed entry. Content and Picture are both optional but
// never absent together. A private post is visible to its author only.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content   *string   `gorm:"type:text" json:"content"`
	Picture   *string   `json:"picture"`
	IsPublic  bool      `gorm:"not null;default:true" json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}

// HasPayload reports whether the post carries at least one of content or
// picture.
func (p *Post) HasPayload() bool {
	return (p.Content != nil && *p.Content != "") || (p.Picture != nil && *p.Picture != "")
}

package models

import "time"

// Comment represents a comment on a post. Comments are deleted together with
// their post and ordered newest first like everything else.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    *uint     `json:"post_id" gorm:"index"`
	Post      *Post     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
	Author    *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Text      string    `json:"text" gorm:"size:400;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Text string `json:"text" form:"text" validate:"required,min=1,max=400"`
}

package models

import "time"

// Post represents a user's post. CreatedAt is server-assigned and immutable;
// every listing orders by it descending with the id as a tie-break, so pages are
// deterministic even when timestamps collide within a second.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
	Author    *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	GroupID   *uint     `json:"group_id,omitempty" gorm:"index"`
	Group     *Group    `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	ImageID   string    `json:"image_id,omitempty"` // media store reference, empty when no attachment
}

// CreatePostRequest defines the request body for creating a new post. The image,
// when present, arrives as a multipart file part named "image".
type CreatePostRequest struct {
	Text    string `json:"text" form:"text" validate:"required,min=1"`
	GroupID *uint  `json:"group_id,omitempty" form:"group_id"`
}

// UpdatePostRequest defines the request body for editing an existing post
type UpdatePostRequest struct {
	Text    string `json:"text" form:"text" validate:"required,min=1"`
	GroupID *uint  `json:"group_id,omitempty" form:"group_id"`
}

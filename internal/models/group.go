package models

// Group is a named community that posts may optionally belong to. Groups are
// created by administrators and immutable afterwards; deleting one detaches its
// posts instead of deleting them.
type Group struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"size:200;not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Description string `json:"description" gorm:"size:400"`
}

// CreateGroupRequest defines the request body for creating a new group
type CreateGroupRequest struct {
	Title       string `json:"title" form:"title" validate:"required,min=1,max=200"`
	Slug        string `json:"slug" form:"slug" validate:"required,min=1,max=255"`
	Description string `json:"description" form:"description" validate:"max=400"`
}

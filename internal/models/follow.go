package models

import "time"

// Follow is a directed edge: UserID follows AuthorID. The composite unique index
// guarantees at most one edge per ordered pair, which together with an
// on-conflict-do-nothing insert makes concurrent follow requests collapse into a
// single row.
type Follow struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_follow_user_author;not null"`
	AuthorID  uint      `json:"author_id" gorm:"index;uniqueIndex:idx_follow_user_author;not null"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents an account. Identity lifecycle (signup/signin) is handled by the
// auth handler; everywhere else a user is just an opaque author or viewer.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"uniqueIndex;size:150"`
	Email       string    `json:"email" gorm:"uniqueIndex"`
	Password    string    `json:"-"` // bcrypt hash, never serialized
	IsAdmin     bool      `json:"-" gorm:"default:false"`
	FirebaseUID string    `json:"-" gorm:"index"` // set only for federated accounts
	CreatedAt   time.Time `json:"created_at"`
}

// UserCompact is the author payload embedded in feed and post responses.
type UserCompact struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// ToCompact converts a User to its compact representation
func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Username: u.Username}
}

type SignupRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=2,max=150"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

type SigninRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// FirebaseLoginRequest carries a Firebase ID token to exchange for a local session.
type FirebaseLoginRequest struct {
	IDToken  string `json:"id_token" validate:"required"`
	Username string `json:"username" validate:"omitempty,min=2,max=150"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

package repositories

import "errors"

// Sentinel errors shared by the repositories. Handlers map these to 404s or
// redirects; anything else is a storage failure and surfaces as a 500.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrGroupNotFound   = errors.New("group not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrFollowNotFound  = errors.New("follow relationship not found")
)

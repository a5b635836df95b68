package repositories

import (
	"errors"

	"github.com/pixelforo/gameblog/internal/comments"
)

// Sentinel errors shared by the repositories. Handlers map these to HTTP
// statuses; anything else that escapes a repository is a wrapped storage
// failure.
var (
	ErrPostNotFound       = errors.New("post not found")
	ErrCommentNotFound    = comments.ErrNotFound
	ErrInvalidReaction    = errors.New("invalid reaction type")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

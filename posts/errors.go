package posts

import (
	"errors"
	"fmt"
	"socialfeed/storage"
)

var (
	ErrValidation = errors.New("posts: validation error")
	ErrForbidden  = errors.New("posts: forbidden")
	ErrConflict   = errors.New("posts: conflict")

	ErrAlreadyLiked = fmt.Errorf("%w.already_liked", ErrConflict)
	ErrNotLiked     = fmt.Errorf("%w.not_liked", ErrConflict)

	// ErrCommentNotFound is a storage.NotFoundError so callers that only
	// care about "not found" need a single check.
	ErrCommentNotFound = fmt.Errorf("%w.comment", storage.NotFoundError)
)

package storage

import (
	"context"
	"errors"
	"fmt"
	"socialfeed/storage/models"
)

var (
	InternalError  = errors.New("storage internal error")
	ClientError    = errors.New("storage client error")
	CollisionError = fmt.Errorf("%w.collision", ClientError)
	NotFoundError  = fmt.Errorf("%w.not_found", ClientError)
	InvalidIdError = fmt.Errorf("%w.invalid_id", NotFoundError)
)

// Storage keeps one document per post with its likes and comments embedded.
type Storage interface {
	// NewId returns a fresh identifier for an embedded like or comment.
	NewId() string
	AddPost(ctx context.Context, post *models.Post) (*models.Post, error)
	GetPost(ctx context.Context, postId string) (*models.Post, error)
	// GetPosts returns every post, newest first.
	GetPosts(ctx context.Context) ([]*models.Post, error)
	// UpdatePost replaces the stored post if its version still equals
	// post.Version and returns CollisionError otherwise.
	UpdatePost(ctx context.Context, post *models.Post) (*models.Post, error)
	DeletePost(ctx context.Context, postId string) error
}

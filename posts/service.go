package posts

import (
	"context"
	"errors"
	"fmt"
	"socialfeed/storage"
	"socialfeed/storage/models"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxUpdateAttempts bounds how often a mutation is replayed after the store
// reports that the post changed underneath it.
const maxUpdateAttempts = 3

// Service owns the post aggregate: the post itself, its comments and its
// likes. The requester identity is always passed in by the caller.
type Service struct {
	storage storage.Storage
	logger  *zap.Logger
	locks   *postLocks
	now     func() time.Time
}

func NewService(s storage.Storage, logger *zap.Logger) *Service {
	return &Service{
		storage: s,
		logger:  logger,
		locks:   newPostLocks(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) CreatePost(ctx context.Context, author models.Identity, text string) (*models.Post, error) {
	if isBlank(text) {
		return nil, fmt.Errorf("post text is empty: %w", ErrValidation)
	}
	post := &models.Post{
		AuthorId:  author.UserId,
		Name:      author.Name,
		Avatar:    author.Avatar,
		Text:      text,
		Likes:     []models.Like{},
		Comments:  []models.Comment{},
		CreatedAt: s.now(),
	}
	created, err := s.storage.AddPost(ctx, post)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Post created", zap.String("postId", created.Id), zap.String("authorId", created.AuthorId))
	return created, nil
}

func (s *Service) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.storage.GetPosts(ctx)
}

func (s *Service) GetPost(ctx context.Context, postId string) (*models.Post, error) {
	return s.storage.GetPost(ctx, postId)
}

func (s *Service) DeletePost(ctx context.Context, requester models.Identity, postId string) error {
	unlock := s.locks.lock(postId)
	defer unlock()

	post, err := s.storage.GetPost(ctx, postId)
	if err != nil {
		return err
	}
	if post.AuthorId != requester.UserId {
		return fmt.Errorf("post %s is owned by another user: %s %w", postId, post.AuthorId, ErrForbidden)
	}
	if err = s.storage.DeletePost(ctx, postId); err != nil {
		return err
	}
	s.logger.Info("Post removed", zap.String("postId", postId), zap.String("authorId", requester.UserId))
	return nil
}

func (s *Service) AddLike(ctx context.Context, requester models.Identity, postId string) ([]models.Like, error) {
	post, err := s.update(ctx, postId, func(post *models.Post) error {
		return addLike(post, requester.UserId, s.storage.NewId())
	})
	if err != nil {
		return nil, err
	}
	return post.Likes, nil
}

func (s *Service) RemoveLike(ctx context.Context, requester models.Identity, postId string) ([]models.Like, error) {
	post, err := s.update(ctx, postId, func(post *models.Post) error {
		return removeLike(post, requester.UserId)
	})
	if err != nil {
		return nil, err
	}
	return post.Likes, nil
}

func (s *Service) AddComment(ctx context.Context, requester models.Identity, postId, text string) ([]models.Comment, error) {
	if isBlank(text) {
		return nil, fmt.Errorf("comment text is empty: %w", ErrValidation)
	}
	post, err := s.update(ctx, postId, func(post *models.Post) error {
		addComment(post, requester, s.storage.NewId(), text, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}

func (s *Service) RemoveComment(ctx context.Context, requester models.Identity, postId, commentId string) ([]models.Comment, error) {
	post, err := s.update(ctx, postId, func(post *models.Post) error {
		return removeComment(post, requester.UserId, commentId)
	})
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}

// update runs load, mutate and save for one post while holding that post's
// lock. A failed guard leaves the stored post untouched.
func (s *Service) update(ctx context.Context, postId string, mutate func(post *models.Post) error) (*models.Post, error) {
	unlock := s.locks.lock(postId)
	defer unlock()

	for attempt := 1; ; attempt++ {
		post, err := s.storage.GetPost(ctx, postId)
		if err != nil {
			return nil, err
		}
		if err = mutate(post); err != nil {
			return nil, err
		}
		updated, err := s.storage.UpdatePost(ctx, post)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, storage.CollisionError) || attempt == maxUpdateAttempts {
			return nil, err
		}
		s.logger.Warn("Post changed concurrently, retrying",
			zap.String("postId", postId), zap.Int("attempt", attempt), zap.Error(err))
	}
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

package persistent_cached

import (
	"context"
	"encoding/json"
	"errors"
	"socialfeed/storage"
	"socialfeed/storage/models"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "post:"

// cachedPost carries the version, which is hidden from the public JSON form.
type cachedPost struct {
	Post    *models.Post `json:"post"`
	Version int64        `json:"version"`
}

func (s *PersistentStorageWithCache) saveToCache(ctx context.Context, post *models.Post) {
	j, err := json.Marshal(cachedPost{Post: post, Version: post.Version})
	if err == nil {
		err = s.client.Set(ctx, keyPrefix+post.Id, j, s.ttl).Err()
	}
	if err != nil {
		s.logger.Warn("Failed to save post to redis", zap.String("postId", post.Id), zap.Error(err))
	}
}

// fillCache stores a post read on a cache miss. It never overwrites an
// existing entry: a write that landed while the read was in flight is newer.
func (s *PersistentStorageWithCache) fillCache(ctx context.Context, post *models.Post) {
	j, err := json.Marshal(cachedPost{Post: post, Version: post.Version})
	if err == nil {
		err = s.client.SetNX(ctx, keyPrefix+post.Id, j, s.ttl).Err()
	}
	if err != nil {
		s.logger.Warn("Failed to save post to redis", zap.String("postId", post.Id), zap.Error(err))
	}
}

func (s *PersistentStorageWithCache) getFromCache(ctx context.Context, postId string) (*models.Post, bool) {
	val, err := s.client.Get(ctx, keyPrefix+postId).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("Failed to get post from redis", zap.String("postId", postId), zap.Error(err))
		}
		return nil, false
	}
	var c cachedPost
	if err = json.Unmarshal([]byte(val), &c); err != nil || c.Post == nil {
		s.logger.Warn("Dropping undecodable cache entry", zap.String("postId", postId), zap.Error(err))
		s.removeFromCache(ctx, postId)
		return nil, false
	}
	c.Post.Version = c.Version
	return c.Post, true
}

func (s *PersistentStorageWithCache) removeFromCache(ctx context.Context, postId string) {
	err := s.client.Del(ctx, keyPrefix+postId).Err()
	if err != nil {
		s.logger.Warn("Failed to remove post from redis", zap.String("postId", postId), zap.Error(err))
	}
}

func CreatePersistentStorageCachedWithRedis(persistentStorage storage.Storage, redisUrl string, ttl time.Duration, logger *zap.Logger) storage.Storage {
	redisClient := redis.NewClient(&redis.Options{
		Addr: redisUrl,
	})
	return &PersistentStorageWithCache{
		client:            redisClient,
		persistentStorage: persistentStorage,
		ttl:               ttl,
		logger:            logger,
	}
}

// PersistentStorageWithCache is a cache-aside decorator. Redis failures are
// logged and never fail the request.
type PersistentStorageWithCache struct {
	client            *redis.Client
	persistentStorage storage.Storage
	ttl               time.Duration
	logger            *zap.Logger
}

func (s *PersistentStorageWithCache) NewId() string {
	return s.persistentStorage.NewId()
}

func (s *PersistentStorageWithCache) AddPost(ctx context.Context, post *models.Post) (*models.Post, error) {
	created, err := s.persistentStorage.AddPost(ctx, post)
	if err == nil {
		s.saveToCache(ctx, created)
	}
	return created, err
}

func (s *PersistentStorageWithCache) GetPost(ctx context.Context, postId string) (*models.Post, error) {
	if p, found := s.getFromCache(ctx, postId); found {
		return p, nil
	}
	post, err := s.persistentStorage.GetPost(ctx, postId)
	if err == nil {
		s.fillCache(ctx, post)
	}
	return post, err
}

func (s *PersistentStorageWithCache) GetPosts(ctx context.Context) ([]*models.Post, error) {
	return s.persistentStorage.GetPosts(ctx)
}

func (s *PersistentStorageWithCache) UpdatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	updated, err := s.persistentStorage.UpdatePost(ctx, post)
	if err != nil {
		// A collision means the cached copy is stale.
		if errors.Is(err, storage.NotFoundError) || errors.Is(err, storage.CollisionError) {
			s.removeFromCache(ctx, post.Id)
		}
		return nil, err
	}
	s.saveToCache(ctx, updated)
	return updated, nil
}

func (s *PersistentStorageWithCache) DeletePost(ctx context.Context, postId string) error {
	err := s.persistentStorage.DeletePost(ctx, postId)
	if err == nil || errors.Is(err, storage.NotFoundError) {
		s.removeFromCache(ctx, postId)
	}
	return err
}

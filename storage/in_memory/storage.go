package in_memory

import (
	"context"
	"fmt"
	"socialfeed/storage"
	"socialfeed/storage/models"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryStorage struct {
	mut     sync.RWMutex
	posts   map[string]*models.Post
	postIds []string
}

func (s *InMemoryStorage) NewId() string {
	return uuid.New().String()
}

func (s *InMemoryStorage) AddPost(_ context.Context, post *models.Post) (*models.Post, error) {
	p := post.Clone()
	p.Id = uuid.New().String()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.Version = 0

	s.mut.Lock()
	defer s.mut.Unlock()
	s.posts[p.Id] = p
	s.postIds = append(s.postIds, p.Id)
	return p.Clone(), nil
}

func (s *InMemoryStorage) GetPost(_ context.Context, postId string) (*models.Post, error) {
	if err := checkId(postId); err != nil {
		return nil, err
	}
	s.mut.RLock()
	defer s.mut.RUnlock()
	post, found := s.posts[postId]
	if !found {
		return nil, fmt.Errorf("no post with id %v: %w", postId, storage.NotFoundError)
	}
	return post.Clone(), nil
}

func (s *InMemoryStorage) GetPosts(_ context.Context) ([]*models.Post, error) {
	s.mut.RLock()
	defer s.mut.RUnlock()

	// postIds is in insertion order; walking it backwards makes the later
	// insert win between posts created at the same instant.
	posts := make([]*models.Post, 0, len(s.postIds))
	for i := len(s.postIds) - 1; i >= 0; i-- {
		posts = append(posts, s.posts[s.postIds[i]].Clone())
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (s *InMemoryStorage) UpdatePost(_ context.Context, post *models.Post) (*models.Post, error) {
	if err := checkId(post.Id); err != nil {
		return nil, err
	}
	s.mut.Lock()
	defer s.mut.Unlock()
	current, found := s.posts[post.Id]
	if !found {
		return nil, fmt.Errorf("no post with id %v: %w", post.Id, storage.NotFoundError)
	}
	if current.Version != post.Version {
		return nil, fmt.Errorf("post %v changed since version %d: %w", post.Id, post.Version, storage.CollisionError)
	}
	p := post.Clone()
	p.Version++
	s.posts[p.Id] = p
	return p.Clone(), nil
}

func (s *InMemoryStorage) DeletePost(_ context.Context, postId string) error {
	if err := checkId(postId); err != nil {
		return err
	}
	s.mut.Lock()
	defer s.mut.Unlock()
	if _, found := s.posts[postId]; !found {
		return fmt.Errorf("no post with id %v: %w", postId, storage.NotFoundError)
	}
	delete(s.posts, postId)
	for i, id := range s.postIds {
		if id == postId {
			s.postIds = append(s.postIds[:i], s.postIds[i+1:]...)
			break
		}
	}
	return nil
}

func checkId(postId string) error {
	if _, err := uuid.Parse(postId); err != nil {
		return fmt.Errorf("malformed post id %q: %w", postId, storage.InvalidIdError)
	}
	return nil
}

func CreateInMemoryStorage() storage.Storage {
	return &InMemoryStorage{
		posts:   make(map[string]*models.Post),
		postIds: make([]string, 0),
	}
}

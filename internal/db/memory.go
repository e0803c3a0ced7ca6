package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Anishpras/personal-blog-api/internal/models"
)

// MemoryStore is an in-process Store used by tests and the seeder's dry-run
// mode. Timestamps it assigns are strictly increasing so update ordering is
// deterministic even within a single clock tick.
type MemoryStore struct {
	mu       sync.Mutex
	users    map[string]models.User
	posts    map[string]models.Post
	lastTime time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]models.User),
		posts: make(map[string]models.Post),
	}
}

func (s *MemoryStore) Close() {}

// now must be called with the mutex held.
func (s *MemoryStore) now() time.Time {
	t := time.Now().UTC()
	if !t.After(s.lastTime) {
		t = s.lastTime.Add(time.Nanosecond)
	}
	s.lastTime = t
	return t
}

func (s *MemoryStore) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.CreatedAt = s.now()
	s.users[user.ID] = user
	return &user, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[id]; ok {
		return &user, nil
	}
	return nil, nil
}

func (s *MemoryStore) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (s *MemoryStore) CreatePost(_ context.Context, post models.Post) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	post.CreatedAt = now
	post.UpdatedAt = now
	s.posts[post.ID] = post
	created := s.withAuthor(post)
	return &created, nil
}

func (s *MemoryStore) GetPost(_ context.Context, id string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	found := s.withAuthor(post)
	return &found, nil
}

func (s *MemoryStore) ListPosts(_ context.Context, authorID string) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := make([]models.Post, 0)
	for _, post := range s.posts {
		if authorID != "" && post.AuthorID != authorID {
			continue
		}
		posts = append(posts, s.withAuthor(post))
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].UpdatedAt.After(posts[j].UpdatedAt)
	})
	return posts, nil
}

func (s *MemoryStore) UpdatePost(_ context.Context, id, title, content string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	post.Title = title
	post.Content = content
	post.UpdatedAt = s.now()
	s.posts[id] = post
	updated := s.withAuthor(post)
	return &updated, nil
}

func (s *MemoryStore) DeletePost(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, id)
	return nil
}

// withAuthor must be called with the mutex held.
func (s *MemoryStore) withAuthor(post models.Post) models.Post {
	if author, ok := s.users[post.AuthorID]; ok {
		post.Author = author.Author()
	}
	return post
}

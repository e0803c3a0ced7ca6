package db

import (
	"context"

	"github.com/Anishpras/personal-blog-api/internal/models"
)

// Store is the persistence boundary shared by the identity and post
// services. Implementations return (nil, nil) for single-row lookups that
// find nothing; callers decide whether that is a NotFound.
type Store interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	CreatePost(ctx context.Context, post models.Post) (*models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	// ListPosts returns posts ordered by updated_at descending, optionally
	// restricted to a single author. Author public fields are embedded.
	ListPosts(ctx context.Context, authorID string) ([]models.Post, error)
	UpdatePost(ctx context.Context, id, title, content string) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error

	Close()
}

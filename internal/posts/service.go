package posts

import (
	"context"

	"github.com/google/uuid"

	"github.com/Anishpras/personal-blog-api/internal/apperror"
	"github.com/Anishpras/personal-blog-api/internal/db"
	"github.com/Anishpras/personal-blog-api/internal/models"
)

// Service owns post CRUD and the ownership predicate: only a post's
// recorded author may update or delete it.
type Service struct {
	store db.Store
}

func NewService(store db.Store) *Service {
	return &Service{store: store}
}

// Create inserts a post authored by the verified caller. A client-supplied
// author id is accepted only when it matches the caller; anything else is an
// impersonation attempt and is rejected.
func (s *Service) Create(ctx context.Context, callerID, title, content, requestedAuthorID string) (*models.Post, error) {
	if title == "" || content == "" {
		return nil, apperror.New(apperror.KindValidation, "title and content required")
	}
	if requestedAuthorID != "" && requestedAuthorID != callerID {
		return nil, apperror.New(apperror.KindForbidden, "cannot create a post for another author")
	}
	author, err := s.store.GetUserByID(ctx, callerID)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "error creating post", err)
	}
	if author == nil {
		return nil, apperror.New(apperror.KindUnauthenticated, "unknown author")
	}
	created, err := s.store.CreatePost(ctx, models.Post{
		ID:       uuid.NewString(),
		Title:    title,
		Content:  content,
		AuthorID: callerID,
	})
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "error creating post", err)
	}
	return created, nil
}

// List returns all posts, optionally one author's, most recently updated
// first.
func (s *Service) List(ctx context.Context, authorID string) ([]models.Post, error) {
	posts, err := s.store.ListPosts(ctx, authorID)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "error fetching posts", err)
	}
	return posts, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "error fetching post", err)
	}
	if post == nil {
		return nil, apperror.New(apperror.KindNotFound, "post not found")
	}
	return post, nil
}

func (s *Service) Update(ctx context.Context, id, callerID, title, content string) (*models.Post, error) {
	if title == "" || content == "" {
		return nil, apperror.New(apperror.KindValidation, "title and content required")
	}
	if _, err := s.owned(ctx, id, callerID, "update"); err != nil {
		return nil, err
	}
	updated, err := s.store.UpdatePost(ctx, id, title, content)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "error updating post", err)
	}
	if updated == nil {
		return nil, apperror.New(apperror.KindNotFound, "post not found")
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id, callerID string) error {
	if _, err := s.owned(ctx, id, callerID, "delete"); err != nil {
		return err
	}
	if err := s.store.DeletePost(ctx, id); err != nil {
		return apperror.Wrap(apperror.KindInternal, "error deleting post", err)
	}
	return nil
}

// owned loads the post and enforces the ownership predicate.
func (s *Service) owned(ctx context.Context, id, callerID, verb string) (*models.Post, error) {
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "error fetching post", err)
	}
	if post == nil {
		return nil, apperror.New(apperror.KindNotFound, "post not found")
	}
	if post.AuthorID != callerID {
		return nil, apperror.New(apperror.KindForbidden, "not authorized to "+verb+" this post")
	}
	return post, nil
}

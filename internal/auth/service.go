package auth

import (
	"context"
	"net/mail"

	"github.com/google/uuid"

	"github.com/Anishpras/personal-blog-api/internal/apperror"
	"github.com/Anishpras/personal-blog-api/internal/db"
	"github.com/Anishpras/personal-blog-api/internal/models"
)

// Service is the identity service: signup, login, and the credential checks
// behind them. Token verification lives on TokenManager so middleware can
// use it without a store handle.
type Service struct {
	store  db.Store
	tokens *TokenManager
}

func NewService(store db.Store, tokens *TokenManager) *Service {
	return &Service{store: store, tokens: tokens}
}

func (s *Service) Signup(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return apperror.New(apperror.KindValidation, "email and password required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperror.New(apperror.KindValidation, "invalid email address")
	}
	existing, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "error creating user", err)
	}
	if existing != nil {
		return apperror.New(apperror.KindConflict, "email already registered")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "error creating user", err)
	}
	_, err = s.store.CreateUser(ctx, models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "error creating user", err)
	}
	return nil
}

// Login verifies the credentials and issues a bearer token alongside the
// user's public fields. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, models.Author, error) {
	if email == "" || password == "" {
		return "", models.Author{}, apperror.New(apperror.KindValidation, "email and password required")
	}
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return "", models.Author{}, apperror.Wrap(apperror.KindInternal, "error logging in", err)
	}
	if user == nil || !checkPassword(password, user.PasswordHash) {
		return "", models.Author{}, apperror.New(apperror.KindUnauthenticated, "invalid credentials")
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", models.Author{}, apperror.Wrap(apperror.KindInternal, "error logging in", err)
	}
	return token, user.Author(), nil
}

func (s *Service) ListAuthors(ctx context.Context) ([]models.Author, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "error fetching authors", err)
	}
	authors := make([]models.Author, 0, len(users))
	for _, user := range users {
		authors = append(authors, user.Author())
	}
	return authors, nil
}

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/Anishpras/personal-blog-api/internal/apperror"
	"github.com/Anishpras/personal-blog-api/internal/db"
)

func newTestService(t *testing.T) (*Service, *db.MemoryStore) {
	t.Helper()
	store := db.NewMemoryStore()
	tokens := NewTokenManager("test-secret", time.Hour)
	return NewService(store, tokens), store
}

func TestSignupAndLogin(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	if err := svc.Signup(ctx, "a@x.com", "pw1"); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	users, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("got %d users, want 1", len(users))
	}
	if users[0].PasswordHash == "pw1" || users[0].PasswordHash == "" {
		t.Error("password must be stored hashed")
	}

	token, user, err := svc.Login(ctx, "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Errorf("got email %q, want %q", user.Email, "a@x.com")
	}
	if user.ID != users[0].ID {
		t.Errorf("got user id %q, want %q", user.ID, users[0].ID)
	}

	// Token identity must match the authenticated user.
	tm := NewTokenManager("test-secret", time.Hour)
	userID, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if userID != users[0].ID {
		t.Errorf("token embeds %q, want %q", userID, users[0].ID)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	if err := svc.Signup(ctx, "a@x.com", "pw1"); err != nil {
		t.Fatalf("first Signup: %v", err)
	}
	err := svc.Signup(ctx, "a@x.com", "pw2")
	if err == nil {
		t.Fatal("expected duplicate signup to fail")
	}
	if apperror.KindOf(err) != apperror.KindConflict {
		t.Errorf("got kind %q, want %q", apperror.KindOf(err), apperror.KindConflict)
	}

	users, _ := store.ListUsers(ctx)
	if len(users) != 1 {
		t.Errorf("got %d users after duplicate signup, want 1", len(users))
	}
}

func TestSignupValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name, email, password string
	}{
		{"empty email", "", "pw"},
		{"empty password", "a@x.com", ""},
		{"malformed email", "not-an-email", "pw"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Signup(ctx, tc.email, tc.password)
			if apperror.KindOf(err) != apperror.KindValidation {
				t.Errorf("got kind %q, want %q", apperror.KindOf(err), apperror.KindValidation)
			}
		})
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Signup(ctx, "a@x.com", "pw1"); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	if _, _, err := svc.Login(ctx, "a@x.com", "wrong"); apperror.KindOf(err) != apperror.KindUnauthenticated {
		t.Errorf("wrong password: got kind %q, want unauthenticated", apperror.KindOf(err))
	}
	if _, _, err := svc.Login(ctx, "unknown@x.com", "pw1"); apperror.KindOf(err) != apperror.KindUnauthenticated {
		t.Errorf("unknown email: got kind %q, want unauthenticated", apperror.KindOf(err))
	}
}

func TestListAuthors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, email := range []string{"a@x.com", "b@x.com"} {
		if err := svc.Signup(ctx, email, "pw"); err != nil {
			t.Fatalf("Signup %s: %v", email, err)
		}
	}

	authors, err := svc.ListAuthors(ctx)
	if err != nil {
		t.Fatalf("ListAuthors: %v", err)
	}
	if len(authors) != 2 {
		t.Fatalf("got %d authors, want 2", len(authors))
	}
	for _, a := range authors {
		if a.ID == "" || a.Email == "" {
			t.Errorf("author missing public fields: %+v", a)
		}
	}
}

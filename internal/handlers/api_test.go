package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Anishpras/personal-blog-api/internal/auth"
	"github.com/Anishpras/personal-blog-api/internal/db"
	"github.com/Anishpras/personal-blog-api/internal/posts"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	store := db.NewMemoryStore()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	authHandler := NewAuthHandler(auth.NewService(store, tokens))
	postsHandler := NewPostsHandler(posts.NewService(store))
	return NewRouter(RouterOptions{
		CorsAllowedOrigins: []string{"*"},
	}, tokens, authHandler, postsHandler)
}

func doRequest(t *testing.T, router chi.Router, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func signupAndLogin(t *testing.T, router chi.Router, email, password string) (token, userID string) {
	t.Helper()
	creds := map[string]string{"email": email, "password": password}

	rec := doRequest(t, router, http.MethodPost, "/auth/signup", "", creds)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup %s: got %d, body %s", email, rec.Code, rec.Body)
	}

	rec = doRequest(t, router, http.MethodPost, "/auth/login", "", creds)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: got %d, body %s", email, rec.Code, rec.Body)
	}
	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	decode(t, rec, &resp)
	if resp.Token == "" || resp.User.ID == "" {
		t.Fatalf("login %s: incomplete response %s", email, rec.Body)
	}
	return resp.Token, resp.User.ID
}

// Full lifecycle: signup, login, create, cross-user update rejection,
// delete, and the post disappearing afterwards.
func TestPostLifecycle(t *testing.T) {
	router := newTestRouter(t)

	tokenA, _ := signupAndLogin(t, router, "a@x.com", "pw1")
	tokenB, _ := signupAndLogin(t, router, "b@x.com", "pw2")

	rec := doRequest(t, router, http.MethodPost, "/posts", tokenA, map[string]string{
		"title": "T1", "content": "C1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got %d, body %s", rec.Code, rec.Body)
	}
	var created struct {
		ID     string `json:"id"`
		Author struct {
			Email string `json:"email"`
		} `json:"author"`
	}
	decode(t, rec, &created)
	if created.Author.Email != "a@x.com" {
		t.Errorf("got author email %q, want a@x.com", created.Author.Email)
	}

	rec = doRequest(t, router, http.MethodPut, "/posts/"+created.ID, tokenB, map[string]string{
		"title": "T2", "content": "C2",
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("update by non-author: got %d, want 403", rec.Code)
	}
	var errResp struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	decode(t, rec, &errResp)
	if errResp.Code != "forbidden" {
		t.Errorf("got error code %q, want forbidden", errResp.Code)
	}

	rec = doRequest(t, router, http.MethodDelete, "/posts/"+created.ID, tokenA, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: got %d, body %s", rec.Code, rec.Body)
	}

	rec = doRequest(t, router, http.MethodGet, "/posts/"+created.ID, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: got %d, want 404", rec.Code)
	}
}

func TestSignupConflict(t *testing.T) {
	router := newTestRouter(t)
	creds := map[string]string{"email": "a@x.com", "password": "pw1"}

	if rec := doRequest(t, router, http.MethodPost, "/auth/signup", "", creds); rec.Code != http.StatusCreated {
		t.Fatalf("first signup: got %d", rec.Code)
	}
	rec := doRequest(t, router, http.MethodPost, "/auth/signup", "", creds)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate signup: got %d, want 409", rec.Code)
	}
	var errResp struct {
		Code string `json:"code"`
	}
	decode(t, rec, &errResp)
	if errResp.Code != "conflict" {
		t.Errorf("got error code %q, want conflict", errResp.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := newTestRouter(t)
	signupAndLogin(t, router, "a@x.com", "pw1")

	rec := doRequest(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want 401", rec.Code)
	}
}

func TestMutationRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		method, path string
	}{
		{http.MethodPost, "/posts"},
		{http.MethodPut, "/posts/some-id"},
		{http.MethodDelete, "/posts/some-id"},
	}
	for _, tc := range cases {
		rec := doRequest(t, router, tc.method, tc.path, "", map[string]string{
			"title": "T", "content": "C",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: got %d, want 401", tc.method, tc.path, rec.Code)
		}
	}

	rec := doRequest(t, router, http.MethodPost, "/posts", "not-a-token", map[string]string{
		"title": "T", "content": "C",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: got %d, want 401", rec.Code)
	}
}

func TestCreatePostValidation(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signupAndLogin(t, router, "a@x.com", "pw1")

	rec := doRequest(t, router, http.MethodPost, "/posts", token, map[string]string{
		"title": "", "content": "",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", rec.Code)
	}
}

func TestCreatePostIgnoresForeignAuthorID(t *testing.T) {
	router := newTestRouter(t)
	tokenA, _ := signupAndLogin(t, router, "a@x.com", "pw1")
	_, idB := signupAndLogin(t, router, "b@x.com", "pw2")

	rec := doRequest(t, router, http.MethodPost, "/posts", tokenA, map[string]string{
		"title": "T", "content": "C", "authorId": idB,
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("attributing a post to another author: got %d, want 403", rec.Code)
	}
}

func TestListPostsAndAuthorFilter(t *testing.T) {
	router := newTestRouter(t)
	tokenA, idA := signupAndLogin(t, router, "a@x.com", "pw1")
	tokenB, _ := signupAndLogin(t, router, "b@x.com", "pw2")

	for _, p := range []struct {
		token, title string
	}{
		{tokenA, "A1"},
		{tokenB, "B1"},
		{tokenA, "A2"},
	} {
		rec := doRequest(t, router, http.MethodPost, "/posts", p.token, map[string]string{
			"title": p.title, "content": "c",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s: got %d", p.title, rec.Code)
		}
	}

	rec := doRequest(t, router, http.MethodGet, "/posts", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: got %d", rec.Code)
	}
	var all []struct {
		Title    string `json:"title"`
		AuthorID string `json:"authorId"`
	}
	decode(t, rec, &all)
	if len(all) != 3 {
		t.Fatalf("got %d posts, want 3", len(all))
	}
	// Most recently updated first.
	if all[0].Title != "A2" {
		t.Errorf("got first post %q, want A2", all[0].Title)
	}

	rec = doRequest(t, router, http.MethodGet, "/posts?author="+idA, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("filtered list: got %d", rec.Code)
	}
	var filtered []struct {
		AuthorID string `json:"authorId"`
	}
	decode(t, rec, &filtered)
	if len(filtered) != 2 {
		t.Fatalf("got %d posts for author, want 2", len(filtered))
	}
	for _, p := range filtered {
		if p.AuthorID != idA {
			t.Errorf("filtered list contains foreign author %q", p.AuthorID)
		}
	}
}

func TestListAuthorsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	signupAndLogin(t, router, "a@x.com", "pw1")
	signupAndLogin(t, router, "b@x.com", "pw2")

	rec := doRequest(t, router, http.MethodGet, "/authors", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	var authors []map[string]any
	decode(t, rec, &authors)
	if len(authors) != 2 {
		t.Fatalf("got %d authors, want 2", len(authors))
	}
	for _, a := range authors {
		if _, ok := a["id"]; !ok {
			t.Errorf("author missing id: %v", a)
		}
		if _, ok := a["email"]; !ok {
			t.Errorf("author missing email: %v", a)
		}
		for key := range a {
			if key != "id" && key != "email" {
				t.Errorf("author exposes unexpected field %q", key)
			}
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("got %d, want 200", rec.Code)
	}
}

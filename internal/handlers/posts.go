package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Anishpras/personal-blog-api/internal/apperror"
	"github.com/Anishpras/personal-blog-api/internal/middleware"
	"github.com/Anishpras/personal-blog-api/internal/posts"
)

type PostsHandler struct {
	service *posts.Service
}

func NewPostsHandler(service *posts.Service) *PostsHandler {
	return &PostsHandler{service: service}
}

type createPostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	AuthorID string `json:"authorId"`
}

type updatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, apperror.New(apperror.KindUnauthenticated, "unauthenticated"))
		return
	}
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, "invalid body")
		return
	}
	post, err := h.service.Create(r.Context(), callerID, req.Title, req.Content, req.AuthorID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	author := r.URL.Query().Get("author")
	list, err := h.service.List(r.Context(), author)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, apperror.New(apperror.KindUnauthenticated, "unauthenticated"))
		return
	}
	var req updatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, "invalid body")
		return
	}
	post, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), callerID, req.Title, req.Content)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, apperror.New(apperror.KindUnauthenticated, "unauthenticated"))
		return
	}
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), callerID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}

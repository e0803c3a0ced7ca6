package models

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Author is the public projection of a User embedded in post responses
// and returned by the authors listing. It never carries the password hash.
type Author struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u User) Author() Author {
	return Author{ID: u.ID, Email: u.Email}
}

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"authorId"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

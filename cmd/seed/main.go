// Command seed fills the database with fake authors and posts for local
// development of the web client.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/Anishpras/personal-blog-api/internal/auth"
	"github.com/Anishpras/personal-blog-api/internal/config"
	"github.com/Anishpras/personal-blog-api/internal/db"
	"github.com/Anishpras/personal-blog-api/internal/posts"
)

func main() {
	users := flag.Int("users", 5, "number of users to create")
	postsPerUser := flag.Int("posts", 3, "number of posts per user")
	password := flag.String("password", "password123", "password for every seeded user")
	flag.Parse()

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := db.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	identity := auth.NewService(store, tokens)
	postSvc := posts.NewService(store)

	for i := 0; i < *users; i++ {
		email := gofakeit.Email()
		if err := identity.Signup(ctx, email, *password); err != nil {
			log.Printf("skip %s: %v", email, err)
			continue
		}
		user, err := store.GetUserByEmail(ctx, email)
		if err != nil || user == nil {
			log.Fatalf("seeded user %s not found: %v", email, err)
		}
		for j := 0; j < *postsPerUser; j++ {
			title := gofakeit.Sentence(5)
			content := gofakeit.Paragraph(2, 4, 12, " ")
			if _, err := postSvc.Create(ctx, user.ID, title, content, ""); err != nil {
				log.Fatalf("create post for %s: %v", email, err)
			}
		}
		log.Printf("seeded %s with %d posts", email, *postsPerUser)
	}
}

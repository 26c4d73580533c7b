// Seeds a batch of sample templates for a user, creating the user first when
// it does not exist yet. Intended for local development databases.
package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/myfolio/server/internal/auth"
	"github.com/myfolio/server/internal/config"
	"github.com/myfolio/server/internal/db"
	"github.com/myfolio/server/internal/models"
)

type seedTemplate struct {
	kind    string
	title   string
	content string
}

func main() {
	email := flag.String("email", "seed@myfolio.dev", "owner email")
	username := flag.String("username", "seeduser", "owner username")
	password := flag.String("password", "seedp@ssw0rd", "owner password")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("config: no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	postgres, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer postgres.Close()

	if err := postgres.EnsureSchema(ctx); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	users := db.NewUsersRepo(postgres)
	templates := db.NewTemplatesRepo(postgres)

	owner, err := users.GetByEmail(ctx, *email)
	if errors.Is(err, db.ErrNotFound) {
		salt, err := auth.GenerateSalt()
		if err != nil {
			log.Fatalf("generate salt: %v", err)
		}
		hash, err := auth.HashPassword(*password, salt)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		owner, err = users.Create(ctx, models.User{
			Email:          *email,
			Username:       *username,
			Salt:           salt,
			HashedPassword: hash,
		})
		if err != nil {
			log.Fatalf("create owner: %v", err)
		}
		log.Printf("created owner %s (id %d)", owner.Email, owner.ID)
	} else if err != nil {
		log.Fatalf("fetch owner: %v", err)
	}

	seeds := []seedTemplate{
		{
			kind:    models.TemplateTypeResume,
			title:   "Minimal resume",
			content: `{"sections":["profile","experience","education"],"theme":"plain"}`,
		},
		{
			kind:    models.TemplateTypeResume,
			title:   "Two-column resume",
			content: `{"sections":["profile","skills","experience","projects"],"theme":"two-column"}`,
		},
		{
			kind:    models.TemplateTypePortfolio,
			title:   "Photography portfolio",
			content: `{"sections":["gallery","about","contact"],"theme":"dark"}`,
		},
		{
			kind:    models.TemplateTypePortfolio,
			title:   "Developer portfolio",
			content: `{"sections":["projects","writing","talks"],"theme":"terminal"}`,
		},
	}

	for _, s := range seeds {
		tpl, err := templates.Create(ctx, models.Template{
			Type:    s.kind,
			Title:   s.title,
			Content: s.content,
			UserID:  owner.ID,
		})
		if err != nil {
			log.Fatalf("insert template %q: %v", s.title, err)
		}
		log.Printf("seeded template %d: %s", tpl.ID, tpl.Title)
	}

	log.Printf("seeded %d templates for %s", len(seeds), owner.Username)
}

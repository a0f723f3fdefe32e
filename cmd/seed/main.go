package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"golang.org/x/crypto/bcrypt"

	"notekeeper/internal/config"
	"notekeeper/internal/db"
	apperrors "notekeeper/internal/errors"
	"notekeeper/internal/model"
	"notekeeper/internal/repository"
)

var sampleNotes = []struct {
	title   string
	subject string
}{
	{"Groceries", "milk, eggs, bread"},
	{"Reading list", "books to pick up this month"},
	{"Standup", "status notes for tomorrow"},
}

func main() {
	email := flag.String("email", "demo@example.com", "demo user email")
	password := flag.String("password", "password123", "demo user password")
	name := flag.String("name", "Demo User", "demo user display name")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()
	ctx := context.Background()

	mongoDB, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	userRepo := repository.NewUserRepository(mongoDB)
	noteRepo := repository.NewNoteRepository(mongoDB)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), cfg.BcryptCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &model.User{
		Name:         *name,
		Email:        *email,
		PasswordHash: string(hashed),
	}
	switch err := userRepo.Create(ctx, user); {
	case err == nil:
		log.Printf("Created demo user %s", user.Email)
	case errors.Is(err, apperrors.ErrEmailTaken):
		existing, findErr := userRepo.FindByEmail(ctx, *email)
		if findErr != nil {
			log.Fatalf("Failed to load existing demo user: %v", findErr)
		}
		user = existing
		log.Printf("Demo user %s already exists, reusing it", user.Email)
	default:
		log.Fatalf("Failed to create demo user: %v", err)
	}

	seeded := 0
	for _, sample := range sampleNotes {
		note := &model.Note{
			Title:   sample.title,
			Subject: sample.subject,
			UserID:  user.ID,
		}
		if err := noteRepo.Create(ctx, note); err != nil {
			log.Fatalf("Failed to seed note %q: %v", sample.title, err)
		}
		seeded++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Demo user: %s (password: %s)", user.Email, *password)
	log.Printf("  - Notes created: %d", seeded)
}

package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"forum-api/config"
	"forum-api/pkg/helpers"
)

// Seeds a demo user, a course and a topic for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hasher := helpers.NewHasher(cfg.BcryptCost)
	hash, err := hasher.Hash("password123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID int64
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET updated_at = now()
		RETURNING id
	`, "demoUser", "demo@example.com", hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d username=demoUser password=password123\n", userID)

	var courseID int64
	err = db.QueryRow(`
		INSERT INTO courses (name, description)
		VALUES ($1, $2)
		ON CONFLICT (lower(name)) DO UPDATE SET description = EXCLUDED.description
		RETURNING id
	`, "Go Basics", "Curso de Go Basics").Scan(&courseID)
	if err != nil {
		log.Fatalf("failed to seed course: %v", err)
	}
	fmt.Printf("seeded course: id=%d name=Go Basics\n", courseID)

	var topicID int64
	err = db.QueryRow(`
		INSERT INTO topics (title, message, author_id, course_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, "Welcome to the forum", "Introduce yourself and tell us what you are learning.", userID, courseID).Scan(&topicID)
	if err != nil {
		log.Fatalf("failed to seed topic: %v", err)
	}
	fmt.Printf("seeded topic: id=%d\n", topicID)
}

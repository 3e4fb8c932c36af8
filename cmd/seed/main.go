package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/libhub/library-api/config"
	"github.com/libhub/library-api/pkg/helpers"
)

// seed fills a local database with a demo admin, a couple of categories,
// and a few books so the API has something to serve out of the box.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "demoAdmin"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID int64
	err = db.QueryRow(`
		INSERT INTO users (username, email, first_name, last_name, role, gender, password_hash, is_staff)
		VALUES ($1, $2, 'Demo', 'Admin', 'admin', 'male', $3, true)
		ON CONFLICT (username) DO UPDATE SET email = EXCLUDED.email
		RETURNING id
	`, username, "demo.admin@library.local", hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%d username=%s password=%s\n", userID, username, password)

	var authorID, publisherID int64
	err = db.QueryRow(`SELECT id FROM authors WHERE first_name = 'Stephen' AND last_name = 'King'`).Scan(&authorID)
	if err == sql.ErrNoRows {
		err = db.QueryRow(`INSERT INTO authors (first_name, last_name) VALUES ('Stephen', 'King') RETURNING id`).Scan(&authorID)
	}
	if err != nil {
		log.Fatalf("failed to seed author: %v", err)
	}
	if err := db.QueryRow(`
		INSERT INTO publishers (name)
		VALUES ('Penguin Books')
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`).Scan(&publisherID); err != nil {
		log.Fatalf("failed to seed publisher: %v", err)
	}

	categories := []struct{ name, description string }{
		{"Horror", "Scary stories"},
		{"Science Fiction", "Futures near and far"},
	}
	categoryIDs := make([]int64, 0, len(categories))
	for _, c := range categories {
		var id int64
		if err := db.QueryRow(`
			INSERT INTO categories (name_category, description)
			VALUES ($1, $2)
			ON CONFLICT (name_category) DO UPDATE SET description = EXCLUDED.description
			RETURNING id
		`, c.name, c.description).Scan(&id); err != nil {
			log.Fatalf("failed to seed category %s: %v", c.name, err)
		}
		categoryIDs = append(categoryIDs, id)
	}
	fmt.Printf("categories ensured: %v\n", categoryIDs)

	books := []struct {
		title string
		price float64
		pages int
	}{
		{"The Shining", 12.50, 447},
		{"Misery", 9.99, 310},
	}
	for _, b := range books {
		if _, err := db.Exec(`
			INSERT INTO books (title, description, price, page_count, publisher_id, author_id, category_id)
			SELECT $1, '', $2, $3, $4, $5, $6
			WHERE NOT EXISTS (SELECT 1 FROM books WHERE title = $1)
		`, b.title, b.price, b.pages, publisherID, authorID, categoryIDs[0]); err != nil {
			log.Fatalf("failed to seed book %s: %v", b.title, err)
		}
	}
	fmt.Println("books ensured")

	// One post so the admin shows up in the aggregated user listing
	if _, err := db.Exec(`
		INSERT INTO posts (user_id, title, body)
		SELECT $1, 'Welcome', 'First post'
		WHERE NOT EXISTS (SELECT 1 FROM posts WHERE user_id = $1)
	`, userID); err != nil {
		log.Fatalf("failed to seed post: %v", err)
	}
	if _, err := db.Exec(`
		INSERT INTO reviews (user_id, rating, description)
		SELECT $1, 5, 'Great library'
		WHERE NOT EXISTS (SELECT 1 FROM reviews WHERE user_id = $1)
	`, userID); err != nil {
		log.Fatalf("failed to seed review: %v", err)
	}
	fmt.Println("post and review ensured for seeded admin")
}

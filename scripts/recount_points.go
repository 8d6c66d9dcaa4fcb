package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Rebuilds every user's point total from the finished matches on record.
// Safe to run while the service is down; intended for recovery after manual
// database surgery.
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}
	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}
	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		dbUser = "postgres"
	}
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "match_typer"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	result, err := db.Exec(`
		UPDATE users SET points = (
			SELECT COUNT(*)
			FROM predictions p
			JOIN matches m ON m.id = p.match_id
			WHERE p.user_id = users.id
			  AND m.status = 'FINISHED'
			  AND m.result IS NOT NULL
			  AND p.bet_value = m.result
		)`)
	if err != nil {
		log.Fatal("Failed to recount points:", err)
	}

	rows, _ := result.RowsAffected()
	log.Printf("Recounted points for %d users", rows)
}

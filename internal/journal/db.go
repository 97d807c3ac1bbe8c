package journal

import (
	"database/sql"
	"fmt"
	"log"

	"tillpoint/internal/config"

	_ "github.com/lib/pq"
)

// Open connects to the terminal's local journal database.
func Open(cfg *config.Config) *sql.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to journal DB: %v", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatalf("Failed to ping journal DB: %v", err)
	}

	log.Println("Journal database connection established")
	return db
}

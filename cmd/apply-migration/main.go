package main

import (
	"fmt"
	"log"
	"os"

	"travia-admin/internal/config"
	"travia-admin/internal/database"
)

// Applies one migration file to the configured database. The file is
// executed as a single script so that dollar-quoted function bodies
// survive (splitting on semicolons would break the notify trigger).
func main() {
	if len(os.Args) < 2 {
		log.Fatalf("Usage: %s <migration_file.sql>", os.Args[0])
	}

	sqlContent, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read migration file: %v", err)
	}

	cfg := config.Load()
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}
	defer db.Close()

	fmt.Printf("Connected to database: %s\n", cfg.Database.Database)

	if _, err := db.Exec(string(sqlContent)); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	fmt.Println("Migration completed successfully")
}

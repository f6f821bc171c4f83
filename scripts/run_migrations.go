package main

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/lib/pq"
	"github.com/nicheclub/storefront/internal/config"
	"github.com/nicheclub/storefront/internal/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/run_migrations.go [up|down]")
	}

	direction := os.Args[1]
	if direction != "up" && direction != "down" {
		log.Fatal("Direction must be 'up' or 'down'")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Ping database: %v", err)
	}

	switch direction {
	case "up":
		err = database.RunMigrations(db, "migrations")
	case "down":
		err = database.RollbackMigrations(db, "migrations")
	}
	if err != nil {
		log.Fatalf("Migrate %s: %v", direction, err)
	}

	log.Printf("Migrations %s completed", direction)
}

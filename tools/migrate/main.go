package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/orgball2608/reels-client/internal/migrations"
	"github.com/orgball2608/reels-client/pkg/config"
	"github.com/pressly/goose/v3"
)

// sourceDir is where new Go migrations are written by "create".
const sourceDir = "internal/migrations"

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|status|reset|create <name>]")
	}

	command := os.Args[1]

	// create only writes a file
	if command == "create" {
		if len(os.Args) < 3 {
			log.Fatal("Usage: migrate create <name>")
		}
		createMigration(os.Args[2])
		return
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := migrations.Open(cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	switch command {
	case "up":
		if err := goose.UpContext(ctx, db, migrations.Dir); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		if err := goose.DownContext(ctx, db, migrations.Dir); err != nil {
			log.Fatalf("Failed to rollback migration: %v", err)
		}
		fmt.Println("Migration rollback successful")
	case "status":
		if err := goose.StatusContext(ctx, db, migrations.Dir); err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
	case "reset":
		if err := goose.ResetContext(ctx, db, migrations.Dir); err != nil {
			log.Fatalf("Failed to reset migrations: %v", err)
		}
		fmt.Println("All migrations have been rolled back")
	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func createMigration(name string) {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("Failed to get working directory: %v", err)
	}

	dir := filepath.Join(wd, sourceDir)
	fmt.Printf("Creating migration in: %s\n", dir)

	if err := goose.Create(nil, dir, name, "go"); err != nil {
		log.Fatalf("Failed to create migration: %v", err)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"horeca-board/pkg/config"
	"horeca-board/pkg/logger"
	"horeca-board/pkg/migrations"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

func main() {
	var (
		dir     = flag.String("dir", "migrations", "directory with migration files")
		command = flag.String("command", "up", "migration command (up, down, status, create, apply, print)")
		name    = flag.String("name", "", "name for new migration (used with create command)")
	)
	flag.Parse()

	// print needs no database
	if *command == "print" {
		files, err := migrations.LoadDir(*dir)
		if err != nil {
			log.Fatalf("Failed to load migrations: %v", err)
		}
		if err := migrations.Print(os.Stdout, files); err != nil {
			log.Fatalf("Failed to print migrations: %v", err)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DBHost == "" || cfg.DBName == "" {
		log.Fatal("DB_HOST and DB_NAME must be set")
	}

	db, err := sqlx.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set dialect: %v", err)
	}

	switch *command {
	case "create":
		if *name == "" {
			log.Fatal("Name is required for create command")
		}
		if err := goose.Create(db.DB, *dir, *name, "sql"); err != nil {
			log.Fatalf("Failed to create migration: %v", err)
		}
		fmt.Printf("Created migration: %s\n", *name)
	case "up":
		if err := goose.Up(db.DB, *dir); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		if err := goose.Down(db.DB, *dir); err != nil {
			log.Fatalf("Failed to rollback migrations: %v", err)
		}
		fmt.Println("Migrations rolled back successfully")
	case "status":
		if err := goose.Status(db.DB, *dir); err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
	case "apply":
		files, err := migrations.LoadDir(*dir)
		if err != nil {
			log.Fatalf("Failed to load migrations: %v", err)
		}
		runner := migrations.NewRunner(db, logger.NewWithLevel(cfg.LogLevel))
		applied, err := runner.Apply(context.Background(), files)
		if err != nil {
			log.Fatalf("Applied %d of %d files: %v", len(applied), len(files), err)
		}
		fmt.Printf("Applied %d migration files\n", len(applied))
	default:
		log.Fatalf("Unknown command: %s", *command)
	}
}

package main

import (
	"database/sql"
	"flag"
	"log"

	"backoffice-system/migrations"
	"backoffice-system/pkg/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	command := flag.String("command", "up", "goose command: up, down, status")
	flag.Parse()

	cfg := config.New()

	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	switch *command {
	case "up":
		err = goose.Up(db, ".")
	case "down":
		err = goose.Down(db, ".")
	case "status":
		err = goose.Status(db, ".")
	default:
		log.Fatalf("unknown command %q", *command)
	}
	if err != nil {
		log.Fatalf("migration %s failed: %v", *command, err)
	}
	log.Printf("migration %s completed", *command)
}

package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDictionaries fills the reference tables required before first login:
// the fixed role catalogue and the cost centre directory.
func SeedDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("seeding dictionaries...")

	if err := seedRoles(ctx, db); err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}
	if err := seedCostCentres(ctx, db); err != nil {
		log.Fatalf("failed to seed cost centres: %v", err)
	}
	log.Println("dictionaries seeded")
}

// SeedAdmin creates or refreshes the administrator account.
func SeedAdmin(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("seeding admin user...")

	if err := seedAdminUser(ctx, db); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	log.Println("admin user seeded")
}

package seeders

import (
	"context"
	"log"
	"os"

	"backoffice-system/internal/workflow"
	"backoffice-system/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedAdminUser(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - seeding admin user...")

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@backoffice.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Println("    ADMIN_PASSWORD not set, using the default development password")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (name, email, password, role_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET password = EXCLUDED.password, role_id = EXCLUDED.role_id`

	_, err = db.Exec(ctx, query, "Administrator", email, hash, workflow.RoleAdmin)
	return err
}

package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedRoles(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - seeding 'roles'...")

	query := `INSERT INTO roles (id, name, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, r := range rolesData {
		if _, err := tx.Exec(ctx, query, r.ID, r.Name, r.Description); err != nil {
			return err
		}
	}

	// keep the sequence ahead of the fixed ids
	if _, err := tx.Exec(ctx, `SELECT setval('roles_id_seq', (SELECT MAX(id) FROM roles))`); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

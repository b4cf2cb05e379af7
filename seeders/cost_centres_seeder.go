package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedCostCentres(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - seeding 'cost_centres'...")

	query := `INSERT INTO cost_centres (cc_no, name, state)
		VALUES ($1, $2, $3)
		ON CONFLICT (cc_no) DO UPDATE SET name = EXCLUDED.name, state = EXCLUDED.state`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, cc := range costCentresData {
		if _, err := tx.Exec(ctx, query, cc.CCNo, cc.Name, cc.State); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

package migrations

import (
	"context"
	"encoding/json"

	"github.com/uptrace/bun"
	"quantum-shift/internal/domain"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			bank := domain.DefaultBank()
			data, err := json.Marshal(bank)
			if err != nil {
				return err
			}
			_, err = db.ExecContext(ctx,
				`INSERT INTO question_banks (id, data) VALUES (?, ?::jsonb) ON CONFLICT (id) DO NOTHING`,
				bank.ID, string(data))
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DELETE FROM question_banks WHERE id = ?`, domain.DefaultBankID)
			return err
		},
	)
}

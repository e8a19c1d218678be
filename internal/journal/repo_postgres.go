package journal

import (
	"context"
	"database/sql"

	"collections-center/pkg/utils"
)

// PostgresRepo persists journal entries when a database is configured.
//
// Expected table:
//
//	CREATE TABLE journal_entries (
//	  id         TEXT PRIMARY KEY,
//	  type       TEXT NOT NULL,
//	  ref        TEXT NOT NULL,
//	  amount     NUMERIC NOT NULL DEFAULT 0,
//	  detail     JSONB,
//	  created_at TIMESTAMPTZ NOT NULL
//	);
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Append(ctx context.Context, e Entry) error {
	return utils.WithTx(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
INSERT INTO journal_entries (id, type, ref, amount, detail, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`
		_, err := tx.ExecContext(ctx, q, e.ID, e.Type, e.Ref, e.Amount, nullIfEmpty(e.Detail), e.CreatedAt)
		return err
	})
}

func (r *PostgresRepo) List(ctx context.Context, typ EntryType) ([]Entry, error) {
	const q = `
SELECT id, type, ref, amount, COALESCE(detail::text, ''), created_at
FROM journal_entries
WHERE ($1 = '' OR type = $1)
ORDER BY created_at
`
	rows, err := r.db.QueryContext(ctx, q, string(typ))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Type, &e.Ref, &e.Amount, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

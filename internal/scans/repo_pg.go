package scans

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a completed scan row. An empty user ID persists as NULL so
// anonymous scans keep the foreign key unset.
func (r *PGRepo) Create(ctx context.Context, scan Scan) error {
	const query = `
INSERT INTO scans (
	id, user_id, image_url, disease_name, confidence, affected_area_estimate,
	treatment_tips, prevention_tips, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		scan.ID,
		nullableString(scan.UserID),
		scan.ImageURL,
		scan.Analysis.Disease,
		scan.Analysis.Confidence,
		scan.Analysis.AffectedArea,
		scan.Analysis.Treatment,
		scan.Analysis.Prevention,
		scan.CreatedAt,
	)
	return err
}

// ListByUser returns a user's scans ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Scan, error) {
	const query = `
SELECT id, user_id, image_url, disease_name, confidence, affected_area_estimate,
       treatment_tips, prevention_tips, created_at
FROM scans
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Scan
	for rows.Next() {
		var s Scan
		var uid sql.NullString
		if err := rows.Scan(
			&s.ID,
			&uid,
			&s.ImageURL,
			&s.Analysis.Disease,
			&s.Analysis.Confidence,
			&s.Analysis.AffectedArea,
			&s.Analysis.Treatment,
			&s.Analysis.Prevention,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		s.UserID = uid.String
		out = append(out, s)
	}
	return out, rows.Err()
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ Repo = (*PGRepo)(nil)

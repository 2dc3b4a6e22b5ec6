package chat

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a chat entry. An empty user ID persists as NULL.
func (r *PGRepo) Create(ctx context.Context, entry Entry) error {
	const query = `
INSERT INTO ai_chats (id, user_id, user_message, ai_response, created_at)
VALUES ($1, $2, $3, $4, $5)`
	var userID any
	if entry.UserID != "" {
		userID = entry.UserID
	}
	_, err := r.DB.ExecContext(ctx, query,
		entry.ID,
		userID,
		entry.Message,
		entry.Response,
		entry.CreatedAt,
	)
	return err
}

var _ Repo = (*PGRepo)(nil)

package chat

import (
	"context"
	"time"
)

// Entry is one persisted question and answer pair.
type Entry struct {
	ID        string
	UserID    string
	Message   string
	Response  string
	CreatedAt time.Time
}

// Repo persists chat entries.
type Repo interface {
	Create(ctx context.Context, entry Entry) error
}

package weather

import "context"

// Repo persists weather lookups.
type Repo interface {
	Create(ctx context.Context, log Log) error
}

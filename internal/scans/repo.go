package scans

import "context"

// Repo persists completed scans.
type Repo interface {
	Create(ctx context.Context, scan Scan) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Scan, error)
}

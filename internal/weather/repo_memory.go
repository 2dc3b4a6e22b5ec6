package weather

import (
	"context"
	"sync"
)

// MemoryRepo stores weather logs in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.Mutex
	logs []Log
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create stores the log.
func (r *MemoryRepo) Create(ctx context.Context, log Log) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, log)
	return nil
}

// All returns a copy of every stored log.
func (r *MemoryRepo) All() []Log {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Log(nil), r.logs...)
}

var _ Repo = (*MemoryRepo)(nil)

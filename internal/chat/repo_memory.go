package chat

import (
	"context"
	"sync"
)

// MemoryRepo stores chat entries in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create stores the entry.
func (r *MemoryRepo) Create(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

// All returns a copy of every stored entry.
func (r *MemoryRepo) All() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

var _ Repo = (*MemoryRepo)(nil)

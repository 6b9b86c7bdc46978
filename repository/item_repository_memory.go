package repository

import (
	"context"
	"sync"

	"recycle-sorter/domain"
)

// ItemRepositoryMemory is an in-memory implementation of ItemRepository.
// Entries are kept in insertion order and are lost on restart.
type ItemRepositoryMemory struct {
	mu   sync.RWMutex
	data []domain.ListEntry
}

// NewItemRepositoryMemory creates an empty in-memory item list.
func NewItemRepositoryMemory() *ItemRepositoryMemory {
	return &ItemRepositoryMemory{
		data: []domain.ListEntry{},
	}
}

// Append adds the entry at the end of the list.
func (r *ItemRepositoryMemory) Append(
	ctx context.Context,
	entry domain.ListEntry,
) (domain.ListEntry, error) {
	if err := ctx.Err(); err != nil {
		return domain.ListEntry{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry.Position = len(r.data) + 1
	r.data = append(r.data, entry)
	return entry, nil
}

// List returns a copy of all entries, oldest first.
func (r *ItemRepositoryMemory) List(ctx context.Context) ([]domain.ListEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ListEntry, len(r.data))
	copy(out, r.data)
	return out, nil
}

// Reset empties the list.
func (r *ItemRepositoryMemory) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.data = []domain.ListEntry{}
	r.mu.Unlock()
	return nil
}

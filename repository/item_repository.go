package repository

import (
	"context"

	"recycle-sorter/domain"
)

type ItemRepository interface {
	// Append stores entry at the end of the list and returns it with its
	// Position filled in.
	Append(ctx context.Context, entry domain.ListEntry) (domain.ListEntry, error)
	List(ctx context.Context) ([]domain.ListEntry, error)
	Reset(ctx context.Context) error
}

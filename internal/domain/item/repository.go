package item

import (
	"context"

	"chatstore/internal/domain/query"
)

// Repository exposes tenant-scoped persistence for thread items. Items are
// keyed by (id, owner); thread_id is a projected column every read filters on.
type Repository interface {
	// Load returns the item for (threadID, itemID, owner) or not-found.
	Load(ctx context.Context, threadID, itemID, ownerID string) (*Item, error)
	// Save upserts the item under the given thread, last write wins.
	Save(ctx context.Context, threadID string, it *Item, ownerID string) error
	// Delete removes a single item.
	Delete(ctx context.Context, threadID, itemID, ownerID string) error
	// List returns one page of the thread's items ordered by created_at.
	List(ctx context.Context, threadID, ownerID string, p query.Pagination) (query.Page[*Item], error)
}

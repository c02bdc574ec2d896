package thread

import (
	"context"

	"chatstore/internal/domain/query"
)

// Repository exposes tenant-scoped persistence for threads. Every operation
// takes the already-resolved owner identifier; an entity under a different
// owner is reported as not found.
type Repository interface {
	// Load returns the thread for (id, owner) or a not-found error.
	Load(ctx context.Context, id, ownerID string) (*Thread, error)
	// Save upserts the thread keyed by (id, owner). On conflict the payload
	// and created_at are overwritten, last write wins.
	Save(ctx context.Context, t *Thread, ownerID string) error
	// Delete removes the thread and all of its items for the owner.
	Delete(ctx context.Context, id, ownerID string) error
	// List returns one page of the owner's threads ordered by created_at.
	List(ctx context.Context, ownerID string, p query.Pagination) (query.Page[*Thread], error)
}

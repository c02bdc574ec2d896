package attachment

import "context"

// Repository exposes tenant-scoped persistence for attachments. No listing is
// offered; attachments are always addressed by id.
type Repository interface {
	Load(ctx context.Context, id, ownerID string) (*Attachment, error)
	Save(ctx context.Context, a *Attachment, ownerID string) error
	Delete(ctx context.Context, id, ownerID string) error
}

package handlers

import (
	"context"

	domain "chatstore/internal/domain/attachment"
)

// AttachmentHandler invokes domain logic for attachment use cases.
type AttachmentHandler struct {
	service domain.Service
}

// NewAttachmentHandler wires dependencies for attachment routes.
func NewAttachmentHandler(service domain.Service) *AttachmentHandler {
	return &AttachmentHandler{
		service: service,
	}
}

// Get loads attachment metadata for the owner.
func (h *AttachmentHandler) Get(ctx context.Context, id, ownerID string) (*domain.Attachment, error) {
	return h.service.Get(ctx, id, ownerID)
}

// Put upserts attachment metadata for the owner.
func (h *AttachmentHandler) Put(ctx context.Context, a *domain.Attachment, ownerID string) error {
	return h.service.Put(ctx, a, ownerID)
}

// Delete removes attachment metadata for the owner.
func (h *AttachmentHandler) Delete(ctx context.Context, id, ownerID string) error {
	return h.service.Delete(ctx, id, ownerID)
}

package handlers

import (
	"context"

	domain "chatstore/internal/domain/thread"
	"chatstore/internal/domain/query"
)

// ThreadHandler invokes domain logic for thread use cases.
type ThreadHandler struct {
	service domain.Service
}

// NewThreadHandler wires dependencies for thread routes.
func NewThreadHandler(service domain.Service) *ThreadHandler {
	return &ThreadHandler{
		service: service,
	}
}

// Get loads a single thread for the owner.
func (h *ThreadHandler) Get(ctx context.Context, id, ownerID string) (*domain.Thread, error) {
	return h.service.Get(ctx, id, ownerID)
}

// Put upserts a thread for the owner.
func (h *ThreadHandler) Put(ctx context.Context, t *domain.Thread, ownerID string) error {
	return h.service.Put(ctx, t, ownerID)
}

// Delete removes a thread and its items for the owner.
func (h *ThreadHandler) Delete(ctx context.Context, id, ownerID string) error {
	return h.service.Delete(ctx, id, ownerID)
}

// List pages through the owner's threads.
func (h *ThreadHandler) List(ctx context.Context, ownerID string, p query.Pagination) (query.Page[*domain.Thread], error) {
	return h.service.List(ctx, ownerID, p)
}

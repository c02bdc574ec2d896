package handlers

import (
	"context"

	domain "chatstore/internal/domain/item"
	"chatstore/internal/domain/query"
)

// ItemHandler invokes domain logic for thread item use cases.
type ItemHandler struct {
	service domain.Service
}

// NewItemHandler wires dependencies for item routes.
func NewItemHandler(service domain.Service) *ItemHandler {
	return &ItemHandler{
		service: service,
	}
}

// Get loads a single item within a thread for the owner.
func (h *ItemHandler) Get(ctx context.Context, threadID, itemID, ownerID string) (*domain.Item, error) {
	return h.service.Get(ctx, threadID, itemID, ownerID)
}

// Put upserts an item under the given thread for the owner.
func (h *ItemHandler) Put(ctx context.Context, threadID string, it *domain.Item, ownerID string) error {
	return h.service.Put(ctx, threadID, it, ownerID)
}

// Delete removes an item for the owner.
func (h *ItemHandler) Delete(ctx context.Context, threadID, itemID, ownerID string) error {
	return h.service.Delete(ctx, threadID, itemID, ownerID)
}

// List pages through a thread's items.
func (h *ItemHandler) List(ctx context.Context, threadID, ownerID string, p query.Pagination) (query.Page[*domain.Item], error) {
	return h.service.List(ctx, threadID, ownerID, p)
}

package handlers

import (
	attachmentdomain "chatstore/internal/domain/attachment"
	itemdomain "chatstore/internal/domain/item"
	threaddomain "chatstore/internal/domain/thread"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Thread     *ThreadHandler
	Item       *ItemHandler
	Attachment *AttachmentHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	threadService threaddomain.Service,
	itemService itemdomain.Service,
	attachmentService attachmentdomain.Service,
) *Provider {
	return &Provider{
		Thread:     NewThreadHandler(threadService),
		Item:       NewItemHandler(itemService),
		Attachment: NewAttachmentHandler(attachmentService),
	}
}

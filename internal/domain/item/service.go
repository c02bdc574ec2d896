package item

import (
	"context"

	"github.com/rs/zerolog"

	"chatstore/internal/domain/query"
)

// Service describes the business logic surface for item operations.
type Service interface {
	Get(ctx context.Context, threadID, itemID, ownerID string) (*Item, error)
	Put(ctx context.Context, threadID string, it *Item, ownerID string) error
	Delete(ctx context.Context, threadID, itemID, ownerID string) error
	List(ctx context.Context, threadID, ownerID string, p query.Pagination) (query.Page[*Item], error)
}

type service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService wires the item service with its repository.
func NewService(repo Repository, log zerolog.Logger) Service {
	return &service{
		repo: repo,
		log:  log.With().Str("component", "item-service").Logger(),
	}
}

func (s *service) Get(ctx context.Context, threadID, itemID, ownerID string) (*Item, error) {
	return s.repo.Load(ctx, threadID, itemID, ownerID)
}

func (s *service) Put(ctx context.Context, threadID string, it *Item, ownerID string) error {
	if err := s.repo.Save(ctx, threadID, it, ownerID); err != nil {
		event := s.log.Error().Err(err).Str("thread_id", threadID)
		if it != nil {
			event = event.Str("item_id", it.ID)
		}
		event.Msg("save item")
		return err
	}
	return nil
}

func (s *service) Delete(ctx context.Context, threadID, itemID, ownerID string) error {
	if err := s.repo.Delete(ctx, threadID, itemID, ownerID); err != nil {
		s.log.Error().Err(err).Str("thread_id", threadID).Str("item_id", itemID).Msg("delete item")
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context, threadID, ownerID string, p query.Pagination) (query.Page[*Item], error) {
	return s.repo.List(ctx, threadID, ownerID, p)
}

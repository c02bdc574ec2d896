package thread

import (
	"context"

	"github.com/rs/zerolog"

	"chatstore/internal/domain/query"
)

// Service describes the business logic surface for thread operations.
type Service interface {
	Get(ctx context.Context, id, ownerID string) (*Thread, error)
	Put(ctx context.Context, t *Thread, ownerID string) error
	Delete(ctx context.Context, id, ownerID string) error
	List(ctx context.Context, ownerID string, p query.Pagination) (query.Page[*Thread], error)
}

type service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService wires the thread service with its repository.
func NewService(repo Repository, log zerolog.Logger) Service {
	return &service{
		repo: repo,
		log:  log.With().Str("component", "thread-service").Logger(),
	}
}

func (s *service) Get(ctx context.Context, id, ownerID string) (*Thread, error) {
	return s.repo.Load(ctx, id, ownerID)
}

func (s *service) Put(ctx context.Context, t *Thread, ownerID string) error {
	if err := s.repo.Save(ctx, t, ownerID); err != nil {
		event := s.log.Error().Err(err)
		if t != nil {
			event = event.Str("thread_id", t.ID)
		}
		event.Msg("save thread")
		return err
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		s.log.Error().Err(err).Str("thread_id", id).Msg("delete thread")
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context, ownerID string, p query.Pagination) (query.Page[*Thread], error) {
	return s.repo.List(ctx, ownerID, p)
}

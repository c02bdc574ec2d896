package attachment

import (
	"context"

	"github.com/rs/zerolog"
)

// Service describes the business logic surface for attachment operations.
type Service interface {
	Get(ctx context.Context, id, ownerID string) (*Attachment, error)
	Put(ctx context.Context, a *Attachment, ownerID string) error
	Delete(ctx context.Context, id, ownerID string) error
}

type service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService wires the attachment service with its repository.
func NewService(repo Repository, log zerolog.Logger) Service {
	return &service{
		repo: repo,
		log:  log.With().Str("component", "attachment-service").Logger(),
	}
}

func (s *service) Get(ctx context.Context, id, ownerID string) (*Attachment, error) {
	return s.repo.Load(ctx, id, ownerID)
}

func (s *service) Put(ctx context.Context, a *Attachment, ownerID string) error {
	if err := s.repo.Save(ctx, a, ownerID); err != nil {
		event := s.log.Error().Err(err)
		if a != nil {
			event = event.Str("attachment_id", a.ID)
		}
		event.Msg("save attachment")
		return err
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		s.log.Error().Err(err).Str("attachment_id", id).Msg("delete attachment")
		return err
	}
	return nil
}

package attachment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "chatstore/internal/domain/attachment"
	"chatstore/internal/infrastructure/database/entities"
	"chatstore/internal/infrastructure/metrics"
	"chatstore/internal/utils/platformerrors"
)

// Repository persists attachments in Postgres.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds an attachment repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ domain.Repository = (*Repository)(nil)

// Load fetches an attachment scoped to its owner.
func (r *Repository) Load(ctx context.Context, id, ownerID string) (*domain.Attachment, error) {
	start := time.Now()
	var entity entities.Attachment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordStoreOperation("attachment", "load", "not_found", time.Since(start).Seconds())
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("attachment not found: %s", id),
				nil,
			)
		}
		metrics.RecordStoreOperation("attachment", "load", "error", time.Since(start).Seconds())
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch attachment",
			err,
		)
	}

	metrics.RecordStoreOperation("attachment", "load", "ok", time.Since(start).Seconds())
	return entity.EtoD(), nil
}

// Save upserts the attachment keyed by (id, owner_id).
func (r *Repository) Save(ctx context.Context, a *domain.Attachment, ownerID string) error {
	if err := validateAttachment(ctx, a, ownerID); err != nil {
		return err
	}

	start := time.Now()
	entity := entities.NewSchemaAttachment(a, ownerID)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}, {Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload"}),
		}).
		Create(entity).Error; err != nil {
		metrics.RecordStoreOperation("attachment", "save", "error", time.Since(start).Seconds())
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to save attachment",
			err,
		)
	}

	metrics.RecordStoreOperation("attachment", "save", "ok", time.Since(start).Seconds())
	return nil
}

// Delete removes an attachment record. Deleting an absent attachment is a
// no-op. Only the metadata row is removed; the blob it points at lives in
// external storage.
func (r *Repository) Delete(ctx context.Context, id, ownerID string) error {
	start := time.Now()
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&entities.Attachment{}).Error; err != nil {
		metrics.RecordStoreOperation("attachment", "delete", "error", time.Since(start).Seconds())
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete attachment",
			err,
		)
	}

	metrics.RecordStoreOperation("attachment", "delete", "ok", time.Since(start).Seconds())
	return nil
}

func validateAttachment(ctx context.Context, a *domain.Attachment, ownerID string) error {
	switch {
	case a == nil || a.ID == "":
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeValidation,
			"attachment id is required",
			nil,
		)
	case ownerID == "":
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeValidation,
			"owner id is required",
			nil,
		)
	case !json.Valid(a.Payload):
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeValidation,
			"attachment payload must be valid JSON",
			nil,
		)
	}
	return nil
}

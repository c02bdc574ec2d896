package item

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "chatstore/internal/domain/item"
	"chatstore/internal/domain/query"
	"chatstore/internal/infrastructure/database/entities"
	"chatstore/internal/infrastructure/metrics"
	"chatstore/internal/utils/platformerrors"
)

// Repository persists thread items in Postgres.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds an item repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ domain.Repository = (*Repository)(nil)

// Load fetches a single item. The thread ID is part of the lookup so an
// item never resolves through another owner's thread.
func (r *Repository) Load(ctx context.Context, threadID, itemID, ownerID string) (*domain.Item, error) {
	start := time.Now()
	var entity entities.Item
	if err := r.db.WithContext(ctx).
		Where("id = ? AND thread_id = ? AND owner_id = ?", itemID, threadID, ownerID).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordStoreOperation("item", "load", "not_found", time.Since(start).Seconds())
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("item not found: %s", itemID),
				nil,
			)
		}
		metrics.RecordStoreOperation("item", "load", "error", time.Since(start).Seconds())
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch item",
			err,
		)
	}

	metrics.RecordStoreOperation("item", "load", "ok", time.Since(start).Seconds())
	return entity.EtoD(), nil
}

// Save upserts the item keyed by (id, owner_id), reassigning it to the given
// thread when the key already exists.
func (r *Repository) Save(ctx context.Context, threadID string, it *domain.Item, ownerID string) error {
	if err := validateItem(ctx, threadID, it, ownerID); err != nil {
		return err
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = time.Now().UTC()
	}

	start := time.Now()
	entity := entities.NewSchemaItem(it, threadID, ownerID)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}, {Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"thread_id", "created_at", "payload"}),
		}).
		Create(entity).Error; err != nil {
		metrics.RecordStoreOperation("item", "save", "error", time.Since(start).Seconds())
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to save item",
			err,
		)
	}

	metrics.RecordStoreOperation("item", "save", "ok", time.Since(start).Seconds())
	return nil
}

// Delete removes a single item. Deleting an absent item is a no-op.
func (r *Repository) Delete(ctx context.Context, threadID, itemID, ownerID string) error {
	start := time.Now()
	if err := r.db.WithContext(ctx).
		Where("id = ? AND thread_id = ? AND owner_id = ?", itemID, threadID, ownerID).
		Delete(&entities.Item{}).Error; err != nil {
		metrics.RecordStoreOperation("item", "delete", "error", time.Since(start).Seconds())
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete item",
			err,
		)
	}

	metrics.RecordStoreOperation("item", "delete", "ok", time.Since(start).Seconds())
	return nil
}

// List pages through a thread's items ordered by creation time with the item
// ID as tie-break. A cursor whose row no longer exists is rejected as
// invalid.
func (r *Repository) List(ctx context.Context, threadID, ownerID string, p query.Pagination) (query.Page[*domain.Item], error) {
	p = p.Normalize()

	start := time.Now()
	q := r.db.WithContext(ctx).
		Model(&entities.Item{}).
		Where("thread_id = ? AND owner_id = ?", threadID, ownerID)

	if p.After != "" {
		var cursor entities.Item
		if err := r.db.WithContext(ctx).
			Select("id", "created_at").
			Where("id = ? AND thread_id = ? AND owner_id = ?", p.After, threadID, ownerID).
			First(&cursor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return query.Page[*domain.Item]{}, platformerrors.NewError(
					ctx,
					platformerrors.LayerRepository,
					platformerrors.ErrorTypeValidation,
					fmt.Sprintf("unknown pagination cursor: %s", p.After),
					nil,
				)
			}
			return query.Page[*domain.Item]{}, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError,
				"failed to resolve pagination cursor",
				err,
			)
		}
		if p.Order == query.OrderDesc {
			q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			q = q.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	if p.Order == query.OrderDesc {
		q = q.Order("created_at DESC, id DESC")
	} else {
		q = q.Order("created_at ASC, id ASC")
	}

	var rows []entities.Item
	if err := q.Limit(p.Limit + 1).Find(&rows).Error; err != nil {
		metrics.RecordStoreOperation("item", "list", "error", time.Since(start).Seconds())
		return query.Page[*domain.Item]{}, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list items",
			err,
		)
	}

	items := make([]*domain.Item, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].EtoD())
	}

	metrics.RecordStoreOperation("item", "list", "ok", time.Since(start).Seconds())
	return query.BuildPage(items, p.Limit, func(it *domain.Item) string { return it.ID }), nil
}

func validateItem(ctx context.Context, threadID string, it *domain.Item, ownerID string) error {
	switch {
	case it == nil || it.ID == "":
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeValidation,
			"item id is required",
			nil,
		)
	case threadID == "":
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeValidation,
			"thread id is required",
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
	case !json.Valid(it.Payload):
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeValidation,
			"item payload must be valid JSON",
			nil,
		)
	}
	return nil
}

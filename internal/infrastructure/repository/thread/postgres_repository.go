package thread

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chatstore/internal/domain/query"
	domain "chatstore/internal/domain/thread"
	"chatstore/internal/infrastructure/database/entities"
	"chatstore/internal/infrastructure/metrics"
	"chatstore/internal/utils/platformerrors"
)

// Repository persists threads in Postgres.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a thread repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ domain.Repository = (*Repository)(nil)

// Load fetches a thread scoped to its owner. Rows belonging to other owners
// are reported as not found, never as forbidden.
func (r *Repository) Load(ctx context.Context, id, ownerID string) (*domain.Thread, error) {
	start := time.Now()
	var entity entities.Thread
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordStoreOperation("thread", "load", "not_found", time.Since(start).Seconds())
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("thread not found: %s", id),
				nil,
			)
		}
		metrics.RecordStoreOperation("thread", "load", "error", time.Since(start).Seconds())
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch thread",
			err,
		)
	}

	metrics.RecordStoreOperation("thread", "load", "ok", time.Since(start).Seconds())
	return entity.EtoD(), nil
}

// Save upserts the thread keyed by (id, owner_id). A second save with the
// same key replaces the payload and timestamp in place.
func (r *Repository) Save(ctx context.Context, t *domain.Thread, ownerID string) error {
	if err := validateThread(ctx, t, ownerID); err != nil {
		return err
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	start := time.Now()
	entity := entities.NewSchemaThread(t, ownerID)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}, {Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"created_at", "payload"}),
		}).
		Create(entity).Error; err != nil {
		metrics.RecordStoreOperation("thread", "save", "error", time.Since(start).Seconds())
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to save thread",
			err,
		)
	}

	metrics.RecordStoreOperation("thread", "save", "ok", time.Since(start).Seconds())
	return nil
}

// Delete removes the thread together with all of its items in one
// transaction. Deleting an absent thread is a no-op.
func (r *Repository) Delete(ctx context.Context, id, ownerID string) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("thread_id = ? AND owner_id = ?", id, ownerID).
			Delete(&entities.Item{}).Error; err != nil {
			return err
		}
		return tx.
			Where("id = ? AND owner_id = ?", id, ownerID).
			Delete(&entities.Thread{}).Error
	})
	if err != nil {
		metrics.RecordStoreOperation("thread", "delete", "error", time.Since(start).Seconds())
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete thread",
			err,
		)
	}

	metrics.RecordStoreOperation("thread", "delete", "ok", time.Since(start).Seconds())
	return nil
}

// List pages through an owner's threads ordered by creation time with the
// thread ID as tie-break. The cursor names the last thread of the previous
// page; listing resumes strictly after it. A cursor whose row no longer
// exists is rejected as invalid, so a delete between pages forces the caller
// to restart from the first page.
func (r *Repository) List(ctx context.Context, ownerID string, p query.Pagination) (query.Page[*domain.Thread], error) {
	p = p.Normalize()

	start := time.Now()
	q := r.db.WithContext(ctx).
		Model(&entities.Thread{}).
		Where("owner_id = ?", ownerID)

	if p.After != "" {
		var cursor entities.Thread
		if err := r.db.WithContext(ctx).
			Select("id", "created_at").
			Where("id = ? AND owner_id = ?", p.After, ownerID).
			First(&cursor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return query.Page[*domain.Thread]{}, platformerrors.NewError(
					ctx,
					platformerrors.LayerRepository,
					platformerrors.ErrorTypeValidation,
					fmt.Sprintf("unknown pagination cursor: %s", p.After),
					nil,
				)
			}
			return query.Page[*domain.Thread]{}, platformerrors.NewError(
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

	var rows []entities.Thread
	if err := q.Limit(p.Limit + 1).Find(&rows).Error; err != nil {
		metrics.RecordStoreOperation("thread", "list", "error", time.Since(start).Seconds())
		return query.Page[*domain.Thread]{}, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list threads",
			err,
		)
	}

	threads := make([]*domain.Thread, 0, len(rows))
	for i := range rows {
		threads = append(threads, rows[i].EtoD())
	}

	metrics.RecordStoreOperation("thread", "list", "ok", time.Since(start).Seconds())
	return query.BuildPage(threads, p.Limit, func(t *domain.Thread) string { return t.ID }), nil
}

func validateThread(ctx context.Context, t *domain.Thread, ownerID string) error {
	switch {
	case t == nil || t.ID == "":
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
	case !json.Valid(t.Payload):
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeValidation,
			"thread payload must be valid JSON",
			nil,
		)
	}
	return nil
}

package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	attachmentdomain "chatstore/internal/domain/attachment"
	itemdomain "chatstore/internal/domain/item"
	"chatstore/internal/domain/query"
	threaddomain "chatstore/internal/domain/thread"
	"chatstore/internal/utils/platformerrors"
)

// Store is a thread-safe in-memory backend implementing the same repository
// contracts as the Postgres implementations. Useful for demos and tests.
type Store struct {
	mu          sync.RWMutex
	threads     map[recordKey]threadRecord
	items       map[recordKey]itemRecord
	attachments map[recordKey]attachmentRecord
}

// recordKey scopes every record to its owner, mirroring the composite
// primary keys of the Postgres schema.
type recordKey struct {
	ownerID string
	id      string
}

type threadRecord struct {
	createdAt time.Time
	payload   json.RawMessage
}

type itemRecord struct {
	threadID  string
	createdAt time.Time
	payload   json.RawMessage
}

type attachmentRecord struct {
	payload json.RawMessage
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{
		threads:     make(map[recordKey]threadRecord),
		items:       make(map[recordKey]itemRecord),
		attachments: make(map[recordKey]attachmentRecord),
	}
}

// Threads exposes the thread repository view of the store.
func (s *Store) Threads() threaddomain.Repository { return threadRepo{s} }

// Items exposes the item repository view of the store.
func (s *Store) Items() itemdomain.Repository { return itemRepo{s} }

// Attachments exposes the attachment repository view of the store.
func (s *Store) Attachments() attachmentdomain.Repository { return attachmentRepo{s} }

type threadRepo struct{ s *Store }

var _ threaddomain.Repository = threadRepo{}

func (r threadRepo) Load(ctx context.Context, id, ownerID string) (*threaddomain.Thread, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.threads[recordKey{ownerID: ownerID, id: id}]
	if !ok {
		return nil, notFound(ctx, "thread", id)
	}
	return &threaddomain.Thread{
		ID:        id,
		CreatedAt: rec.createdAt,
		Payload:   clonePayload(rec.payload),
	}, nil
}

func (r threadRepo) Save(ctx context.Context, t *threaddomain.Thread, ownerID string) error {
	if t == nil || t.ID == "" || ownerID == "" {
		return invalid(ctx, "thread id and owner id are required")
	}
	if !json.Valid(t.Payload) {
		return invalid(ctx, "thread payload must be valid JSON")
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.threads[recordKey{ownerID: ownerID, id: t.ID}] = threadRecord{
		createdAt: t.CreatedAt,
		payload:   clonePayload(t.Payload),
	}
	return nil
}

func (r threadRepo) Delete(ctx context.Context, id, ownerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.threads, recordKey{ownerID: ownerID, id: id})
	for key, rec := range r.s.items {
		if key.ownerID == ownerID && rec.threadID == id {
			delete(r.s.items, key)
		}
	}
	return nil
}

func (r threadRepo) List(ctx context.Context, ownerID string, p query.Pagination) (query.Page[*threaddomain.Thread], error) {
	p = p.Normalize()

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]*threaddomain.Thread, 0)
	for key, rec := range r.s.threads {
		if key.ownerID != ownerID {
			continue
		}
		rows = append(rows, &threaddomain.Thread{
			ID:        key.id,
			CreatedAt: rec.createdAt,
			Payload:   clonePayload(rec.payload),
		})
	}

	rows, err := sliceAfter(ctx, rows, p,
		func(t *threaddomain.Thread) string { return t.ID },
		func(t *threaddomain.Thread) time.Time { return t.CreatedAt },
	)
	if err != nil {
		return query.Page[*threaddomain.Thread]{}, err
	}
	return query.BuildPage(rows, p.Limit, func(t *threaddomain.Thread) string { return t.ID }), nil
}

type itemRepo struct{ s *Store }

var _ itemdomain.Repository = itemRepo{}

func (r itemRepo) Load(ctx context.Context, threadID, itemID, ownerID string) (*itemdomain.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.items[recordKey{ownerID: ownerID, id: itemID}]
	if !ok || rec.threadID != threadID {
		return nil, notFound(ctx, "item", itemID)
	}
	return &itemdomain.Item{
		ID:        itemID,
		CreatedAt: rec.createdAt,
		Payload:   clonePayload(rec.payload),
	}, nil
}

func (r itemRepo) Save(ctx context.Context, threadID string, it *itemdomain.Item, ownerID string) error {
	if it == nil || it.ID == "" || threadID == "" || ownerID == "" {
		return invalid(ctx, "item id, thread id and owner id are required")
	}
	if !json.Valid(it.Payload) {
		return invalid(ctx, "item payload must be valid JSON")
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = time.Now().UTC()
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[recordKey{ownerID: ownerID, id: it.ID}] = itemRecord{
		threadID:  threadID,
		createdAt: it.CreatedAt,
		payload:   clonePayload(it.Payload),
	}
	return nil
}

func (r itemRepo) Delete(ctx context.Context, threadID, itemID, ownerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := recordKey{ownerID: ownerID, id: itemID}
	if rec, ok := r.s.items[key]; ok && rec.threadID == threadID {
		delete(r.s.items, key)
	}
	return nil
}

func (r itemRepo) List(ctx context.Context, threadID, ownerID string, p query.Pagination) (query.Page[*itemdomain.Item], error) {
	p = p.Normalize()

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]*itemdomain.Item, 0)
	for key, rec := range r.s.items {
		if key.ownerID != ownerID || rec.threadID != threadID {
			continue
		}
		rows = append(rows, &itemdomain.Item{
			ID:        key.id,
			CreatedAt: rec.createdAt,
			Payload:   clonePayload(rec.payload),
		})
	}

	rows, err := sliceAfter(ctx, rows, p,
		func(it *itemdomain.Item) string { return it.ID },
		func(it *itemdomain.Item) time.Time { return it.CreatedAt },
	)
	if err != nil {
		return query.Page[*itemdomain.Item]{}, err
	}
	return query.BuildPage(rows, p.Limit, func(it *itemdomain.Item) string { return it.ID }), nil
}

type attachmentRepo struct{ s *Store }

var _ attachmentdomain.Repository = attachmentRepo{}

func (r attachmentRepo) Load(ctx context.Context, id, ownerID string) (*attachmentdomain.Attachment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.attachments[recordKey{ownerID: ownerID, id: id}]
	if !ok {
		return nil, notFound(ctx, "attachment", id)
	}
	return &attachmentdomain.Attachment{
		ID:      id,
		Payload: clonePayload(rec.payload),
	}, nil
}

func (r attachmentRepo) Save(ctx context.Context, a *attachmentdomain.Attachment, ownerID string) error {
	if a == nil || a.ID == "" || ownerID == "" {
		return invalid(ctx, "attachment id and owner id are required")
	}
	if !json.Valid(a.Payload) {
		return invalid(ctx, "attachment payload must be valid JSON")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.attachments[recordKey{ownerID: ownerID, id: a.ID}] = attachmentRecord{
		payload: clonePayload(a.Payload),
	}
	return nil
}

func (r attachmentRepo) Delete(ctx context.Context, id, ownerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.attachments, recordKey{ownerID: ownerID, id: id})
	return nil
}

// sliceAfter sorts rows by (created_at, id) and drops everything up to and
// including the cursor row, matching the tuple predicate used by the
// Postgres listings.
func sliceAfter[T any](ctx context.Context, rows []T, p query.Pagination, id func(T) string, createdAt func(T) time.Time) ([]T, error) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !createdAt(a).Equal(createdAt(b)) {
			if p.Order == query.OrderDesc {
				return createdAt(a).After(createdAt(b))
			}
			return createdAt(a).Before(createdAt(b))
		}
		if p.Order == query.OrderDesc {
			return id(a) > id(b)
		}
		return id(a) < id(b)
	})

	if p.After == "" {
		return rows, nil
	}
	for i, row := range rows {
		if id(row) == p.After {
			return rows[i+1:], nil
		}
	}
	return nil, platformerrors.NewError(
		ctx,
		platformerrors.LayerRepository,
		platformerrors.ErrorTypeValidation,
		fmt.Sprintf("unknown pagination cursor: %s", p.After),
		nil,
	)
}

func clonePayload(p json.RawMessage) json.RawMessage {
	if p == nil {
		return nil
	}
	return append(json.RawMessage(nil), p...)
}

func notFound(ctx context.Context, kind, id string) error {
	return platformerrors.NewError(
		ctx,
		platformerrors.LayerRepository,
		platformerrors.ErrorTypeNotFound,
		fmt.Sprintf("%s not found: %s", kind, id),
		nil,
	)
}

func invalid(ctx context.Context, msg string) error {
	return platformerrors.NewError(
		ctx,
		platformerrors.LayerRepository,
		platformerrors.ErrorTypeValidation,
		msg,
		nil,
	)
}

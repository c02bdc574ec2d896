package memory_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"chatstore/internal/domain/attachment"
	"chatstore/internal/domain/item"
	"chatstore/internal/domain/query"
	"chatstore/internal/domain/thread"
	"chatstore/internal/infrastructure/repository/memory"
	"chatstore/internal/utils/platformerrors"
)

func seedThread(t *testing.T, s *memory.Store, id, ownerID string, createdAt time.Time) {
	t.Helper()
	err := s.Threads().Save(context.Background(), &thread.Thread{
		ID:        id,
		CreatedAt: createdAt,
		Payload:   json.RawMessage(`{"thread":{"id":"` + id + `"}}`),
	}, ownerID)
	if err != nil {
		t.Fatalf("seed thread %s: %v", id, err)
	}
}

func seedItem(t *testing.T, s *memory.Store, threadID, id, ownerID string, createdAt time.Time) {
	t.Helper()
	err := s.Items().Save(context.Background(), threadID, &item.Item{
		ID:        id,
		CreatedAt: createdAt,
		Payload:   json.RawMessage(`{"item":{"id":"` + id + `"}}`),
	}, ownerID)
	if err != nil {
		t.Fatalf("seed item %s: %v", id, err)
	}
}

func TestThreadSaveLoadRoundTrip(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	payload := json.RawMessage(`{"thread":{"id":"th_1","title":"hello"}}`)

	if err := s.Threads().Save(ctx, &thread.Thread{ID: "th_1", CreatedAt: created, Payload: payload}, "user-a"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Threads().Load(ctx, "th_1", "user-a")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.ID != "th_1" || !got.CreatedAt.Equal(created) {
		t.Errorf("Load() = %+v, want id th_1 at %v", got, created)
	}
	if string(got.Payload) != string(payload) {
		t.Errorf("Load() payload = %s, want %s", got.Payload, payload)
	}
}

func TestThreadSaveIsUpsert(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	seedThread(t, s, "th_1", "user-a", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	updated := json.RawMessage(`{"thread":{"id":"th_1","title":"renamed"}}`)
	if err := s.Threads().Save(ctx, &thread.Thread{
		ID:        "th_1",
		CreatedAt: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		Payload:   updated,
	}, "user-a"); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	got, err := s.Threads().Load(ctx, "th_1", "user-a")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(got.Payload) != string(updated) {
		t.Errorf("payload not replaced: got %s", got.Payload)
	}

	page, err := s.Threads().List(ctx, "user-a", query.Pagination{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Data) != 1 {
		t.Errorf("List() returned %d threads, want 1 after upsert", len(page.Data))
	}
}

func TestOwnerIsolation(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	seedThread(t, s, "th_1", "user-a", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	// Another owner's lookup and an absent row must fail identically.
	_, crossErr := s.Threads().Load(ctx, "th_1", "user-b")
	_, absentErr := s.Threads().Load(ctx, "th_missing", "user-a")

	for name, err := range map[string]error{"cross-owner": crossErr, "absent": absentErr} {
		if !platformerrors.IsNotFound(err) {
			t.Errorf("%s Load() error = %v, want not-found", name, err)
		}
	}
	if crossErr.Error() == "" || absentErr.Error() == "" {
		t.Fatal("expected error messages")
	}

	page, err := s.Threads().List(ctx, "user-b", query.Pagination{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Data) != 0 {
		t.Errorf("List() for user-b returned %d threads, want 0", len(page.Data))
	}

	// Same thread ID under a different owner is a separate record.
	seedThread(t, s, "th_1", "user-b", time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC))
	got, err := s.Threads().Load(ctx, "th_1", "user-a")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !got.CreatedAt.Equal(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("user-a record clobbered by user-b save: %v", got.CreatedAt)
	}
}

func TestItemListPagination(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedThread(t, s, "th_1", "user-a", base)
	seedItem(t, s, "th_1", "it_1", "user-a", base.Add(1*time.Minute))
	seedItem(t, s, "th_1", "it_2", "user-a", base.Add(2*time.Minute))
	seedItem(t, s, "th_1", "it_3", "user-a", base.Add(3*time.Minute))

	page, err := s.Items().List(ctx, "th_1", "user-a", query.Pagination{Limit: 2, Order: query.OrderAsc})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got := ids(page.Data); got != "it_1,it_2" {
		t.Errorf("first page = %s, want it_1,it_2", got)
	}
	if !page.HasMore || page.After != "it_2" {
		t.Errorf("first page HasMore=%v After=%q, want true and it_2", page.HasMore, page.After)
	}

	page, err = s.Items().List(ctx, "th_1", "user-a", query.Pagination{Limit: 2, After: page.After, Order: query.OrderAsc})
	if err != nil {
		t.Fatalf("List() second page error = %v", err)
	}
	if got := ids(page.Data); got != "it_3" {
		t.Errorf("second page = %s, want it_3", got)
	}
	if page.HasMore || page.After != "" {
		t.Errorf("second page HasMore=%v After=%q, want false and empty", page.HasMore, page.After)
	}
}

func TestItemListDescending(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedThread(t, s, "th_1", "user-a", base)
	seedItem(t, s, "th_1", "it_1", "user-a", base.Add(1*time.Minute))
	seedItem(t, s, "th_1", "it_2", "user-a", base.Add(2*time.Minute))
	seedItem(t, s, "th_1", "it_3", "user-a", base.Add(3*time.Minute))

	page, err := s.Items().List(ctx, "th_1", "user-a", query.Pagination{Limit: 2, Order: query.OrderDesc})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got := ids(page.Data); got != "it_3,it_2" {
		t.Errorf("descending page = %s, want it_3,it_2", got)
	}

	page, err = s.Items().List(ctx, "th_1", "user-a", query.Pagination{Limit: 2, After: page.After, Order: query.OrderDesc})
	if err != nil {
		t.Fatalf("List() second page error = %v", err)
	}
	if got := ids(page.Data); got != "it_1" {
		t.Errorf("descending second page = %s, want it_1", got)
	}
}

func TestListTieBreakOnEqualTimestamps(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedThread(t, s, "th_1", "user-a", at)
	seedItem(t, s, "th_1", "it_b", "user-a", at)
	seedItem(t, s, "th_1", "it_a", "user-a", at)
	seedItem(t, s, "th_1", "it_c", "user-a", at)

	page, err := s.Items().List(ctx, "th_1", "user-a", query.Pagination{Limit: 2, Order: query.OrderAsc})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got := ids(page.Data); got != "it_a,it_b" {
		t.Errorf("first page = %s, want it_a,it_b", got)
	}

	page, err = s.Items().List(ctx, "th_1", "user-a", query.Pagination{Limit: 2, After: "it_b", Order: query.OrderAsc})
	if err != nil {
		t.Fatalf("List() after it_b error = %v", err)
	}
	if got := ids(page.Data); got != "it_c" {
		t.Errorf("page after it_b = %s, want it_c", got)
	}
}

func TestListUnknownCursor(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	seedThread(t, s, "th_1", "user-a", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	_, err := s.Threads().List(ctx, "user-a", query.Pagination{After: "th_missing"})
	if platformerrors.TypeOf(err) != platformerrors.ErrorTypeValidation {
		t.Errorf("List() with unknown cursor error = %v, want validation", err)
	}
}

func TestListCursorRowDeletedBetweenPages(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedThread(t, s, "th_1", "user-a", base)
	seedThread(t, s, "th_2", "user-a", base.Add(time.Hour))
	seedThread(t, s, "th_3", "user-a", base.Add(2*time.Hour))

	page, err := s.Threads().List(ctx, "user-a", query.Pagination{Limit: 2, Order: query.OrderAsc})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.After != "th_2" {
		t.Fatalf("first page After = %q, want th_2", page.After)
	}

	if err := s.Threads().Delete(ctx, "th_2", "user-a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// The cursor row is gone; the listing cannot resume and must say so.
	_, err = s.Threads().List(ctx, "user-a", query.Pagination{Limit: 2, After: page.After, Order: query.OrderAsc})
	if platformerrors.TypeOf(err) != platformerrors.ErrorTypeValidation {
		t.Errorf("List() with deleted cursor error = %v, want validation", err)
	}
}

func TestThreadDeleteCascades(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedThread(t, s, "th_1", "user-a", base)
	seedThread(t, s, "th_2", "user-a", base.Add(time.Hour))
	seedItem(t, s, "th_1", "it_1", "user-a", base.Add(1*time.Minute))
	seedItem(t, s, "th_2", "it_2", "user-a", base.Add(2*time.Minute))

	if err := s.Threads().Delete(ctx, "th_1", "user-a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := s.Items().Load(ctx, "th_1", "it_1", "user-a"); !platformerrors.IsNotFound(err) {
		t.Errorf("item of deleted thread still loads: %v", err)
	}
	if _, err := s.Items().Load(ctx, "th_2", "it_2", "user-a"); err != nil {
		t.Errorf("item of surviving thread lost: %v", err)
	}

	// Deleting again is a no-op.
	if err := s.Threads().Delete(ctx, "th_1", "user-a"); err != nil {
		t.Errorf("repeat Delete() error = %v", err)
	}
}

func TestItemLoadRequiresOwningThread(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedThread(t, s, "th_1", "user-a", base)
	seedItem(t, s, "th_1", "it_1", "user-a", base.Add(time.Minute))

	if _, err := s.Items().Load(ctx, "th_other", "it_1", "user-a"); !platformerrors.IsNotFound(err) {
		t.Errorf("Load() through wrong thread error = %v, want not-found", err)
	}
	if _, err := s.Items().Load(ctx, "th_1", "it_1", "user-b"); !platformerrors.IsNotFound(err) {
		t.Errorf("Load() by wrong owner error = %v, want not-found", err)
	}
}

func TestItemIDCollisionAcrossOwners(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedThread(t, s, "th_a", "user-a", base)
	seedThread(t, s, "th_b", "user-b", base)

	// Same item id used by two owners stays two independent records.
	if err := s.Items().Save(ctx, "th_a", &item.Item{
		ID:        "it_1",
		CreatedAt: base.Add(time.Minute),
		Payload:   json.RawMessage(`{"item":{"owner":"a"}}`),
	}, "user-a"); err != nil {
		t.Fatalf("save for user-a: %v", err)
	}
	if err := s.Items().Save(ctx, "th_b", &item.Item{
		ID:        "it_1",
		CreatedAt: base.Add(2 * time.Minute),
		Payload:   json.RawMessage(`{"item":{"owner":"b"}}`),
	}, "user-b"); err != nil {
		t.Fatalf("save for user-b: %v", err)
	}

	got, err := s.Items().Load(ctx, "th_a", "it_1", "user-a")
	if err != nil {
		t.Fatalf("Load() for user-a error = %v", err)
	}
	if !strings.Contains(string(got.Payload), `"a"`) {
		t.Errorf("user-a payload overwritten by user-b save: %s", got.Payload)
	}
}

func TestSaveRejectsInvalidPayload(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	err := s.Threads().Save(ctx, &thread.Thread{ID: "th_1", Payload: json.RawMessage(`{"broken`)}, "user-a")
	if platformerrors.TypeOf(err) != platformerrors.ErrorTypeValidation {
		t.Errorf("Save() with invalid payload error = %v, want validation", err)
	}
}

func TestAttachmentLifecycle(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	payload := json.RawMessage(`{"attachment":{"id":"att_1","name":"report.pdf"}}`)

	if err := s.Attachments().Save(ctx, &attachment.Attachment{ID: "att_1", Payload: payload}, "user-a"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Attachments().Load(ctx, "att_1", "user-a")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(got.Payload) != string(payload) {
		t.Errorf("Load() payload = %s, want %s", got.Payload, payload)
	}

	if _, err := s.Attachments().Load(ctx, "att_1", "user-b"); !platformerrors.IsNotFound(err) {
		t.Errorf("cross-owner Load() error = %v, want not-found", err)
	}

	if err := s.Attachments().Delete(ctx, "att_1", "user-a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Attachments().Load(ctx, "att_1", "user-a"); !platformerrors.IsNotFound(err) {
		t.Errorf("Load() after delete error = %v, want not-found", err)
	}
	if err := s.Attachments().Delete(ctx, "att_1", "user-a"); err != nil {
		t.Errorf("repeat Delete() error = %v", err)
	}
}

func ids(rows []*item.Item) string {
	parts := make([]string, 0, len(rows))
	for _, row := range rows {
		parts = append(parts, row.ID)
	}
	return strings.Join(parts, ",")
}

package entities_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chatstore/internal/domain/attachment"
	"chatstore/internal/domain/item"
	"chatstore/internal/domain/thread"
	"chatstore/internal/infrastructure/database/entities"
)

func TestNewSchemaThread(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	payload := json.RawMessage(`{"thread":{"id":"th_1","title":"hello"}}`)

	row := entities.NewSchemaThread(&thread.Thread{ID: "th_1", CreatedAt: created, Payload: payload}, "user-a")
	assert.Equal(t, "th_1", row.ID)
	assert.Equal(t, "user-a", row.OwnerID)
	assert.Equal(t, created, row.CreatedAt)
	assert.JSONEq(t, string(payload), string(row.Payload))

	back := row.EtoD()
	assert.Equal(t, "th_1", back.ID)
	assert.Equal(t, created, back.CreatedAt)
	assert.JSONEq(t, string(payload), string(back.Payload))
}

func TestNewSchemaItem(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	payload := json.RawMessage(`{"item":{"id":"it_1","role":"assistant"}}`)

	row := entities.NewSchemaItem(&item.Item{ID: "it_1", CreatedAt: created, Payload: payload}, "th_1", "user-a")
	assert.Equal(t, "it_1", row.ID)
	assert.Equal(t, "user-a", row.OwnerID)
	assert.Equal(t, "th_1", row.ThreadID)

	back := row.EtoD()
	assert.Equal(t, "it_1", back.ID)
	assert.Equal(t, created, back.CreatedAt)
	assert.JSONEq(t, string(payload), string(back.Payload))
}

func TestNewSchemaAttachment(t *testing.T) {
	payload := json.RawMessage(`{"attachment":{"id":"att_1","mime_type":"image/png"}}`)

	row := entities.NewSchemaAttachment(&attachment.Attachment{ID: "att_1", Payload: payload}, "user-a")
	assert.Equal(t, "att_1", row.ID)
	assert.Equal(t, "user-a", row.OwnerID)

	back := row.EtoD()
	assert.Equal(t, "att_1", back.ID)
	assert.JSONEq(t, string(payload), string(back.Payload))
}

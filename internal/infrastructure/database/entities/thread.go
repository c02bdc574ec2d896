package entities

import (
	"time"

	"gorm.io/datatypes"

	"chatstore/internal/domain/thread"
)

// Thread models the persisted representation of a conversation thread. The
// primary key is (id, owner_id): a thread id is only unique per owner.
type Thread struct {
	ID        string         `gorm:"type:varchar(64);primaryKey"`
	OwnerID   string         `gorm:"type:varchar(64);primaryKey"`
	CreatedAt time.Time      `gorm:"not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
}

func (Thread) TableName() string {
	return "threads"
}

// EtoD converts the database row to the domain model.
func (t *Thread) EtoD() *thread.Thread {
	return &thread.Thread{
		ID:        t.ID,
		CreatedAt: t.CreatedAt,
		Payload:   []byte(t.Payload),
	}
}

// NewSchemaThread builds a database row from the domain model.
func NewSchemaThread(t *thread.Thread, ownerID string) *Thread {
	return &Thread{
		ID:        t.ID,
		OwnerID:   ownerID,
		CreatedAt: t.CreatedAt,
		Payload:   datatypes.JSON(t.Payload),
	}
}

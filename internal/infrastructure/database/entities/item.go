package entities

import (
	"time"

	"gorm.io/datatypes"

	"chatstore/internal/domain/item"
)

// Item models one persisted thread item. Keyed by (id, owner_id) so a stray
// id collision across tenants can never collapse two owners' rows into one;
// thread_id is a projected column reads filter on.
type Item struct {
	ID        string         `gorm:"type:varchar(64);primaryKey"`
	OwnerID   string         `gorm:"type:varchar(64);primaryKey"`
	ThreadID  string         `gorm:"type:varchar(64);not null"`
	CreatedAt time.Time      `gorm:"not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
}

func (Item) TableName() string {
	return "items"
}

// EtoD converts the database row to the domain model.
func (i *Item) EtoD() *item.Item {
	return &item.Item{
		ID:        i.ID,
		CreatedAt: i.CreatedAt,
		Payload:   []byte(i.Payload),
	}
}

// NewSchemaItem builds a database row from the domain model.
func NewSchemaItem(it *item.Item, threadID, ownerID string) *Item {
	return &Item{
		ID:        it.ID,
		OwnerID:   ownerID,
		ThreadID:  threadID,
		CreatedAt: it.CreatedAt,
		Payload:   datatypes.JSON(it.Payload),
	}
}

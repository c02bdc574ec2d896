package entities

import (
	"gorm.io/datatypes"

	"chatstore/internal/domain/attachment"
)

// Attachment models a persisted attachment record, keyed by (id, owner_id).
type Attachment struct {
	ID      string         `gorm:"type:varchar(64);primaryKey"`
	OwnerID string         `gorm:"type:varchar(64);primaryKey"`
	Payload datatypes.JSON `gorm:"type:jsonb;not null"`
}

func (Attachment) TableName() string {
	return "attachments"
}

// EtoD converts the database row to the domain model.
func (a *Attachment) EtoD() *attachment.Attachment {
	return &attachment.Attachment{
		ID:      a.ID,
		Payload: []byte(a.Payload),
	}
}

// NewSchemaAttachment builds a database row from the domain model.
func NewSchemaAttachment(a *attachment.Attachment, ownerID string) *Attachment {
	return &Attachment{
		ID:      a.ID,
		OwnerID: ownerID,
		Payload: datatypes.JSON(a.Payload),
	}
}

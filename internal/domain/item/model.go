package item

import (
	"encoding/json"
	"time"
)

// Item is a single message, tool call or event inside a thread. The payload
// document is opaque to the store; ID and CreatedAt are projected out for
// keying and ordering.
type Item struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload"`
}

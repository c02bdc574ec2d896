package thread

import (
	"encoding/json"
	"time"
)

// Thread is a conversation container. Payload holds the caller's full thread
// document; the store round-trips it without interpreting anything beyond the
// projected ID and CreatedAt.
type Thread struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload"`
}

package attachment

import "encoding/json"

// Attachment is a file reference record addressed by id, independent of
// threads and items. The store keeps the caller's document whole.
type Attachment struct {
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

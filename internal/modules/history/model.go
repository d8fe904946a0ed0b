// README: Saved schedule history records.
package history

import (
	"encoding/json"
	"time"
)

// History is one saved generation run. PathOptions and Metadata carry the
// frontend's JSON verbatim; the server never reshapes saved schedules.
type History struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"-"`
	Title       string          `json:"title"`
	Subtitle    string          `json:"subtitle,omitempty"`
	UserRequest string          `json:"userRequest"`
	TargetDate  string          `json:"requestedDate"`
	PathOptions json.RawMessage `json:"pathOptions"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

package intake

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// DraftMaxAge is how long a persisted draft stays restorable. Older drafts
// are purged on load.
const DraftMaxAge = 7 * 24 * time.Hour

// DraftEnvelope wraps a partially completed record for persistence. Version
// pins the record schema the draft was saved under; a mismatch on load means
// the draft is discarded, not migrated.
type DraftEnvelope struct {
	Version    string      `json:"version"`
	Timestamp  int64       `json:"timestamp"` // unix milliseconds
	FormData   *FormRecord `json:"formData"`
	IsComplete bool        `json:"isComplete"`
}

// NewDraftEnvelope wraps a record with the current schema version and
// save time.
func NewDraftEnvelope(r *FormRecord, savedAt time.Time, complete bool) *DraftEnvelope {
	return &DraftEnvelope{
		Version:    SchemaVersion,
		Timestamp:  savedAt.UnixMilli(),
		FormData:   r,
		IsComplete: complete,
	}
}

// Encode serializes the envelope as base64-wrapped JSON, the storage format
// the original web client used for its local drafts.
func (e *DraftEnvelope) Encode() (string, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("failed to marshal draft envelope: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeDraftEnvelope reverses Encode. Any decode failure means the stored
// draft is corrupt and should be cleared by the caller.
func DecodeDraftEnvelope(payload string) (*DraftEnvelope, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode draft payload: %w", err)
	}
	var e DraftEnvelope
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft envelope: %w", err)
	}
	return &e, nil
}

// SavedAt returns the envelope timestamp as a time.
func (e *DraftEnvelope) SavedAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Age reports how long ago the draft was saved.
func (e *DraftEnvelope) Age(now time.Time) time.Duration {
	return now.Sub(e.SavedAt())
}

// Expired reports whether the draft is past DraftMaxAge.
func (e *DraftEnvelope) Expired(now time.Time) bool {
	return e.Age(now) > DraftMaxAge
}

// Stale reports whether the draft was saved under a different record schema.
func (e *DraftEnvelope) Stale() bool {
	return e.Version != SchemaVersion
}

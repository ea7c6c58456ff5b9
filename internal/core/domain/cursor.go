package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// Cursor marks the last record of a fetched page
type Cursor struct {
	ID              string `json:"id"`
	TimestampMillis int64  `json:"ts"`
}

// CursorFrom builds the resume cursor of a record returned by a page query
func CursorFrom(m MediaMetadata) *Cursor {
	return &Cursor{ID: m.ID, TimestampMillis: m.Timestamp.UnixMilli()}
}

// Time reconstructs the cursor timestamp as seconds and nanoseconds
func (c Cursor) Time() time.Time {
	seconds := c.TimestampMillis / 1000
	nanos := (c.TimestampMillis % 1000) * int64(time.Millisecond)
	return time.Unix(seconds, nanos).UTC()
}

// Encode returns the opaque form of the cursor
func (c Cursor) Encode() string {
	raw, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// ParseCursor decodes an opaque cursor. An empty token yields a nil cursor.
func ParseCursor(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCursor, err)
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCursor, err)
	}
	if c.ID == "" || c.TimestampMillis <= 0 {
		return nil, ErrInvalidCursor
	}
	return &c, nil
}

// Package timestamp provides the second-precision wall-clock time used in
// persisted documents. The layout is fixed width and zero padded, so the
// textual and chronological orders agree.
package timestamp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layout is the on-disk representation of every persisted timestamp.
const Layout = "2006-01-02 15:04:05"

// Time wraps time.Time with the persisted layout.
type Time struct {
	time.Time
}

// New truncates t to whole seconds, dropping the monotonic reading, so a
// value survives a marshal/unmarshal cycle unchanged.
func New(t time.Time) Time {
	return Time{Time: t.Truncate(time.Second)}
}

// Ptr returns a pointer to New(t), for nullable fields.
func Ptr(t time.Time) *Time {
	ts := New(t)
	return &ts
}

func (t Time) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(Layout)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(Layout))
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return fmt.Errorf("timestamp: parse %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

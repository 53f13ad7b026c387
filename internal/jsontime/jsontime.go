// Package jsontime decodes timestamps sent with or without a zone offset.
package jsontime

import (
	"strings"
	"time"
)

var layouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"}

// Time accepts RFC 3339 and zone-less local date-times. Zone-less values are read as UTC.
type Time struct{ time.Time }

func (t *Time) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	if raw == "" || raw == "null" {
		return nil
	}
	var err error
	for _, layout := range layouts {
		var parsed time.Time
		if parsed, err = time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return err
}

// Ptr returns the UTC instant, or nil for a missing or zero value.
func (t *Time) Ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}

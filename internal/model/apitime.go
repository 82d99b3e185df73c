package model

import (
	"bytes"
	"time"
)

// Timestamp layouts the backend is known to emit. Python's isoformat()
// drops trailing zeros, so the fractional part varies.
var _apiTimeLayouts = []string{
	"2006-01-02T15:04:05.000000",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// APITime decodes the backend's drifting timestamp formats. If no layout
// matches, the value stays zero and callers treat it as unknown; defaulting
// to "now" would make stale data look fresh.
type APITime struct {
	time.Time
}

func NewAPITime(t time.Time) APITime {
	return APITime{Time: t}
}

func (t *APITime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	s := string(bytes.Trim(data, `"`))
	if s == "" {
		return nil
	}

	for _, layout := range _apiTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}

	t.Time = time.Time{}
	return nil
}

func (t APITime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}

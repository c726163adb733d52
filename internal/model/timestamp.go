package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the only timestamp format accepted on write and
// produced on read.
const TimestampLayout = "2006-01-02T15:04:05Z"

type Timestamp struct {
	time.Time
}

func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse timestamp %q: expected YYYY-MM-DDTHH:mm:ssZ", s)
	}
	return t, nil
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid timestamp (string expected): %w", err)
	}

	if s == "" {
		ts.Time = time.Time{}
		return nil
	}

	t, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	ts.Time = t
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.Time.IsZero() {
		return []byte(`null`), nil
	}

	return json.Marshal(ts.Time.UTC().Format(TimestampLayout))
}

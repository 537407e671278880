// internal/model/date.go
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Date は時刻を持たない暦日。JSON では "2006-01-02"
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return Date{time.Date(year, month, day, 0, 0, 0, 0, loc)}
}

// DateOf は t の日付部分を取り出す
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day(), t.Location())
}

// ParseDate は "2006-01-02" または RFC3339 を受け付ける
func ParseDate(s string, loc *time.Location) (Date, error) {
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, ErrInvalidInput)
	}
	return NewDate(t.Year(), t.Month(), t.Day(), loc), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", ErrInvalidInput)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s, time.Local)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

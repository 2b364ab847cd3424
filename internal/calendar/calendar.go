// Package calendar holds the broken-down civil time returned by the time
// provider and the console report rendered from it.
package calendar

import (
	"fmt"
	"time"
)

// Time is a broken-down civil timestamp with second precision. It carries no
// zone: the fixed UTC and DST offsets are already applied to its fields.
// The zero value means "no valid time".
type Time struct {
	Year    int          `json:"year"`
	Month   time.Month   `json:"month"`
	Day     int          `json:"day"`
	Hour    int          `json:"hour"`
	Minute  int          `json:"minute"`
	Second  int          `json:"second"`
	Weekday time.Weekday `json:"weekday"`
	YearDay int          `json:"year_day"`
	IsDST   bool         `json:"is_dst"`
}

// Zone is a fixed offset from UTC. DST is added unconditionally, regardless
// of the date being converted.
type Zone struct {
	UTCOffset time.Duration
	DSTOffset time.Duration
}

// NewZone builds a Zone from offsets expressed in seconds.
func NewZone(utcOffsetSec, dstOffsetSec int) Zone {
	return Zone{
		UTCOffset: time.Duration(utcOffsetSec) * time.Second,
		DSTOffset: time.Duration(dstOffsetSec) * time.Second,
	}
}

// Offset returns the total shift applied to UTC.
func (z Zone) Offset() time.Duration {
	return z.UTCOffset + z.DSTOffset
}

// Name renders the zone as UTC, UTC+01:00, UTC-05:30 and so on.
func (z Zone) Name() string {
	secs := int(z.Offset() / time.Second)
	if secs == 0 {
		return "UTC"
	}
	sign := '+'
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, secs/3600, (secs%3600)/60)
}

// Location returns the zone as a *time.Location.
func (z Zone) Location() *time.Location {
	return time.FixedZone(z.Name(), int(z.Offset()/time.Second))
}

// FromInstant converts an instant into civil fields under the zone.
func FromInstant(t time.Time, z Zone) Time {
	local := t.In(z.Location())
	return Time{
		Year:    local.Year(),
		Month:   local.Month(),
		Day:     local.Day(),
		Hour:    local.Hour(),
		Minute:  local.Minute(),
		Second:  local.Second(),
		Weekday: local.Weekday(),
		YearDay: local.YearDay(),
		IsDST:   z.DSTOffset != 0,
	}
}

// IsZero reports whether t holds no time at all.
func (t Time) IsZero() bool {
	return t == Time{}
}

// Valid reports whether every field is inside its civil range.
func (t Time) Valid() bool {
	return t.Month >= time.January && t.Month <= time.December &&
		t.Day >= 1 && t.Day <= 31 &&
		t.Hour >= 0 && t.Hour <= 23 &&
		t.Minute >= 0 && t.Minute <= 59 &&
		t.Second >= 0 && t.Second <= 59 &&
		t.Weekday >= time.Sunday && t.Weekday <= time.Saturday
}

// Hour12 returns the hour on a 12-hour clock, 1..12.
func (t Time) Hour12() int {
	h := t.Hour % 12
	if h == 0 {
		return 12
	}
	return h
}

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or
// after u.
func (t Time) Compare(u Time) int {
	return t.civil().Compare(u.civil())
}

// Format renders t with a Go reference layout.
func (t Time) Format(layout string) string {
	return t.civil().Format(layout)
}

func (t Time) String() string {
	return t.Format(LayoutFull)
}

// civil rebuilds the fields as a UTC time.Time so the standard layouts can
// be reused. Only the wall fields are meaningful.
func (t Time) civil() time.Time {
	return time.Date(t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, 0, time.UTC)
}

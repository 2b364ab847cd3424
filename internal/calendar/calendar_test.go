package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromInstant(t *testing.T) {
	tests := []struct {
		name    string
		instant time.Time
		zone    Zone
		want    Time
	}{
		{
			name:    "dst applied on top of utc",
			instant: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
			zone:    NewZone(0, 3600),
			want: Time{Year: 2024, Month: time.March, Day: 15, Hour: 11, Minute: 30, Second: 0,
				Weekday: time.Friday, YearDay: 75, IsDST: true},
		},
		{
			name:    "no offsets",
			instant: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
			zone:    NewZone(0, 0),
			want: Time{Year: 2024, Month: time.March, Day: 15, Hour: 10, Minute: 30, Second: 0,
				Weekday: time.Friday, YearDay: 75},
		},
		{
			name:    "crosses midnight and year",
			instant: time.Date(2023, 12, 31, 23, 45, 59, 0, time.UTC),
			zone:    NewZone(3600, 0),
			want: Time{Year: 2024, Month: time.January, Day: 1, Hour: 0, Minute: 45, Second: 59,
				Weekday: time.Monday, YearDay: 1},
		},
		{
			name:    "negative offset",
			instant: time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC),
			zone:    NewZone(-5*3600, 3600),
			want: Time{Year: 2023, Month: time.December, Day: 31, Hour: 22, Minute: 0, Second: 0,
				Weekday: time.Sunday, YearDay: 365, IsDST: true},
		},
		{
			name:    "instant given in another zone",
			instant: time.Date(2024, 3, 15, 19, 30, 0, 0, time.FixedZone("KST", 9*3600)),
			zone:    NewZone(0, 3600),
			want: Time{Year: 2024, Month: time.March, Day: 15, Hour: 11, Minute: 30, Second: 0,
				Weekday: time.Friday, YearDay: 75, IsDST: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromInstant(tt.instant, tt.zone)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestZoneName(t *testing.T) {
	assert.Equal(t, "UTC", NewZone(0, 0).Name())
	assert.Equal(t, "UTC+01:00", NewZone(0, 3600).Name())
	assert.Equal(t, "UTC+05:30", NewZone(5*3600+1800, 0).Name())
	assert.Equal(t, "UTC-04:00", NewZone(-5*3600, 3600).Name())
}

func TestZeroValue(t *testing.T) {
	var ct Time
	assert.True(t, ct.IsZero())
	assert.False(t, ct.Valid())

	ct = FromInstant(time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), NewZone(0, 0))
	assert.False(t, ct.IsZero())
}

func TestHour12(t *testing.T) {
	tests := []struct {
		hour int
		want int
	}{
		{0, 12}, {1, 1}, {11, 11}, {12, 12}, {13, 1}, {23, 11},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Time{Hour: tt.hour}.Hour12(), "hour %d", tt.hour)
	}
}

func TestCompare(t *testing.T) {
	zone := NewZone(0, 3600)
	base := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	a := FromInstant(base, zone)
	b := FromInstant(base.Add(time.Second), zone)

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
}

func TestWriteReport(t *testing.T) {
	ct := FromInstant(time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), NewZone(0, 3600))

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, ct))

	want := strings.Join([]string{
		"Friday, March 15 2024 11:30:00",
		"Day of week: Friday",
		"Month: March",
		"Day of Month: 15",
		"Year: 2024",
		"Hour: 11",
		"Hour (12 hour format): 11",
		"Minute: 30",
		"Second: 00",
		"Time variables",
		"11",
		"Friday",
		"",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteReport_AfternoonPadding(t *testing.T) {
	ct := FromInstant(time.Date(2024, 7, 4, 15, 5, 9, 0, time.UTC), NewZone(0, 0))

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, ct))

	out := buf.String()
	assert.Contains(t, out, "Thursday, July 04 2024 15:05:09\n")
	assert.Contains(t, out, "Day of Month: 04\n")
	assert.Contains(t, out, "Hour (12 hour format): 03\n")
	assert.Contains(t, out, "Minute: 05\n")
	assert.Contains(t, out, "Second: 09\n")
}

func TestWriteFailure(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFailure(&buf))
	assert.Equal(t, "Failed to obtain time\n", buf.String())
}

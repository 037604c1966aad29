package tools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	shanghai, err := LoadZone("Asia/Shanghai")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		loc   *time.Location
		want  int64
	}{
		{"unix seconds", "1700000000", time.UTC, 1700000000},
		{"unix millis", "1700000000000", time.UTC, 1700000000},
		{"rfc3339 keeps offset", "2023-11-14T22:13:20Z", shanghai, 1700000000},
		{"local layout uses zone", "2024-01-02 03:04:05", shanghai, 1704135845},
		{"date only", "2024-01-02", time.UTC, 1704153600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.input, tt.loc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Unix())
			assert.Equal(t, tt.loc, got.Location())
		})
	}

	_, err = ParseTime("yesterday", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoadZone(t *testing.T) {
	loc, err := LoadZone("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = LoadZone("Mars/Olympus")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConvertTime(t *testing.T) {
	tokyo, err := LoadZone("Asia/Tokyo")
	require.NoError(t, err)
	instant := time.Unix(1700000000, 0)

	got := ConvertTime(instant, tokyo, instant.Add(2*time.Hour))
	assert.Equal(t, int64(1700000000), got.Unix)
	assert.Equal(t, int64(1700000000000), got.UnixMilli)
	assert.Equal(t, "2023-11-15T07:13:20+09:00", got.RFC3339)
	assert.Equal(t, "2023-11-15 07:13:20", got.Local)
	assert.Equal(t, "2023-11-14 22:13:20", got.UTC)
	assert.Equal(t, "Wednesday", got.Weekday)
	assert.Equal(t, "Asia/Tokyo (JST)", got.Zone)
	assert.Equal(t, "2 hours ago", got.Relative)
}

func TestRelative(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "now", Relative(now, now))
	assert.Equal(t, "in 1 hour", Relative(now.Add(90*time.Minute), now))
	assert.Equal(t, "2 days ago", Relative(now.Add(-49*time.Hour), now))
	assert.Equal(t, "in 30 seconds", Relative(now.Add(30*time.Second), now))
	assert.Equal(t, "1 year ago", Relative(now.Add(-400*24*time.Hour), now))
}

func TestOccurrences(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	got, err := Occurrences("FREQ=DAILY;COUNT=5", start, start.Add(-time.Hour), 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].Equal(start))
	assert.True(t, got[2].Equal(start.AddDate(0, 0, 2)))

	got, err = Occurrences("RRULE:FREQ=WEEKLY;COUNT=2", start, start.Add(-time.Hour), 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = Occurrences("FREQ=DAILY", start, start.AddDate(0, 0, 1), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Equal(start.AddDate(0, 0, 2)))

	_, err = Occurrences("FREQ=SOMETIMES", start, start, 2)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Occurrences("FREQ=DAILY", start, start, MaxOccurrences+1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

package topology

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime_StripsRedundantPM(t *testing.T) {
	// 17:00 already implies the meridiem; the PM suffix is operator noise.
	got, err := ParseTime("2017-03-07 17:00 PM")
	require.NoError(t, err)
	assert.Equal(t, 17, got.Hour())
	assert.Equal(t, 0, got.Minute())
	assert.Equal(t, time.Date(2017, 3, 7, 17, 0, 0, 0, time.UTC), got.UTC())
}

func TestParseTime_StripsRedundantAM(t *testing.T) {
	got, err := ParseTime("2017-03-07 00:30 AM")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 30, got.Minute())
}

func TestParseTime_BareClockRedundantPM(t *testing.T) {
	// A clock-only string with an impossible meridiem still parses,
	// anchored on the current UTC day.
	got, err := ParseTime("17:00 PM")
	require.NoError(t, err)
	assert.Equal(t, 17, got.Hour())
	assert.Equal(t, 0, got.Minute())
	assert.Equal(t, time.UTC, got.Location())
}

func TestParseTime_BareClockRedundantAM(t *testing.T) {
	got, err := ParseTime("00:30 AM")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 30, got.Minute())
}

func TestParseTime_KeepsRealMeridiem(t *testing.T) {
	// 05:00 is ambiguous, so the meridiem must survive normalization.
	got, err := ParseTime("May 8, 2009 5:57:51 PM")
	require.NoError(t, err)
	assert.Equal(t, 17, got.Hour())
}

func TestParseTime_AssumesUTC(t *testing.T) {
	got, err := ParseTime("2020-06-15 12:00:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 6, 15, 12, 0, 0, 0, time.UTC), got.UTC())
}

func TestParseTime_Invalid(t *testing.T) {
	_, err := ParseTime("sometime next week-ish maybe")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestClassify(t *testing.T) {
	now := time.Date(2021, 1, 15, 12, 0, 0, 0, time.UTC)
	hour := time.Hour

	tests := []struct {
		name       string
		start, end time.Time
		want       Bucket
	}{
		{"ended before now", now.Add(-2 * hour), now.Add(-hour), Past},
		{"starts after now", now.Add(hour), now.Add(2 * hour), Future},
		{"spans now", now.Add(-hour), now.Add(hour), Current},
		{"ends exactly now", now.Add(-hour), now, Current},
		{"starts exactly now", now, now.Add(hour), Current},
		{"instantaneous at now", now, now, Current},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.start, tt.end, now))
		})
	}
}

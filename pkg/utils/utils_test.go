package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRounding(t *testing.T) {
	assert.Equal(t, 33.33, RoundToTwoDecimals(33.3333))
	assert.Equal(t, 66.7, RoundToOneDecimal(66.666))
	assert.Equal(t, 33.33, Percentage(1, 3))
	assert.Equal(t, 0.0, Percentage(5, 0))
}

func TestHourLabel(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2025, 1, 6, h, 0, 0, 0, time.UTC) }
	assert.Equal(t, "12:00 AM", HourLabel(at(0)))
	assert.Equal(t, "9:00 AM", HourLabel(at(9)))
	assert.Equal(t, "12:00 PM", HourLabel(at(12)))
	assert.Equal(t, "11:00 PM", HourLabel(at(23)))
}

func TestDayLabel(t *testing.T) {
	assert.Equal(t, "Mon 06/01", DayLabel(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "привет", Truncate("привет мир", 6))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestLoadLocation(t *testing.T) {
	assert.Equal(t, time.UTC, LoadLocation(""))

	loc := LoadLocation("Not/AZone")
	_, offset := time.Date(2025, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, defaultZoneOffset, offset)
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	ts := time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC)

	got := StartOfDay(ts, loc)

	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, loc), got)
}

func TestStartOfHour_HalfHourOffset(t *testing.T) {
	loc := time.FixedZone("IST", 5*60*60+30*60)
	ts := time.Date(2025, 1, 1, 0, 10, 0, 0, time.UTC) // 05:40 local

	got := StartOfHour(ts, loc)

	assert.Equal(t, 5, got.Hour())
	assert.Equal(t, 0, got.Minute())
	assert.True(t, got.Equal(time.Date(2024, 12, 31, 23, 30, 0, 0, time.UTC)))
}

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateToken("admin")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["username"])

	SetJWTSecret("other-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestNormalizeUUID(t *testing.T) {
	id, ok := NormalizeUUID("6BA7B810-9DAD-11D1-80B4-00C04FD430C8")
	assert.True(t, ok)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", id)

	_, ok = NormalizeUUID("not-a-uuid")
	assert.False(t, ok)
}

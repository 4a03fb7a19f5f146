package utils

import (
	"log"
	"time"
)

// defaultZoneOffset is used when the tz database has no entry for the configured zone.
const defaultZoneOffset = 5 * 60 * 60

// LoadLocation resolves the store's timezone. Unknown names fall back to a fixed +05:00 zone
// so that day boundaries stay stable even on hosts without tzdata.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Ошибка загрузки таймзоны %s: %v", name, err)
		return time.FixedZone(name, defaultZoneOffset)
	}

	return loc
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// StartOfHour returns the start of the local hour containing t, so zones with
// half-hour offsets get buckets starting at :00 on their own clock.
func StartOfHour(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, loc)
}

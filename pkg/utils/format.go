package utils

import (
	"fmt"
	"time"
	"unicode/utf8"
)

func FormatPeriod(start, end time.Time) string {
	return fmt.Sprintf("%s - %s",
		start.Format("2006-01-02 15:04"),
		end.Format("2006-01-02 15:04"))
}

// Truncate cuts s to at most max runes.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

// HourLabel renders the 12-hour clock label of t's hour, e.g. "9:00 AM".
func HourLabel(t time.Time) string {
	hour := t.Hour()
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	if hour%12 == 0 {
		return "12:00 " + suffix
	}
	return fmt.Sprintf("%d:00 %s", hour%12, suffix)
}

// DayLabel renders "Mon 02/01".
func DayLabel(t time.Time) string {
	return t.Format("Mon 02/01")
}

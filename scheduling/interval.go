package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a clock time as minutes since midnight. Availability windows
// and appointment times are stored as zero-padded "HH:MM" strings, so
// lexicographic comparison in SQL matches numeric comparison here.
type TimeOfDay int

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS"; seconds are truncated.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, validationf("invalid time %q, expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, validationf("invalid time %q, expected HH:MM", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, validationf("invalid time %q, expected HH:MM", s)
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec < 0 || sec > 59 {
			return 0, validationf("invalid time %q, expected HH:MM", s)
		}
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Overlaps reports whether the half-open windows [aStart,aEnd) and
// [bStart,bEnd) intersect. Windows that merely touch (one ends exactly
// where the other starts) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart < bEnd && bStart < aEnd
}

// ValidDay reports whether d is an ISO day of week: 1 (Monday) to 7 (Sunday).
func ValidDay(d int) bool {
	return d >= 1 && d <= 7
}

// ISOWeekday maps time.Weekday (Sunday=0) to ISO numbering (Monday=1,
// Sunday=7).
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// ParseDate validates a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, validationf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

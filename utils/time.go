package utils

import (
	"os"
	"time"
)

// ClinicLocation returns the clinic's timezone, configurable via CLINIC_TZ.
func ClinicLocation() *time.Location {
	tz := os.Getenv("CLINIC_TZ")
	if tz == "" {
		tz = "America/Caracas"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Local
	}
	return loc
}

// ToClinicTime converts t to the clinic's timezone.
func ToClinicTime(t time.Time) time.Time {
	return t.In(ClinicLocation())
}

// Today returns the clinic-local date in YYYY-MM-DD form.
func Today() string {
	return ToClinicTime(time.Now()).Format("2006-01-02")
}

package handlers

import (
	"time"

	"github.com/gdmcare/portal-api/internal/timezone"
)

// All schedule arithmetic happens in the clinic's timezone.

func clinicLocation(tz string) *time.Location {
	return timezone.Location(tz)
}

func nowInClinic(tz string) time.Time {
	return timezone.NowIn(tz)
}

func parseDateInClinic(tz, dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, clinicLocation(tz))
}

func parseDateTimeInClinic(tz, value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", value, clinicLocation(tz))
}

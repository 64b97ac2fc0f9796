package timeutil

import (
	"time"
)

// WIB is Western Indonesia Time (UTC+7), the showroom's business timezone.
var WIB *time.Location

func init() {
	var err error
	WIB, err = time.LoadLocation("Asia/Jakarta")
	if err != nil {
		// Fallback: fixed zone if tzdata is unavailable
		WIB = time.FixedZone("WIB", 7*60*60)
	}
}

// Now returns the current time in WIB
func Now() time.Time {
	return time.Now().In(WIB)
}

// ToWIB converts any time to WIB
func ToWIB(t time.Time) time.Time {
	return t.In(WIB)
}

// StartOfDay returns the start of day (00:00:00) in WIB for the given time
func StartOfDay(t time.Time) time.Time {
	wib := t.In(WIB)
	return time.Date(wib.Year(), wib.Month(), wib.Day(), 0, 0, 0, 0, WIB)
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)

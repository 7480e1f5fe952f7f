package poster

import (
	"fmt"
	"time"
)

// Peak posting times for art accounts, local time, per weekday.
var bestTimes = map[time.Weekday][]struct{ Hour, Minute int }{
	time.Monday:    {{8, 0}, {13, 0}, {21, 0}},
	time.Tuesday:   {{7, 0}, {12, 0}, {20, 0}},
	time.Wednesday: {{7, 0}, {11, 0}, {21, 0}},
	time.Thursday:  {{8, 0}, {12, 0}, {20, 0}},
	time.Friday:    {{9, 0}, {13, 0}, {20, 0}},
	time.Saturday:  {{10, 0}, {14, 0}, {20, 0}},
	time.Sunday:    {{10, 0}, {13, 0}, {21, 0}},
}

const (
	// windowMinutes is the tolerance around each peak slot.
	windowMinutes = 30

	// DailyCap is the maximum posts per calendar day.
	DailyCap = 3
)

// InPostingWindow reports whether now falls within ±30 minutes of a peak
// slot for its weekday.
func InPostingWindow(now time.Time) bool {
	for _, slot := range bestTimes[now.Weekday()] {
		target := time.Date(now.Year(), now.Month(), now.Day(), slot.Hour, slot.Minute, 0, 0, now.Location())
		delta := now.Sub(target)
		if delta < 0 {
			delta = -delta
		}
		if delta <= windowMinutes*time.Minute {
			return true
		}
	}
	return false
}

// NextWindow returns a human-readable description of the next peak slot
// after now, e.g. "Tuesday at 12:00 PM".
func NextWindow(now time.Time) string {
	for offset := 0; offset < 8; offset++ {
		day := now.AddDate(0, 0, offset)
		for _, slot := range bestTimes[day.Weekday()] {
			candidate := time.Date(day.Year(), day.Month(), day.Day(), slot.Hour, slot.Minute, 0, 0, now.Location())
			if candidate.After(now) {
				return fmt.Sprintf("%s at %s", candidate.Weekday(), formatClock(candidate))
			}
		}
	}
	return "unknown"
}

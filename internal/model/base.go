package model

import (
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO calendar-day string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DayBounds returns the inclusive day window for a calendar date, local
// midnight through 23:59:59.999.
func DayBounds(date time.Time) (start, end time.Time) {
	start = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end = start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

package application

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// maxRangeDays caps raw range queries. Statistics queries skip the cap.
const maxRangeDays = 30

// ValidateRange parses start and end as calendar dates and checks their
// order. When capped is true the window may not span more than maxRangeDays.
func ValidateRange(start, end string, capped bool) (time.Time, time.Time, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid start date %q, expected YYYY-MM-DD", ErrInvalidInput, start)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid end date %q, expected YYYY-MM-DD", ErrInvalidInput, end)
	}
	if capped && e.Sub(s) > maxRangeDays*24*time.Hour {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: date range cannot exceed %d days", ErrInvalidInput, maxRangeDays)
	}
	if e.Before(s) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidInput, end, start)
	}
	return s, e, nil
}

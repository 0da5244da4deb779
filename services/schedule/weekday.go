package schedule

import (
	"fmt"
	"time"
)

// DateLayout is the canonical wall-clock date representation.
const DateLayout = "2006-01-02"

var dayLabels = [8]string{
	"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeeklyDay maps a calendar date to the 1=Monday..7=Sunday convention used by
// availability records. Go counts Sunday as 0, hence the fold.
func WeeklyDay(t time.Time) int {
	if wd := int(t.Weekday()); wd != 0 {
		return wd
	}
	return 7
}

// DayLabel returns the display label for a weekly day. The label is derived,
// never authoritative; out-of-range days yield "".
func DayLabel(day int) string {
	if day < 1 || day > 7 {
		return ""
	}
	return dayLabels[day]
}

// ParseDate parses a canonical "2006-01-02" date string.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

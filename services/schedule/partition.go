package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// PartitionWindow cuts the window [start, end) into session start times,
// stepping by duration from start. All arguments are minutes of day. A time
// point is emitted iff the full session still fits (t+duration <= end) and t
// does not fall inside [breakStart, breakEnd). Skipped break points do not
// shift the alignment of later sessions.
//
// A window with start >= end or a non-positive duration yields an empty
// sequence; malformed windows are a legitimate input, not a programming
// error. The result is strictly increasing and free of duplicates, and the
// function is pure: same inputs, same output, no clock involved.
func PartitionWindow(start, end, breakStart, breakEnd, duration int) []int {
	times := []int{}
	if start >= end || duration <= 0 {
		return times
	}
	for t := start; t+duration <= end; t += duration {
		if t >= breakStart && t < breakEnd {
			continue
		}
		times = append(times, t)
	}
	return times
}

// ToMinutes parses a wall-clock "HH:MM" string into minutes of day. Anything
// that is not a valid 24h time is an error; no value is ever guessed.
func ToMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("malformed time %q, want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return h*60 + m, nil
}

// FromMinutes formats minutes of day as "HH:MM".
func FromMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is one calendar day expressed in minutes.
const MinutesPerDay = 24 * 60

// ClockTime is a local time of day expressed as minutes since midnight.
// It carries no date or timezone; intervals that span midnight are handled
// by projecting onto a 48-hour timeline anchored at the work date.
type ClockTime int

// ParseClock parses "HH:MM" or "HH:MM:SS" into a ClockTime. Seconds are
// truncated; attendance math is minute-granular.
func ParseClock(s string) (ClockTime, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock time %q: expected HH:MM", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid clock time %q: bad hour", s)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid clock time %q: bad minute", s)
	}

	return ClockTime(hour*60 + minute), nil
}

// MustClock parses a clock time or panics. For constants and tests only.
func MustClock(s string) ClockTime {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c ClockTime) String() string {
	m := int(c) % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Minutes returns the raw minutes-since-midnight value.
func (c ClockTime) Minutes() int {
	return int(c)
}

// Valid reports whether c falls within a single day.
func (c ClockTime) Valid() bool {
	return c >= 0 && c < MinutesPerDay
}

// CeilTo rounds m up to the next multiple of quantum.
func CeilTo(m, quantum int) int {
	if quantum <= 0 {
		return m
	}
	r := m % quantum
	if r == 0 {
		return m
	}
	return m + quantum - r
}

// FloorTo rounds m down to the previous multiple of quantum.
func FloorTo(m, quantum int) int {
	if quantum <= 0 {
		return m
	}
	return m - m%quantum
}

// Overlap returns the length, in minutes, of the intersection of the
// half-open intervals [aStart, aEnd) and [bStart, bEnd).
func Overlap(aStart, aEnd, bStart, bEnd int) int {
	lo := max(aStart, bStart)
	hi := min(aEnd, bEnd)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// WindowOverlap returns the overlap, in minutes, between the worked interval
// [start, end) on a 48-hour timeline anchored at the work date and a daily
// clock window [winStart, winEnd). A window whose end is at or before its
// start wraps past midnight; an equal start and end is an empty window.
// The window recurs daily, so the occurrences on the previous, current and
// next day are all considered.
func WindowOverlap(start, end int, winStart, winEnd ClockTime) int {
	ws := winStart.Minutes()
	we := winEnd.Minutes()
	if ws == we {
		return 0
	}
	if we < ws {
		we += MinutesPerDay
	}

	total := 0
	for k := -1; k <= 1; k++ {
		shift := k * MinutesPerDay
		total += Overlap(start, end, ws+shift, we+shift)
	}
	return total
}

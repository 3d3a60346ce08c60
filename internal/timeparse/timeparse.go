package timeparse

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidClock = errors.New("invalid HH:MM time")

var numberPattern = regexp.MustCompile(`\d+`)

// ClockMinutes converts "HH:MM" or "HH:MM:SS" to minutes since midnight.
func ClockMinutes(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, ErrInvalidClock
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, ErrInvalidClock
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, ErrInvalidClock
	}
	return hours*60 + minutes, nil
}

func Hour(s string) (int, error) {
	m, err := ClockMinutes(s)
	if err != nil {
		return 0, err
	}
	return m / 60, nil
}

// DurationMinutes parses the free-form duration strings the search API
// emits ("6h 30m", "6:30", "390 minutes", "390"). The first two numbers
// are hours and minutes; a lone number is minutes unless it is followed
// by an hour marker. Anything without digits is 0.
func DurationMinutes(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	nums := numberPattern.FindAllString(s, 2)

	switch len(nums) {
	case 0:
		return 0
	case 1:
		n, _ := strconv.Atoi(nums[0])
		if hasHourMarker(s, nums[0]) {
			return n * 60
		}
		return n
	default:
		h, _ := strconv.Atoi(nums[0])
		m, _ := strconv.Atoi(nums[1])
		return h*60 + m
	}
}

func hasHourMarker(s, num string) bool {
	rest := strings.TrimSpace(s[strings.Index(s, num)+len(num):])
	if strings.HasPrefix(rest, "min") || strings.HasPrefix(rest, "m") {
		return false
	}
	return strings.HasPrefix(rest, "h")
}

// FormatMinutes renders minutes as "6h 30m".
func FormatMinutes(total int) string {
	if total <= 0 {
		return "0m"
	}
	h, m := total/60, total%60
	switch {
	case h == 0:
		return strconv.Itoa(m) + "m"
	case m == 0:
		return strconv.Itoa(h) + "h"
	default:
		return strconv.Itoa(h) + "h " + strconv.Itoa(m) + "m"
	}
}

// ParseTimestamp accepts the timestamp shapes the API has been seen to
// return, with or without zone offsets and fractional seconds.
func ParseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05-0700", // Without colon
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.999999",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	s = strings.TrimSpace(s)
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &time.ParseError{
		Value:   s,
		Message: "unable to parse time string",
	}
}

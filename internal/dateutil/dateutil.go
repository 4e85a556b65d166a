package dateutil

import (
	"fmt"
	"time"

	"github.com/emberhabits/ember/internal/constants"
)

// FormatDate renders a time as a YYYY-MM-DD date string.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(constants.DateFormat, s)
}

// LoadLocation loads a timezone location from an IANA timezone name.
// "Local" or an empty string yields the system timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// Today returns today's date string (YYYY-MM-DD) in the specified timezone,
// so "today" follows the user's configured timezone rather than the system's.
func Today(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return FormatDate(now), nil
}

// DayRange generates the contiguous list of date strings covering n days and
// ending at end, ascending. n <= 0 yields nil.
func DayRange(end time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	days := make([]string, 0, n)
	cur := end.AddDate(0, 0, -(n - 1))
	for i := 0; i < n; i++ {
		days = append(days, FormatDate(cur))
		cur = cur.AddDate(0, 0, 1)
	}
	return days
}

// DaysAgo returns the date string n days before t.
func DaysAgo(t time.Time, n int) string {
	return FormatDate(t.AddDate(0, 0, -n))
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

package schedule

import (
	"fmt"
	"time"
)

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"
)

// ParseClock parses a wall-clock "HH:mm" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as a "HH:mm" string.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeClock reparses a wall-clock string into the zero-padded "HH:mm"
// form. time.Parse accepts an unpadded hour, and slot matching compares exact
// strings, so every clock value must pass through here before it is stored or
// compared.
func NormalizeClock(s string) (string, error) {
	minutes, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return FormatClock(minutes), nil
}

// ParseWorkDate parses a "YYYY-MM-DD" work date in the server's location.
func ParseWorkDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid work date %q: %w", s, err)
	}
	return t, nil
}

// FormatWorkDate renders a time as a "YYYY-MM-DD" work date.
func FormatWorkDate(t time.Time) string {
	return t.Format(dateLayout)
}

// StartOfISOWeek returns midnight of the Monday of t's ISO week.
func StartOfISOWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	// time.Weekday counts Sunday as 0
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// startOfDay truncates t to midnight in its location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CombineDateClock builds the absolute instant of a wall-clock time on a work
// date.
func CombineDateClock(workDate, clock string) (time.Time, error) {
	day, err := ParseWorkDate(workDate)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(minutes) * time.Minute), nil
}

// IsPastSlot reports whether a slot starting at clock time startTime on
// workDate has already begun relative to now. Malformed inputs count as past,
// which makes them unselectable.
func IsPastSlot(workDate, startTime string, now time.Time) bool {
	start, err := CombineDateClock(workDate, startTime)
	if err != nil {
		return true
	}
	return start.Before(now)
}

// dayLabel renders the Vietnamese weekday label shown on the booking calendar.
func dayLabel(t time.Time) string {
	names := [...]string{"Chủ nhật", "Thứ 2", "Thứ 3", "Thứ 4", "Thứ 5", "Thứ 6", "Thứ 7"}
	return fmt.Sprintf("%s - %02d/%02d", names[int(t.Weekday())], t.Day(), int(t.Month()))
}

package booking

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"parking-booking-gateway/internal/pkg/clock"
)

const MinDurationHours = 0.5

var (
	ErrMissingTimeRange = errors.New("date, start time and end time are required")
	ErrInvalidClock     = errors.New("time must be in HH:MM format")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD or DD-MM-YYYY")
	ErrEndNotAfterStart = errors.New("end time must be after start time")
	ErrWindowTooShort   = errors.New("booking window is too short")
	ErrDurationTooShort = errors.New("duration is too short")
)

var clockPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

var dateLayouts = []string{"2006-01-02", "02-01-2006"}

type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (i Interval) Hours() float64 {
	return i.End.Sub(i.Start).Hours()
}

// ParseClock returns the offset from midnight of an HH:MM value.
func ParseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if !clockPattern.MatchString(s) {
		return 0, ErrInvalidClock
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidClock
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// FormatClock always emits the two-digit form the API expects.
func FormatClock(s string) (string, error) {
	d, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Add(d).Format("15:04"), nil
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// ValidateAdvance checks a date/start/end triple and returns the window it
// covers. The end must follow the start by at least minWindow.
func ValidateAdvance(date, start, end string, loc *time.Location, minWindow time.Duration) (Interval, error) {
	if strings.TrimSpace(date) == "" || strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return Interval{}, ErrMissingTimeRange
	}
	day, err := ParseDate(date, loc)
	if err != nil {
		return Interval{}, err
	}
	startOffset, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	endOffset, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	if endOffset <= startOffset {
		return Interval{}, ErrEndNotAfterStart
	}
	if endOffset-startOffset < minWindow {
		return Interval{}, ErrWindowTooShort
	}
	return Interval{Start: day.Add(startOffset), End: day.Add(endOffset)}, nil
}

func ValidateDuration(hours float64) error {
	if hours < MinDurationHours {
		return ErrDurationTooShort
	}
	return nil
}

// SplitOvernight reports whether start+hours crosses midnight and, if so,
// returns the two same-day intervals the booking has to be split into.
func SplitOvernight(start time.Time, hours float64) ([]Interval, bool) {
	end := start.Add(time.Duration(hours * float64(time.Hour)))
	midnight := clock.NextMidnight(start)
	if !end.After(midnight) {
		return nil, false
	}
	return []Interval{
		{Start: start, End: midnight},
		{Start: midnight, End: end},
	}, true
}

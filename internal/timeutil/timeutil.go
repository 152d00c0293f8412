package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"trainslot-service/internal/models"
	"trainslot-service/pkg/response"
)

const MinutesPerDay = 24 * 60

// TimeToMinutes converts a zero-padded 24h "HH:MM" string to minutes since
// midnight.
func TimeToMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%q: %w", s, response.ErrMalformedTime)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, response.ErrMalformedTime)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, response.ErrMalformedTime)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%q: %w", s, response.ErrMalformedTime)
	}

	return hours*60 + minutes, nil
}

// MinutesToTime formats minutes since midnight as "HH:MM", zero-padded.
func MinutesToTime(m int) (string, error) {
	if m < 0 {
		return "", fmt.Errorf("%d: %w", m, response.ErrInvalidMinutes)
	}

	return fmt.Sprintf("%02d:%02d", m/60, m%60), nil
}

var weekdayNames = [7]models.DayOfWeek{
	models.Sunday,
	models.Monday,
	models.Tuesday,
	models.Wednesday,
	models.Thursday,
	models.Friday,
	models.Saturday,
}

// DayOfWeekOf resolves the lowercase english weekday of a "YYYY-MM-DD" date.
// The time package computes weekdays on the proleptic Gregorian calendar, so
// the result does not depend on locale or environment.
func DayOfWeekOf(date string) (models.DayOfWeek, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("%q: %w", date, response.ErrMalformedDate)
	}

	return weekdayNames[int(t.Weekday())], nil
}

package membership

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPlanCode is returned when a plan code is not one of the four
// recognized subscription durations.
var ErrInvalidPlanCode = errors.New("invalid plan code")

// PlanCode identifies one of the fixed subscription durations a client can
// purchase. The string values are the ones accepted on the wire.
type PlanCode string

const (
	PlanOneMonth    PlanCode = "1month"
	PlanThreeMonths PlanCode = "3months"
	PlanSixMonths   PlanCode = "6months"
	PlanOneYear     PlanCode = "1year"
)

// ParsePlanCode validates a raw plan string once at the boundary. Anything
// outside the closed set is rejected with ErrInvalidPlanCode.
func ParsePlanCode(raw string) (PlanCode, error) {
	switch PlanCode(raw) {
	case PlanOneMonth, PlanThreeMonths, PlanSixMonths, PlanOneYear:
		return PlanCode(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPlanCode, raw)
}

// Months returns the number of calendar months the plan covers.
func (p PlanCode) Months() (int, error) {
	switch p {
	case PlanOneMonth:
		return 1, nil
	case PlanThreeMonths:
		return 3, nil
	case PlanSixMonths:
		return 6, nil
	case PlanOneYear:
		return 12, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPlanCode, string(p))
}

// ComputePlanEnd adds the plan's whole number of calendar months to start.
// The day of month is preserved where possible and clamped to the last valid
// day otherwise, so Jan 31 + 1 month lands on the last day of February.
func ComputePlanEnd(start time.Time, code PlanCode) (time.Time, error) {
	months, err := code.Months()
	if err != nil {
		return time.Time{}, err
	}
	return addCalendarMonths(DateOnly(start), months), nil
}

// addCalendarMonths implements month addition with day-of-month clamping.
// time.Time.AddDate normalizes overflow (Jan 31 + 1 month = Mar 2/3), which
// is not the calendar-month arithmetic membership plans use.
func addCalendarMonths(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	day := t.Day()
	if last := firstOfTarget.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, t.Location())
}

// DateOnly truncates a timestamp to its UTC calendar date. All plan dates and
// comparisons in the lifecycle are date-granular.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

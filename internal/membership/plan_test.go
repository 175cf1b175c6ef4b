package membership

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParsePlanCode(t *testing.T) {
	for _, raw := range []string{"1month", "3months", "6months", "1year"} {
		code, err := ParsePlanCode(raw)
		require.NoError(t, err)
		assert.Equal(t, PlanCode(raw), code)
	}

	for _, raw := range []string{"", "2months", "1Month", "year", "12"} {
		_, err := ParsePlanCode(raw)
		assert.ErrorIs(t, err, ErrInvalidPlanCode, "raw=%q", raw)
	}
}

func TestComputePlanEnd(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		code  PlanCode
		want  time.Time
	}{
		{"one month", date(2024, time.March, 15), PlanOneMonth, date(2024, time.April, 15)},
		{"three months", date(2024, time.March, 15), PlanThreeMonths, date(2024, time.June, 15)},
		{"six months", date(2024, time.March, 15), PlanSixMonths, date(2024, time.September, 15)},
		{"one year", date(2024, time.March, 15), PlanOneYear, date(2025, time.March, 15)},
		{"jan 31 clamps to leap feb", date(2024, time.January, 31), PlanOneMonth, date(2024, time.February, 29)},
		{"jan 31 clamps to non-leap feb", date(2023, time.January, 31), PlanOneMonth, date(2023, time.February, 28)},
		{"may 31 clamps to june 30", date(2024, time.May, 31), PlanOneMonth, date(2024, time.June, 30)},
		{"aug 31 three months to nov 30", date(2024, time.August, 31), PlanThreeMonths, date(2024, time.November, 30)},
		{"year wrap", date(2024, time.November, 10), PlanThreeMonths, date(2025, time.February, 10)},
		{"leap day plus year", date(2024, time.February, 29), PlanOneYear, date(2025, time.February, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputePlanEnd(tt.start, tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputePlanEndRejectsUnknownCode(t *testing.T) {
	_, err := ComputePlanEnd(date(2024, time.January, 1), PlanCode("forever"))
	assert.ErrorIs(t, err, ErrInvalidPlanCode)
}

func TestComputePlanEndNormalizesTimeOfDay(t *testing.T) {
	start := time.Date(2024, time.March, 15, 18, 42, 7, 0, time.UTC)
	got, err := ComputePlanEnd(start, PlanOneMonth)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.April, 15), got)
}

func TestDeriveStatus(t *testing.T) {
	ref := date(2024, time.May, 1)

	assert.Equal(t, StatusActive, DeriveStatus(date(2024, time.May, 2), ref))
	assert.Equal(t, StatusActive, DeriveStatus(ref, ref), "plan ending today is still active")
	assert.Equal(t, StatusExpired, DeriveStatus(date(2024, time.April, 30), ref))
}

func TestNextCustomID(t *testing.T) {
	assert.Equal(t, "GS001", NextCustomID(0))
	assert.Equal(t, "GS002", NextCustomID(1))
	assert.Equal(t, "GS043", NextCustomID(42))
	assert.Equal(t, "GS100", NextCustomID(99))
	// the pad widens past three digits instead of wrapping
	assert.Equal(t, "GS1000", NextCustomID(999))
}

func TestParseStatusFilter(t *testing.T) {
	for _, raw := range []string{"all", "active", "inactive", "expiring"} {
		f, err := ParseStatusFilter(raw)
		require.NoError(t, err)
		assert.Equal(t, StatusFilter(raw), f)
	}
	_, err := ParseStatusFilter("expired-soon")
	assert.Error(t, err)
}

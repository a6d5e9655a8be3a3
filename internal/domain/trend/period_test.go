package trend

import (
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		input string
		want  Period
	}{
		{"day", PeriodDay},
		{"week", PeriodWeek},
		{"month", PeriodMonth},
		{"", PeriodWeek},
		{"year", PeriodWeek},
		{"DAY", PeriodWeek},
	}

	for _, tt := range tests {
		if got := ParsePeriod(tt.input); got != tt.want {
			t.Errorf("ParsePeriod(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPeriodWindow(t *testing.T) {
	tests := []struct {
		period Period
		want   time.Duration
	}{
		{PeriodDay, 24 * time.Hour},
		{PeriodWeek, 7 * 24 * time.Hour},
		{PeriodMonth, 30 * 24 * time.Hour},
	}

	for _, tt := range tests {
		if got := tt.period.Window(); got != tt.want {
			t.Errorf("%q.Window() = %v, want %v", tt.period, got, tt.want)
		}
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "trend_name"}
	want := "missing required field: trend_name"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

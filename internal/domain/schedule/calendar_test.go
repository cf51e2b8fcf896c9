package schedule

import (
	"testing"
	"time"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2100, time.February, 28}, // divisible by 100 but not 400
		{2000, time.February, 29}, // divisible by 400
		{2024, time.April, 30},
		{2024, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestClampDay(t *testing.T) {
	tests := []struct {
		day   int
		year  int
		month time.Month
		want  int
	}{
		{31, 2024, time.February, 29},
		{31, 2023, time.February, 28},
		{31, 2024, time.April, 30},
		{15, 2024, time.February, 15},
		{1, 2024, time.January, 1},
	}

	for _, tt := range tests {
		if got := ClampDay(tt.day, tt.year, tt.month); got != tt.want {
			t.Errorf("ClampDay(%d, %d, %s) = %d, want %d", tt.day, tt.year, tt.month, got, tt.want)
		}
	}
}

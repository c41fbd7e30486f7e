package domain

import (
	"math"
	"testing"
	"time"
)

func TestMonthKeyOf(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "2026-03"},
		{time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC), "2026-03"},
		{time.Date(2025, 12, 15, 12, 0, 0, 0, time.UTC), "2025-12"},
	}
	for _, tt := range tests {
		if got := MonthKeyOf(tt.date); got != tt.want {
			t.Errorf("MonthKeyOf(%v) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestMonthlyCostsTotal(t *testing.T) {
	costs := MonthlyCosts{Rent: 1000, Utilities: 250, Staff: 3000, Other: 50}
	if got := costs.Total(); got != 4300 {
		t.Errorf("Total() = %v, want 4300", got)
	}

	if got := (MonthlyCosts{}).Total(); got != 0 {
		t.Errorf("zero record Total() = %v, want 0", got)
	}
}

func TestMonthlyCostsTotalIgnoresNonNumeric(t *testing.T) {
	costs := MonthlyCosts{
		Rent:      1000,
		Utilities: math.NaN(),
		Staff:     math.Inf(1),
		Other:     50,
	}
	if got := costs.Total(); got != 1050 {
		t.Errorf("Total() with corrupt fields = %v, want 1050", got)
	}
}

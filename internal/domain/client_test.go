package domain

import (
	"testing"
	"time"
)

func TestStatusAt(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	days := func(d int) *time.Time {
		v := now.AddDate(0, 0, d)
		return &v
	}

	tests := []struct {
		name       string
		expiration *time.Time
		want       MembershipStatus
	}{
		{"nil expiration", nil, StatusExpired},
		{"zero expiration", &time.Time{}, StatusExpired},
		{"far future", days(90), StatusActive},
		{"tomorrow", days(1), StatusActive},
		{"expires exactly now", &now, StatusActive},
		{"hours overdue", func() *time.Time { v := now.Add(-3 * time.Hour); return &v }(), StatusRisk},
		{"three days overdue", days(-3), StatusRisk},
		{"seven days overdue", days(-7), StatusRisk},
		{"eight days overdue", days(-8), StatusExpired},
		{"a month overdue", days(-30), StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusAt(tt.expiration, now); got != tt.want {
				t.Errorf("StatusAt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusAtIsPure(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	exp := now.AddDate(0, 0, -2)

	first := StatusAt(&exp, now)
	for i := 0; i < 10; i++ {
		if got := StatusAt(&exp, now); got != first {
			t.Fatalf("classification changed between calls: %q then %q", first, got)
		}
	}
	if !exp.Equal(now.AddDate(0, 0, -2)) {
		t.Error("StatusAt mutated its expiration argument")
	}
}

func TestClientStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	exp := now.AddDate(0, 0, 10)

	c := Client{ExpirationDate: &exp}
	if got := c.Status(now); got != StatusActive {
		t.Errorf("Status() = %q, want %q", got, StatusActive)
	}

	c.ExpirationDate = nil
	if got := c.Status(now); got != StatusExpired {
		t.Errorf("Status() without expiration = %q, want %q", got, StatusExpired)
	}
}

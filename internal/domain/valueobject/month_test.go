package valueobject

import (
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	t.Run("valid month key", func(t *testing.T) {
		m, err := ParseMonth("2025-03")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.String() != "2025-03" {
			t.Errorf("expected 2025-03, got %s", m.String())
		}
	})

	t.Run("bounds are half-open calendar month", func(t *testing.T) {
		m, err := ParseMonth("2025-01")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		start, end := m.Bounds()
		if start.Day() != 1 || start.Month() != time.January || start.Year() != 2025 {
			t.Errorf("unexpected start: %v", start)
		}
		if end.Day() != 1 || end.Month() != time.February || end.Year() != 2025 {
			t.Errorf("unexpected end: %v", end)
		}
	})

	t.Run("december rolls into next year", func(t *testing.T) {
		m, err := ParseMonth("2024-12")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, end := m.Bounds()
		if end.Year() != 2025 || end.Month() != time.January {
			t.Errorf("unexpected end: %v", end)
		}
	})

	t.Run("rejects malformed keys", func(t *testing.T) {
		for _, key := range []string{"", "2025", "2025-3", "2025/03", "25-03", "2025-033", "march"} {
			if _, err := ParseMonth(key); err == nil {
				t.Errorf("expected error for %q", key)
			}
		}
	})

	t.Run("rejects out-of-range month numbers", func(t *testing.T) {
		if _, err := ParseMonth("2025-13"); err == nil {
			t.Error("expected error for month 13")
		}
		if _, err := ParseMonth("2025-00"); err == nil {
			t.Error("expected error for month 00")
		}
	})
}

func TestMonthOf(t *testing.T) {
	m := MonthOf(time.Date(2025, time.August, 17, 14, 30, 0, 0, time.UTC))
	if m.String() != "2025-08" {
		t.Errorf("expected 2025-08, got %s", m.String())
	}
	start, end := m.Bounds()
	if !start.Equal(time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start: %v", start)
	}
	if !end.Equal(time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected end: %v", end)
	}
}

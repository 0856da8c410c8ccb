package schedule

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:00", 420, false},
		{"16:50", 1010, false},
		{"7:00", 420, false}, // time.Parse accepts an unpadded hour
		{"25:00", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeClock(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"08:00", "08:00", false},
		{"8:00", "08:00", false},
		{"8:05", "08:05", false},
		{"8:5", "", true}, // the minute, unlike the hour, must be padded
		{"noon", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeClock(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(420); got != "07:00" {
		t.Errorf("FormatClock(420) = %q", got)
	}
	if got := FormatClock(1015); got != "16:55" {
		t.Errorf("FormatClock(1015) = %q", got)
	}
}

func TestStartOfISOWeek(t *testing.T) {
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		in   time.Time
	}{
		{"monday itself", time.Date(2025, 3, 10, 23, 59, 0, 0, time.Local)},
		{"mid-week", time.Date(2025, 3, 12, 9, 0, 0, 0, time.Local)},
		{"saturday", time.Date(2025, 3, 15, 6, 0, 0, 0, time.Local)},
		{"sunday belongs to the preceding monday", time.Date(2025, 3, 16, 12, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		if got := StartOfISOWeek(tt.in); !got.Equal(monday) {
			t.Errorf("%s: StartOfISOWeek = %v, want %v", tt.name, got, monday)
		}
	}
}

func TestCombineDateClock(t *testing.T) {
	got, err := CombineDateClock("2025-03-10", "08:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 3, 10, 8, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("CombineDateClock = %v, want %v", got, want)
	}

	if _, err := CombineDateClock("10/03/2025", "08:30"); err == nil {
		t.Error("expected error for malformed date")
	}
	if _, err := CombineDateClock("2025-03-10", "8h30"); err == nil {
		t.Error("expected error for malformed clock")
	}
}

func TestIsPastSlot(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

	if !IsPastSlot("2025-03-10", "11:50", now) {
		t.Error("a slot that already started must be past")
	}
	if IsPastSlot("2025-03-10", "12:00", now) {
		t.Error("a slot starting exactly now is not past")
	}
	if IsPastSlot("2025-03-10", "12:10", now) {
		t.Error("a future slot is not past")
	}
	if !IsPastSlot("bad-date", "12:10", now) {
		t.Error("malformed input must count as past")
	}
}

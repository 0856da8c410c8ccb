package schedule

import (
	"reflect"
	"testing"
	"time"
)

// mondayMorning is a Monday so the full two-week horizon is still ahead.
var mondayMorning = time.Date(2025, 3, 10, 6, 30, 0, 0, time.Local)

func TestHorizonDates(t *testing.T) {
	dates := HorizonDates(mondayMorning)
	if len(dates) != 12 {
		t.Fatalf("expected 12 horizon dates, got %d", len(dates))
	}
	if dates[0] != "2025-03-10" {
		t.Errorf("expected horizon to start on Monday 2025-03-10, got %s", dates[0])
	}
	if dates[5] != "2025-03-15" {
		t.Errorf("expected sixth date to be Saturday 2025-03-15, got %s", dates[5])
	}
	if dates[6] != "2025-03-17" {
		t.Errorf("expected horizon to skip Sunday, got %s", dates[6])
	}
	if dates[11] != "2025-03-22" {
		t.Errorf("expected horizon to end on Saturday 2025-03-22, got %s", dates[11])
	}
}

func TestBuildHorizonDefaultSchedule(t *testing.T) {
	days := BuildHorizon(HorizonInput{Now: mondayMorning})

	if len(days) != 12 {
		t.Fatalf("expected 12 days on a Monday, got %d", len(days))
	}

	// Monday of the current week gets the synthetic 07:00-17:00 day.
	monday := days[0]
	if monday.HasAPISchedule {
		t.Error("synthetic day must not be flagged as declared")
	}
	if len(monday.Slots) != 60 {
		t.Fatalf("expected 60 ten-minute slots in the synthetic day, got %d", len(monday.Slots))
	}
	if monday.Slots[0].StartTime != "07:00" || monday.Slots[0].EndTime != "07:10" {
		t.Errorf("unexpected first slot %s-%s", monday.Slots[0].StartTime, monday.Slots[0].EndTime)
	}
	if monday.Slots[59].StartTime != "16:50" || monday.Slots[59].EndTime != "17:00" {
		t.Errorf("unexpected last slot %s-%s", monday.Slots[59].StartTime, monday.Slots[59].EndTime)
	}

	// Saturday of the current week stays empty under the synthetic schedule,
	// while Saturday of the next week is populated.
	thisSaturday := days[5]
	if thisSaturday.Date != "2025-03-15" || len(thisSaturday.Slots) != 0 {
		t.Errorf("expected empty current-week Saturday, got %d slots on %s",
			len(thisSaturday.Slots), thisSaturday.Date)
	}
	nextSaturday := days[11]
	if nextSaturday.Date != "2025-03-22" || len(nextSaturday.Slots) != 60 {
		t.Errorf("expected populated next-week Saturday, got %d slots on %s",
			len(nextSaturday.Slots), nextSaturday.Date)
	}

	for _, day := range days[:6] {
		if day.WeekLabel != WeekLabelThisWeek {
			t.Errorf("day %s: expected week label %q, got %q", day.Date, WeekLabelThisWeek, day.WeekLabel)
		}
	}
	for _, day := range days[6:] {
		if day.WeekLabel != WeekLabelNextWeek {
			t.Errorf("day %s: expected week label %q, got %q", day.Date, WeekLabelNextWeek, day.WeekLabel)
		}
	}
}

func TestBuildHorizonDropsPastDates(t *testing.T) {
	// Wednesday of the same week: Monday and Tuesday must be gone.
	wednesday := time.Date(2025, 3, 12, 9, 0, 0, 0, time.Local)
	days := BuildHorizon(HorizonInput{Now: wednesday})

	if len(days) != 10 {
		t.Fatalf("expected 10 days mid-week, got %d", len(days))
	}
	if days[0].Date != "2025-03-12" {
		t.Errorf("expected first day to be today, got %s", days[0].Date)
	}
}

func TestBuildHorizonDeclaredIntervals(t *testing.T) {
	intervals := map[string][]WorkInterval{
		"2025-03-11": {
			{StartTime: "08:00", EndTime: "09:00"},
			{StartTime: "13:30", EndTime: "14:00"},
		},
	}
	days := BuildHorizon(HorizonInput{Now: mondayMorning, Intervals: intervals})

	tuesday := days[1]
	if !tuesday.HasAPISchedule {
		t.Error("declared day must be flagged as declared")
	}
	if len(tuesday.Slots) != 9 {
		t.Fatalf("expected 6+3 slots from the declared intervals, got %d", len(tuesday.Slots))
	}
	if tuesday.Slots[6].StartTime != "13:30" {
		t.Errorf("expected second interval to start at 13:30, got %s", tuesday.Slots[6].StartTime)
	}

	// A declared current week suppresses the synthetic day on its other days.
	if len(days[0].Slots) != 0 {
		t.Errorf("expected empty Monday when Tuesday is declared, got %d slots", len(days[0].Slots))
	}

	// The next week declared nothing, so it alone falls back to the synthetic
	// day, Saturday included.
	for _, day := range days[6:] {
		if len(day.Slots) != 60 {
			t.Errorf("day %s: expected synthetic next-week day, got %d slots", day.Date, len(day.Slots))
		}
	}
}

func TestBuildHorizonDiscardsTrailingRemainder(t *testing.T) {
	intervals := map[string][]WorkInterval{
		"2025-03-10": {{StartTime: "07:00", EndTime: "07:25"}},
	}
	days := BuildHorizon(HorizonInput{Now: mondayMorning, Intervals: intervals})

	if got := len(days[0].Slots); got != 2 {
		t.Fatalf("expected the 5-minute remainder to be discarded, got %d slots", got)
	}
}

func TestBuildHorizonIgnoresMalformedIntervals(t *testing.T) {
	intervals := map[string][]WorkInterval{
		"2025-03-10": {
			{StartTime: "late", EndTime: "17:00"},
			{StartTime: "08:00", EndTime: "08:30"},
		},
	}
	days := BuildHorizon(HorizonInput{Now: mondayMorning, Intervals: intervals})

	if got := len(days[0].Slots); got != 3 {
		t.Fatalf("expected only the well-formed interval's slots, got %d", got)
	}
}

func TestBuildHorizonBlocking(t *testing.T) {
	intervals := map[string][]WorkInterval{
		"2025-03-10": {{StartTime: "08:00", EndTime: "09:00"}},
	}
	booked := map[string][]BookedSlot{
		"2025-03-10": {
			{StartTime: "08:00", EndTime: "08:10"},                  // blocks
			{StartTime: "08:10", EndTime: "08:20", Cancelled: true}, // cancelled, ignored
			{StartTime: "08:20", EndTime: "08:30", Child: true},     // child, ignored
			{StartTime: "08:30", EndTime: "08:50"},                  // not an exact slot match
		},
	}
	days := BuildHorizon(HorizonInput{Now: mondayMorning, Intervals: intervals, Booked: booked})

	slots := days[0].Slots
	want := []bool{false, true, true, true, true, true}
	for i, slot := range slots {
		if slot.Available != want[i] {
			t.Errorf("slot %s-%s: available = %v, want %v", slot.StartTime, slot.EndTime, slot.Available, want[i])
		}
	}
}

func TestBuildHorizonBlockingRequiresNormalizedClocks(t *testing.T) {
	intervals := map[string][]WorkInterval{
		"2025-03-10": {{StartTime: "08:00", EndTime: "09:00"}},
	}

	// Clients submit clocks in assorted paddings; the write path runs them
	// through NormalizeClock so the exact-string match here sees "08:00".
	start, err := NormalizeClock("8:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	end, err := NormalizeClock("8:10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	booked := map[string][]BookedSlot{
		"2025-03-10": {{StartTime: start, EndTime: end}},
	}

	days := BuildHorizon(HorizonInput{Now: mondayMorning, Intervals: intervals, Booked: booked})
	first := days[0].Slots[0]
	if first.StartTime != "08:00" || first.Available {
		t.Errorf("slot %s-%s: expected the normalized booking to block it", first.StartTime, first.EndTime)
	}
}

func TestBuildHorizonDeterministic(t *testing.T) {
	in := HorizonInput{
		Now: mondayMorning,
		Intervals: map[string][]WorkInterval{
			"2025-03-11": {{StartTime: "08:00", EndTime: "12:00"}},
		},
		Booked: map[string][]BookedSlot{
			"2025-03-11": {{StartTime: "08:00", EndTime: "08:10"}},
		},
	}
	if !reflect.DeepEqual(BuildHorizon(in), BuildHorizon(in)) {
		t.Error("identical inputs must derive identical horizons")
	}
}

func TestDefaultDayIndex(t *testing.T) {
	now := mondayMorning
	days := BuildHorizon(HorizonInput{Now: now})

	// Today has slots, so it is the opening day.
	if got := DefaultDayIndex(days, now); got != 0 {
		t.Errorf("expected today's index 0, got %d", got)
	}

	// With today empty the first day with a selectable slot wins; the
	// current-week Saturday gap must be skipped.
	intervals := map[string][]WorkInterval{
		"2025-03-15": {}, // Saturday stays empty
		"2025-03-13": {{StartTime: "10:00", EndTime: "11:00"}},
	}
	days = BuildHorizon(HorizonInput{Now: now, Intervals: intervals})
	if got := DefaultDayIndex(days, now); got != 3 {
		t.Errorf("expected first selectable day at index 3, got %d", got)
	}

	// No selectable slot anywhere falls back to index zero. Both weeks
	// declare a single slot so neither gets the synthetic day, and both
	// slots are already taken.
	intervals = map[string][]WorkInterval{
		"2025-03-13": {{StartTime: "10:00", EndTime: "10:10"}},
		"2025-03-18": {{StartTime: "10:00", EndTime: "10:10"}},
	}
	booked := map[string][]BookedSlot{
		"2025-03-13": {{StartTime: "10:00", EndTime: "10:10"}},
		"2025-03-18": {{StartTime: "10:00", EndTime: "10:10"}},
	}
	days = BuildHorizon(HorizonInput{Now: now, Intervals: intervals, Booked: booked})
	if got := DefaultDayIndex(days, now); got != 0 {
		t.Errorf("expected fallback index 0, got %d", got)
	}
}

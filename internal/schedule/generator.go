package schedule

import "time"

// Defaults used when HorizonInput leaves the corresponding field zero.
const (
	DefaultSlotMinutes = 10
	DefaultDayStart    = "07:00"
	DefaultDayEnd      = "17:00"
)

// HorizonInput carries everything BuildHorizon needs. Intervals and Booked are
// keyed by "YYYY-MM-DD" work date; both may be sparse or empty.
type HorizonInput struct {
	Now       time.Time
	Intervals map[string][]WorkInterval
	Booked    map[string][]BookedSlot

	// Optional overrides; zero values fall back to the package defaults.
	SlotMinutes     int
	DefaultDayStart string
	DefaultDayEnd   string
}

// HorizonDates lists the work dates of the two-week horizon: Monday through
// Saturday of now's ISO week and of the following week. Callers use it to
// fan out per-date appointment fetches before deriving the schedule.
func HorizonDates(now time.Time) []string {
	monday := StartOfISOWeek(now)
	dates := make([]string, 0, 12)
	for week := 0; week < 2; week++ {
		for day := 0; day < 6; day++ {
			dates = append(dates, FormatWorkDate(monday.AddDate(0, 0, week*7+day)))
		}
	}
	return dates
}

// BuildHorizon derives the bookable calendar for the two-week horizon.
//
// Days the doctor declared intervals for get those intervals verbatim. When
// the doctor declared nothing in either week, a synthetic working day is
// used instead: Monday-Friday of the current week and Monday-Saturday of the
// next. The next week also falls back to the synthetic day when it alone is
// empty. The Saturday asymmetry between the two weeks reproduces observed
// production behavior and is deliberately left uncorrected.
//
// Past dates of the current week are dropped. Sundays are never part of the
// horizon.
func BuildHorizon(in HorizonInput) []DaySchedule {
	slotMinutes := in.SlotMinutes
	if slotMinutes <= 0 {
		slotMinutes = DefaultSlotMinutes
	}
	dayStart := in.DefaultDayStart
	if dayStart == "" {
		dayStart = DefaultDayStart
	}
	dayEnd := in.DefaultDayEnd
	if dayEnd == "" {
		dayEnd = DefaultDayEnd
	}
	defaultInterval := WorkInterval{StartTime: dayStart, EndTime: dayEnd}

	monday := StartOfISOWeek(in.Now)
	today := startOfDay(in.Now)

	hasThisWeek := weekHasIntervals(in.Intervals, monday, 0)
	hasNextWeek := weekHasIntervals(in.Intervals, monday, 7)
	useDefault := !hasThisWeek && !hasNextWeek

	days := make([]DaySchedule, 0, 12)

	// Current week: Monday-Saturday, past dates dropped.
	for offset := 0; offset < 6; offset++ {
		date := monday.AddDate(0, 0, offset)
		if date.Before(today) {
			continue
		}
		key := FormatWorkDate(date)
		intervals := in.Intervals[key]
		hasAPI := len(intervals) > 0
		if !hasAPI && useDefault && offset < 5 { // synthetic day excludes Saturday this week
			intervals = []WorkInterval{defaultInterval}
		}
		days = append(days, buildDay(date, WeekLabelThisWeek, intervals, hasAPI, in.Booked[key], slotMinutes))
	}

	// Next week: Monday-Saturday, synthetic fallback covers Saturday too.
	for offset := 7; offset < 13; offset++ {
		date := monday.AddDate(0, 0, offset)
		key := FormatWorkDate(date)
		intervals := in.Intervals[key]
		hasAPI := len(intervals) > 0
		if !hasAPI && !hasNextWeek {
			intervals = []WorkInterval{defaultInterval}
		}
		days = append(days, buildDay(date, WeekLabelNextWeek, intervals, hasAPI, in.Booked[key], slotMinutes))
	}

	return days
}

// weekHasIntervals reports whether any declared interval falls in the six-day
// week starting at monday+startOffset.
func weekHasIntervals(intervals map[string][]WorkInterval, monday time.Time, startOffset int) bool {
	for day := 0; day < 6; day++ {
		if len(intervals[FormatWorkDate(monday.AddDate(0, 0, startOffset+day))]) > 0 {
			return true
		}
	}
	return false
}

// buildDay emits the fixed-width slots of one calendar day. Each interval
// [s, e) yields exactly (e-s)/slotMinutes contiguous slots; a trailing
// remainder shorter than one slot is not emitted. Malformed intervals yield
// no slots.
func buildDay(date time.Time, weekLabel string, intervals []WorkInterval, hasAPI bool, booked []BookedSlot, slotMinutes int) DaySchedule {
	slots := make([]TimeSlot, 0)
	for _, interval := range intervals {
		start, err := ParseClock(interval.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseClock(interval.EndTime)
		if err != nil {
			continue
		}
		for t := start; t+slotMinutes <= end; t += slotMinutes {
			slotStart := FormatClock(t)
			slotEnd := FormatClock(t + slotMinutes)
			slots = append(slots, TimeSlot{
				StartTime: slotStart,
				EndTime:   slotEnd,
				Available: !slotBlocked(booked, slotStart, slotEnd),
			})
		}
	}
	return DaySchedule{
		Date:           FormatWorkDate(date),
		Label:          dayLabel(date),
		WeekLabel:      weekLabel,
		Slots:          slots,
		HasAPISchedule: hasAPI,
	}
}

// slotBlocked reports whether some top-level, non-cancelled appointment
// exactly occupies the slot. Child appointments never block slots.
func slotBlocked(booked []BookedSlot, startTime, endTime string) bool {
	for _, b := range booked {
		if b.Cancelled || b.Child {
			continue
		}
		if b.StartTime == startTime && b.EndTime == endTime {
			return true
		}
	}
	return false
}

// DefaultDayIndex selects the day initially shown on the calendar: today when
// it has slots, otherwise the first day with a selectable slot, otherwise
// day zero.
func DefaultDayIndex(days []DaySchedule, now time.Time) int {
	today := FormatWorkDate(now)
	for i, day := range days {
		if day.Date == today && len(day.Slots) > 0 {
			return i
		}
	}
	for i, day := range days {
		for _, slot := range day.Slots {
			if slot.Available && !IsPastSlot(day.Date, slot.StartTime, now) {
				return i
			}
		}
	}
	return 0
}

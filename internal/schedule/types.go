// Package schedule implements the appointment slot engine: derivation of
// bookable time slots over a two-week horizon from a doctor's declared
// availability and existing appointments, the booking-type selection state
// machine, and the pricing projection for online bookings.
//
// The engine is pure: it performs no I/O and is a deterministic function of
// its inputs plus the caller-supplied wall-clock "now". Callers own fetch
// orchestration and error handling.
package schedule

// Week labels shown on the booking calendar.
const (
	WeekLabelThisWeek = "Tuần này"
	WeekLabelNextWeek = "Tuần sau"
)

// WorkInterval is a doctor-declared contiguous availability window on one
// date, wall-clock "HH:mm" on both ends.
type WorkInterval struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// TimeSlot is a fixed-width bookable subdivision of a WorkInterval, half-open
// [StartTime, EndTime). Available is false iff an existing top-level
// non-cancelled appointment exactly occupies the slot.
type TimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// BookedSlot is the narrow appointment view the generator needs for
// availability marking.
type BookedSlot struct {
	StartTime string
	EndTime   string
	Cancelled bool
	Child     bool
}

// DaySchedule is one calendar day's derived slots. It is an immutable
// snapshot: recomputed whenever the doctor or date range changes, never
// persisted.
type DaySchedule struct {
	Date           string     `json:"date"` // YYYY-MM-DD
	Label          string     `json:"label"`
	WeekLabel      string     `json:"weekLabel"`
	Slots          []TimeSlot `json:"slots"`
	HasAPISchedule bool       `json:"hasApiSchedule"`
}

package schedule

import (
	"errors"
	"time"
)

// Slot-selection rejection reasons. The engine reports every rejection as a
// typed error; callers decide whether to surface it or log and ignore.
var (
	ErrBookingTypeUnset = errors.New("schedule: booking type not chosen")
	ErrWrongBookingType = errors.New("schedule: operation not valid for this booking type")
	ErrStepOutOfRange   = errors.New("schedule: diagnostic step out of range")
	ErrSlotUnavailable  = errors.New("schedule: slot is not available")
	ErrSlotInPast       = errors.New("schedule: slot start is in the past")
	ErrSlotOutOfOrder   = errors.New("schedule: slot starts before the previous step ends")
	ErrStepsIncomplete  = errors.New("schedule: diagnostic steps are incomplete")
	ErrDayOverflow      = errors.New("schedule: glued diagnostic steps would run past midnight")
)

// BookingType selects which rules govern slot selection.
type BookingType int

const (
	BookingTypeUnset BookingType = iota
	BookingTypeConsultationOnly
	BookingTypeServiceAndConsultation
)

// ServiceRef identifies one selected diagnostic service when entering the
// service-and-consultation flow.
type ServiceRef struct {
	ID                 string
	Name               string
	MinDurationMinutes int
}

// DiagnosticSlot is a provisional, not-yet-committed slot assignment for one
// selected diagnostic service. StartTime and EndTime stay empty until the
// step is assigned.
type DiagnosticSlot struct {
	ServiceID   string `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Duration    int    `json:"duration"` // minutes
}

// Assigned reports whether the step has both of its times set.
func (d DiagnosticSlot) Assigned() bool {
	return d.StartTime != "" && d.EndTime != ""
}

// SlotChoice is a committed pick of one calendar slot.
type SlotChoice struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Selection tracks an in-progress booking: which flow the patient chose and
// which slots are picked so far. All fields are private; every mutation goes
// through a guarded transition, so an illegal combination (for example a
// consultation slot alongside unfilled diagnostic steps) cannot be reached.
//
// A Selection belongs to a single booking session and is not safe for
// concurrent use.
type Selection struct {
	bookingType  BookingType
	diagnostics  []DiagnosticSlot
	consultation *SlotChoice
}

// NewSelection returns a Selection in the unset state.
func NewSelection() *Selection {
	return &Selection{}
}

// BookingType returns the currently chosen flow.
func (s *Selection) BookingType() BookingType {
	return s.bookingType
}

// Reset returns the selection to the unset state, dropping all picks.
func (s *Selection) Reset() {
	s.bookingType = BookingTypeUnset
	s.diagnostics = nil
	s.consultation = nil
}

// ChooseConsultationOnly enters the plain-consultation flow. Any diagnostic
// placeholders and any previously chosen consultation slot are cleared.
func (s *Selection) ChooseConsultationOnly() {
	s.bookingType = BookingTypeConsultationOnly
	s.diagnostics = nil
	s.consultation = nil
}

// ChooseServiceAndConsultation enters the services-then-consultation flow,
// creating one empty placeholder per selected service in selection order.
// The previously chosen consultation slot, if any, is cleared.
func (s *Selection) ChooseServiceAndConsultation(services []ServiceRef) {
	s.bookingType = BookingTypeServiceAndConsultation
	s.diagnostics = make([]DiagnosticSlot, len(services))
	for i, svc := range services {
		s.diagnostics[i] = DiagnosticSlot{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			Duration:    svc.MinDurationMinutes,
		}
	}
	s.consultation = nil
}

// SelectDiagnosticSlot assigns the candidate slot to diagnostic step. The
// slot must be available, not in the past, and must not start before the
// previous step ends. On acceptance every later step is re-glued to start
// immediately after its predecessor.
func (s *Selection) SelectDiagnosticSlot(step int, date string, slot TimeSlot, now time.Time) error {
	if s.bookingType == BookingTypeUnset {
		return ErrBookingTypeUnset
	}
	if s.bookingType != BookingTypeServiceAndConsultation {
		return ErrWrongBookingType
	}
	if step < 0 || step >= len(s.diagnostics) {
		return ErrStepOutOfRange
	}
	if !slot.Available {
		return ErrSlotUnavailable
	}
	if IsPastSlot(date, slot.StartTime, now) {
		return ErrSlotInPast
	}
	start, err := ParseClock(slot.StartTime)
	if err != nil {
		return err
	}
	if step > 0 {
		prev := s.diagnostics[step-1]
		if !prev.Assigned() {
			return ErrStepsIncomplete
		}
		prevEnd, err := ParseClock(prev.EndTime)
		if err != nil {
			return err
		}
		if start < prevEnd {
			return ErrSlotOutOfOrder
		}
	}

	// The glued chain must fit inside the day, or FormatClock would emit
	// nonsense like "24:30" for the trailing steps.
	chain := 0
	for j := step; j < len(s.diagnostics); j++ {
		chain += s.diagnostics[j].Duration
	}
	if start+chain > 24*60 {
		return ErrDayOverflow
	}

	s.diagnostics[step].StartTime = slot.StartTime
	cursor := start + s.diagnostics[step].Duration
	s.diagnostics[step].EndTime = FormatClock(cursor)

	// Re-glue every subsequent step right after its predecessor.
	for j := step + 1; j < len(s.diagnostics); j++ {
		s.diagnostics[j].StartTime = FormatClock(cursor)
		cursor += s.diagnostics[j].Duration
		s.diagnostics[j].EndTime = FormatClock(cursor)
	}

	if !s.allDiagnosticsAssigned() {
		s.consultation = nil
	} else if s.consultation != nil {
		// The cascade may have pushed the last diagnostic past a consultation
		// slot chosen earlier; a stale pick must not survive.
		consultStart, err1 := ParseClock(s.consultation.StartTime)
		lastEnd, err2 := ParseClock(s.diagnostics[len(s.diagnostics)-1].EndTime)
		if err1 != nil || err2 != nil || consultStart < lastEnd {
			s.consultation = nil
		}
	}
	return nil
}

// SelectConsultationSlot assigns the final consultation slot. In the
// service-and-consultation flow all diagnostic steps must already be filled
// and the slot must not start before the last of them ends.
func (s *Selection) SelectConsultationSlot(date string, slot TimeSlot, now time.Time) error {
	switch s.bookingType {
	case BookingTypeUnset:
		return ErrBookingTypeUnset
	case BookingTypeServiceAndConsultation:
		if !s.allDiagnosticsAssigned() {
			return ErrStepsIncomplete
		}
	}
	if !slot.Available {
		return ErrSlotUnavailable
	}
	if IsPastSlot(date, slot.StartTime, now) {
		return ErrSlotInPast
	}
	if s.bookingType == BookingTypeServiceAndConsultation && len(s.diagnostics) > 0 {
		start, err := ParseClock(slot.StartTime)
		if err != nil {
			return err
		}
		lastEnd, err := ParseClock(s.diagnostics[len(s.diagnostics)-1].EndTime)
		if err != nil {
			return err
		}
		if start < lastEnd {
			return ErrSlotOutOfOrder
		}
	}
	s.consultation = &SlotChoice{Date: date, StartTime: slot.StartTime, EndTime: slot.EndTime}
	return nil
}

// ConsultationEnabled reports whether the consultation slot may be picked
// yet: always in the plain flow, only once every diagnostic step is filled
// in the service flow.
func (s *Selection) ConsultationEnabled() bool {
	switch s.bookingType {
	case BookingTypeConsultationOnly:
		return true
	case BookingTypeServiceAndConsultation:
		return s.allDiagnosticsAssigned()
	default:
		return false
	}
}

// DiagnosticSlots returns a copy of the diagnostic placeholders.
func (s *Selection) DiagnosticSlots() []DiagnosticSlot {
	out := make([]DiagnosticSlot, len(s.diagnostics))
	copy(out, s.diagnostics)
	return out
}

// ConsultationSlot returns the chosen consultation slot, or nil.
func (s *Selection) ConsultationSlot() *SlotChoice {
	if s.consultation == nil {
		return nil
	}
	choice := *s.consultation
	return &choice
}

// ReadyToBook reports whether the selection is complete enough to submit:
// a consultation slot in the plain flow, or a consultation slot plus at
// least one assigned diagnostic slot in the service flow.
func (s *Selection) ReadyToBook() bool {
	switch s.bookingType {
	case BookingTypeConsultationOnly:
		return s.consultation != nil
	case BookingTypeServiceAndConsultation:
		if s.consultation == nil {
			return false
		}
		for _, d := range s.diagnostics {
			if d.Assigned() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (s *Selection) allDiagnosticsAssigned() bool {
	for _, d := range s.diagnostics {
		if !d.Assigned() {
			return false
		}
	}
	return len(s.diagnostics) > 0
}

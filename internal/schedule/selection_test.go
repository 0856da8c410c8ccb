package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	selectionNow  = time.Date(2025, 3, 10, 7, 0, 0, 0, time.Local)
	selectionDate = "2025-03-11"
)

func availableSlot(start, end string) TimeSlot {
	return TimeSlot{StartTime: start, EndTime: end, Available: true}
}

func twoServices() []ServiceRef {
	return []ServiceRef{
		{ID: "svc-blood", Name: "Blood panel", MinDurationMinutes: 30},
		{ID: "svc-xray", Name: "X-ray", MinDurationMinutes: 20},
	}
}

func TestSelectionRequiresBookingType(t *testing.T) {
	s := NewSelection()

	err := s.SelectConsultationSlot(selectionDate, availableSlot("08:00", "08:10"), selectionNow)
	assert.ErrorIs(t, err, ErrBookingTypeUnset)

	err = s.SelectDiagnosticSlot(0, selectionDate, availableSlot("08:00", "08:10"), selectionNow)
	assert.ErrorIs(t, err, ErrBookingTypeUnset)

	assert.False(t, s.ConsultationEnabled())
	assert.False(t, s.ReadyToBook())
}

func TestSelectionConsultationOnly(t *testing.T) {
	s := NewSelection()
	s.ChooseConsultationOnly()

	assert.True(t, s.ConsultationEnabled())

	err := s.SelectDiagnosticSlot(0, selectionDate, availableSlot("08:00", "08:10"), selectionNow)
	assert.ErrorIs(t, err, ErrWrongBookingType)

	require.NoError(t, s.SelectConsultationSlot(selectionDate, availableSlot("08:00", "08:10"), selectionNow))
	require.NotNil(t, s.ConsultationSlot())
	assert.Equal(t, "08:00", s.ConsultationSlot().StartTime)
	assert.True(t, s.ReadyToBook())
}

func TestSelectionRejectsBadSlots(t *testing.T) {
	s := NewSelection()
	s.ChooseServiceAndConsultation(twoServices())

	err := s.SelectDiagnosticSlot(5, selectionDate, availableSlot("08:00", "08:10"), selectionNow)
	assert.ErrorIs(t, err, ErrStepOutOfRange)

	taken := TimeSlot{StartTime: "08:00", EndTime: "08:10", Available: false}
	err = s.SelectDiagnosticSlot(0, selectionDate, taken, selectionNow)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	err = s.SelectDiagnosticSlot(0, "2025-03-09", availableSlot("08:00", "08:10"), selectionNow)
	assert.ErrorIs(t, err, ErrSlotInPast)

	// A later step cannot be filled before its predecessor.
	err = s.SelectDiagnosticSlot(1, selectionDate, availableSlot("08:00", "08:10"), selectionNow)
	assert.ErrorIs(t, err, ErrStepsIncomplete)
}

func TestSelectionGluesSubsequentSteps(t *testing.T) {
	s := NewSelection()
	s.ChooseServiceAndConsultation(twoServices())
	assert.False(t, s.ConsultationEnabled())

	require.NoError(t, s.SelectDiagnosticSlot(0, selectionDate, availableSlot("08:00", "08:10"), selectionNow))

	steps := s.DiagnosticSlots()
	require.Len(t, steps, 2)
	assert.Equal(t, "08:00", steps[0].StartTime)
	assert.Equal(t, "08:30", steps[0].EndTime)
	assert.Equal(t, "08:30", steps[1].StartTime)
	assert.Equal(t, "08:50", steps[1].EndTime)
	assert.True(t, s.ConsultationEnabled())

	// Moving the second step later is allowed; earlier than its glue point
	// is not.
	err := s.SelectDiagnosticSlot(1, selectionDate, availableSlot("08:20", "08:30"), selectionNow)
	assert.ErrorIs(t, err, ErrSlotOutOfOrder)

	require.NoError(t, s.SelectDiagnosticSlot(1, selectionDate, availableSlot("09:00", "09:10"), selectionNow))
	steps = s.DiagnosticSlots()
	assert.Equal(t, "09:00", steps[1].StartTime)
	assert.Equal(t, "09:20", steps[1].EndTime)
}

func TestSelectionConsultationOrdering(t *testing.T) {
	s := NewSelection()
	s.ChooseServiceAndConsultation(twoServices())

	err := s.SelectConsultationSlot(selectionDate, availableSlot("10:00", "10:10"), selectionNow)
	assert.ErrorIs(t, err, ErrStepsIncomplete)

	require.NoError(t, s.SelectDiagnosticSlot(0, selectionDate, availableSlot("08:00", "08:10"), selectionNow))

	// Last diagnostic ends at 08:50; the consultation may not start earlier.
	err = s.SelectConsultationSlot(selectionDate, availableSlot("08:40", "08:50"), selectionNow)
	assert.ErrorIs(t, err, ErrSlotOutOfOrder)

	require.NoError(t, s.SelectConsultationSlot(selectionDate, availableSlot("08:50", "09:00"), selectionNow))
	assert.True(t, s.ReadyToBook())
}

func TestSelectionCascadeClearsStaleConsultation(t *testing.T) {
	s := NewSelection()
	s.ChooseServiceAndConsultation(twoServices())

	require.NoError(t, s.SelectDiagnosticSlot(0, selectionDate, availableSlot("08:00", "08:10"), selectionNow))
	require.NoError(t, s.SelectConsultationSlot(selectionDate, availableSlot("08:50", "09:00"), selectionNow))
	require.True(t, s.ReadyToBook())

	// Re-picking the first step pushes the glued chain past the chosen
	// consultation slot, which must then be dropped.
	require.NoError(t, s.SelectDiagnosticSlot(0, selectionDate, availableSlot("09:00", "09:10"), selectionNow))

	assert.Nil(t, s.ConsultationSlot())
	assert.False(t, s.ReadyToBook())

	steps := s.DiagnosticSlots()
	assert.Equal(t, "09:30", steps[1].StartTime)
	assert.Equal(t, "09:50", steps[1].EndTime)
}

func TestSelectionCascadeKeepsLaterConsultation(t *testing.T) {
	s := NewSelection()
	s.ChooseServiceAndConsultation(twoServices())

	require.NoError(t, s.SelectDiagnosticSlot(0, selectionDate, availableSlot("08:00", "08:10"), selectionNow))
	require.NoError(t, s.SelectConsultationSlot(selectionDate, availableSlot("15:00", "15:10"), selectionNow))

	// A small shift that still ends before the consultation keeps the pick.
	require.NoError(t, s.SelectDiagnosticSlot(0, selectionDate, availableSlot("08:30", "08:40"), selectionNow))
	assert.NotNil(t, s.ConsultationSlot())
	assert.True(t, s.ReadyToBook())
}

func TestSelectionRejectsChainPastMidnight(t *testing.T) {
	s := NewSelection()
	s.ChooseServiceAndConsultation([]ServiceRef{
		{ID: "svc-mri", Name: "MRI", MinDurationMinutes: 120},
		{ID: "svc-ct", Name: "CT scan", MinDurationMinutes: 120},
	})

	// 22:00 + 4h of glued steps would end at 02:00 the next day.
	err := s.SelectDiagnosticSlot(0, selectionDate, availableSlot("22:00", "22:10"), selectionNow)
	assert.ErrorIs(t, err, ErrDayOverflow)
	assert.False(t, s.DiagnosticSlots()[0].Assigned(), "a rejected selection must not assign the step")

	// The same chain fits when it starts early enough to end at 23:00.
	require.NoError(t, s.SelectDiagnosticSlot(0, selectionDate, availableSlot("19:00", "19:10"), selectionNow))
	steps := s.DiagnosticSlots()
	assert.Equal(t, "23:00", steps[1].EndTime)
}

func TestSelectionModeSwitchClearsPicks(t *testing.T) {
	s := NewSelection()
	s.ChooseServiceAndConsultation(twoServices())
	require.NoError(t, s.SelectDiagnosticSlot(0, selectionDate, availableSlot("08:00", "08:10"), selectionNow))
	require.NoError(t, s.SelectConsultationSlot(selectionDate, availableSlot("08:50", "09:00"), selectionNow))

	s.ChooseConsultationOnly()
	assert.Empty(t, s.DiagnosticSlots())
	assert.Nil(t, s.ConsultationSlot())
	assert.False(t, s.ReadyToBook())

	s.Reset()
	assert.Equal(t, BookingTypeUnset, s.BookingType())
}

package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mufies/OHMS-GROUP3-sub002/internal/models"
)

func consultationParent() *models.Appointment {
	return &models.Appointment{
		PatientID: "patient-1",
		DoctorID:  "doctor-1",
		WorkDate:  "2025-03-11",
		StartTime: "09:00",
		EndTime:   "09:10",
		Status:    models.StatusConfirmed,
	}
}

func TestChildBookingIssue(t *testing.T) {
	assert.NoError(t, childBookingIssue(consultationParent(), "doctor-1", "2025-03-11", "08:30"))

	// A child ending exactly when the consultation starts is still in order.
	assert.NoError(t, childBookingIssue(consultationParent(), "doctor-1", "2025-03-11", "09:00"))

	cancelled := consultationParent()
	cancelled.Status = models.StatusCancelled
	assert.Error(t, childBookingIssue(cancelled, "doctor-1", "2025-03-11", "08:30"))

	// Diagnostic children belong to the same doctor as their consultation.
	assert.Error(t, childBookingIssue(consultationParent(), "doctor-2", "2025-03-11", "08:30"))

	assert.Error(t, childBookingIssue(consultationParent(), "doctor-1", "2025-03-12", "08:30"),
		"a child on another date cannot precede the consultation")

	assert.Error(t, childBookingIssue(consultationParent(), "doctor-1", "2025-03-11", "09:20"),
		"a child ending after the consultation starts is out of order")
}

package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mufies/OHMS-GROUP3-sub002/internal/middleware"
	"github.com/mufies/OHMS-GROUP3-sub002/internal/models"
	"github.com/mufies/OHMS-GROUP3-sub002/internal/schedule"
	"github.com/mufies/OHMS-GROUP3-sub002/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB    *gorm.DB
	Cache *schedule.HorizonCache
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, cache *schedule.HorizonCache) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Cache: cache}
}

// CreateAppointmentRequest represents the request body for creating an appointment.
type CreateAppointmentRequest struct {
	DoctorID              string   `json:"doctorId" binding:"required,uuid"`
	WorkDate              string   `json:"workDate" binding:"required"`
	StartTime             string   `json:"startTime" binding:"required"`
	EndTime               string   `json:"endTime" binding:"required"`
	MedicalExaminationIDs []string `json:"medicalExaminationIds"`
	Discount              int64    `json:"discount"`
	Deposit               int64    `json:"deposit"`
	DepositStatus         string   `json:"depositStatus" binding:"omitempty,oneof=pending paid"`
	ParentAppointmentID   *string  `json:"parentAppointmentId"`
	Notes                 string   `json:"notes"`
}

// CreateAppointment handles creating a new appointment. The client's view of
// slot availability is advisory; the authoritative conflict check happens
// here, at submission.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Patient ID not found in token")
		return
	}

	// Verify doctor exists and is a doctor
	var doctor models.User
	if err := h.DB.Where("id = ? AND role = ?", req.DoctorID, models.RoleDoctor).First(&doctor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found or user is not a doctor")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}

	// Normalize clocks to the padded form before anything compares or stores
	// them; slot matching is exact-string, so "8:00" must become "08:00".
	startTime, err := schedule.NormalizeClock(req.StartTime)
	if err != nil {
		utils.BadRequest(c, "Invalid start time: "+req.StartTime)
		return
	}
	endTime, err := schedule.NormalizeClock(req.EndTime)
	if err != nil {
		utils.BadRequest(c, "Invalid end time: "+req.EndTime)
		return
	}
	req.StartTime, req.EndTime = startTime, endTime

	slotStart, err := schedule.CombineDateClock(req.WorkDate, req.StartTime)
	if err != nil {
		utils.BadRequest(c, "Invalid work date: "+req.WorkDate)
		return
	}
	slotEnd, err := schedule.CombineDateClock(req.WorkDate, req.EndTime)
	if err != nil {
		utils.BadRequest(c, "Invalid end time")
		return
	}
	if !slotEnd.After(slotStart) {
		utils.BadRequest(c, "Appointment must end after it starts")
		return
	}
	if slotStart.Before(time.Now()) {
		utils.BadRequest(c, "Appointment must be in the future")
		return
	}

	// Children hang off a consultation and must finish before it starts.
	if req.ParentAppointmentID != nil {
		var parent models.Appointment
		if err := h.DB.First(&parent, "id = ?", *req.ParentAppointmentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				utils.NotFound(c, "Parent appointment not found")
			} else {
				utils.InternalServerError(c, "Database error verifying parent appointment: "+err.Error())
			}
			return
		}
		if parent.PatientID != patientID {
			utils.Forbidden(c, "Parent appointment belongs to another patient")
			return
		}
		if err := childBookingIssue(&parent, req.DoctorID, req.WorkDate, req.EndTime); err != nil {
			utils.BadRequest(c, "Cannot attach to parent appointment: "+err.Error())
			return
		}
	} else {
		// Authoritative re-check: the slot may have been taken since the
		// client derived its calendar.
		var blocking int64
		if err := h.DB.Model(&models.Appointment{}).
			Where("doctor_id = ? AND work_date = ? AND start_time = ? AND end_time = ?",
				req.DoctorID, req.WorkDate, req.StartTime, req.EndTime).
			Where("status != ? AND parent_appointment_id IS NULL", models.StatusCancelled).
			Count(&blocking).Error; err != nil {
			utils.InternalServerError(c, "Database error checking slot availability: "+err.Error())
			return
		}
		if blocking > 0 {
			utils.Conflict(c, "The selected slot is no longer available")
			return
		}
	}

	// Recompute pricing server-side; the client's figures are advisory.
	var examinations []models.MedicalExamination
	discount, deposit := req.Discount, req.Deposit
	if len(req.MedicalExaminationIDs) > 0 {
		if err := h.DB.Where("id IN ?", req.MedicalExaminationIDs).Find(&examinations).Error; err != nil {
			utils.InternalServerError(c, "Database error fetching examinations: "+err.Error())
			return
		}
		if len(examinations) != len(req.MedicalExaminationIDs) {
			utils.BadRequest(c, "One or more examinations do not exist")
			return
		}
		prices := make([]int64, len(examinations))
		for i, exam := range examinations {
			prices[i] = exam.Price
		}
		quote := schedule.Summarize(prices)
		if req.Discount != 0 && req.Discount != quote.Discounted {
			utils.GetLogger().Warn("client pricing mismatch",
				zap.Int64("clientDiscount", req.Discount),
				zap.Int64("serverDiscount", quote.Discounted))
		}
		discount, deposit = quote.Discounted, quote.Deposit
	}

	depositStatus := models.DepositStatus(req.DepositStatus)
	if depositStatus == "" {
		depositStatus = models.DepositPending
	}

	appointment := models.Appointment{
		PatientID:           patientID,
		DoctorID:            req.DoctorID,
		WorkDate:            req.WorkDate,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		Status:              models.StatusPending,
		Discount:            discount,
		Deposit:             deposit,
		DepositStatus:       depositStatus,
		ParentAppointmentID: req.ParentAppointmentID,
		Notes:               req.Notes,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}
		if len(examinations) > 0 {
			return tx.Model(&appointment).Association("Examinations").Append(&examinations)
		}
		return nil
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	// The doctor's derived calendar is stale now
	h.Cache.Invalidate(req.DoctorID)

	utils.Created(c, "Appointment created successfully", appointment)
}

// childBookingIssue reports why a diagnostic child booking cannot attach to
// the given parent consultation, or nil when it can. All clock strings must
// already be normalized.
func childBookingIssue(parent *models.Appointment, doctorID, workDate, endTime string) error {
	if parent.Status == models.StatusCancelled {
		return errors.New("the parent appointment is cancelled")
	}
	if parent.DoctorID != doctorID {
		return errors.New("the parent appointment is with a different doctor")
	}
	if parent.WorkDate != workDate || endTime > parent.StartTime {
		return errors.New("diagnostic services must finish before the consultation starts")
	}
	return nil
}

// GetAppointmentsForUser handles fetching appointments for the logged-in user
// (patient or doctor).
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Preload("Examinations").Order("work_date asc, start_time asc")

	var appointments []models.Appointment
	var err error
	switch role {
	case models.RolePatient:
		err = query.Where("patient_id = ?", userID).Find(&appointments).Error
	case models.RoleDoctor:
		err = query.Where("doctor_id = ?", userID).Find(&appointments).Error
	case models.RoleAdmin:
		err = query.Find(&appointments).Error
	default:
		utils.Forbidden(c, "User role not permitted to view appointments")
		return
	}

	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentsByDoctorAndDate handles fetching one date's appointments for
// a doctor: the conflict data clients use to mark slots unavailable.
func (h *AppointmentHandler) GetAppointmentsByDoctorAndDate(c *gin.Context) {
	doctorIDStr := c.Param("doctorId")
	if _, err := uuid.Parse(doctorIDStr); err != nil {
		utils.BadRequest(c, "Invalid Doctor ID format")
		return
	}

	workDate := c.Param("date")
	if _, err := schedule.ParseWorkDate(workDate); err != nil {
		utils.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	var appointments []models.Appointment
	if err := h.DB.Where("doctor_id = ? AND work_date = ?", doctorIDStr, workDate).
		Order("start_time asc").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID handles fetching a single appointment by its ID.
// Accessible by involved patient, doctor, or an admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointmentID := c.Param("id")

	var appointment models.Appointment
	if err := h.DB.Preload("Examinations").Preload("ChildAppointments").
		First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)
	if role != models.RoleAdmin && userID != appointment.PatientID && userID != appointment.DoctorID {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// UpdateAppointmentStatusRequest represents the request body for updating an
// appointment's status.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=pending confirmed cancelled completed"`
	Notes  string                   `json:"notes"`
}

// UpdateAppointmentStatus handles updating the status of an appointment.
// Doctors and admins may set any status; patients may only cancel.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	appointmentID := c.Param("id")

	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	canUpdate := false
	switch {
	case role == models.RoleAdmin:
		canUpdate = true
	case role == models.RoleDoctor && userID == appointment.DoctorID:
		canUpdate = true
	case role == models.RolePatient && userID == appointment.PatientID:
		if req.Status != models.StatusCancelled {
			utils.Forbidden(c, "Patients can only cancel appointments.")
			return
		}
		canUpdate = appointment.Status == models.StatusPending || appointment.Status == models.StatusConfirmed
	}

	if !canUpdate {
		utils.Forbidden(c, "You are not authorized to update this appointment's status.")
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		appointment.Status = req.Status
		if req.Notes != "" {
			appointment.Notes = req.Notes
		}
		if err := tx.Save(&appointment).Error; err != nil {
			return err
		}
		// Cancelling a consultation cancels its diagnostic children too
		if req.Status == models.StatusCancelled && appointment.IsTopLevel() {
			return tx.Model(&models.Appointment{}).
				Where("parent_appointment_id = ?", appointment.ID).
				Update("status", models.StatusCancelled).Error
		}
		return nil
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to update appointment status: "+err.Error())
		return
	}

	// Status changes move slots in and out of availability
	h.Cache.Invalidate(appointment.DoctorID)

	utils.Success(c, "Appointment status updated successfully", appointment)
}

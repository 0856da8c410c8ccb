package handlers

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mufies/OHMS-GROUP3-sub002/internal/config"
	"github.com/mufies/OHMS-GROUP3-sub002/internal/middleware"
	"github.com/mufies/OHMS-GROUP3-sub002/internal/models"
	"github.com/mufies/OHMS-GROUP3-sub002/internal/schedule"
	"github.com/mufies/OHMS-GROUP3-sub002/internal/utils"
)

// ScheduleHandler handles doctor schedule and derived slot calendar requests.
type ScheduleHandler struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Cache *schedule.HorizonCache
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(db *gorm.DB, cfg *config.Config, cache *schedule.HorizonCache) *ScheduleHandler {
	return &ScheduleHandler{DB: db, Cfg: cfg, Cache: cache}
}

// GetDoctorSchedule handles fetching a doctor's declared work intervals over
// the two-week horizon.
func (h *ScheduleHandler) GetDoctorSchedule(c *gin.Context) {
	doctorID, ok := h.resolveDoctor(c)
	if !ok {
		return
	}

	dates := schedule.HorizonDates(time.Now())
	var rows []models.DoctorSchedule
	if err := h.DB.Where("doctor_id = ? AND work_date IN ?", doctorID, dates).
		Order("work_date asc, start_time asc").Find(&rows).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch schedule: "+err.Error())
		return
	}

	utils.Success(c, "Schedule fetched successfully", rows)
}

// ScheduleIntervalRequest is one declared work interval in an upsert request.
type ScheduleIntervalRequest struct {
	WorkDate  string `json:"workDate" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// UpsertDoctorScheduleRequest replaces the declared intervals of the dates it
// mentions.
type UpsertDoctorScheduleRequest struct {
	Intervals []ScheduleIntervalRequest `json:"intervals" binding:"required,dive"`
}

// UpsertDoctorSchedule handles a doctor (or admin) declaring work intervals.
// All previously declared intervals on the mentioned dates are replaced.
func (h *ScheduleHandler) UpsertDoctorSchedule(c *gin.Context) {
	doctorID, ok := h.resolveDoctor(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)
	if role != models.RoleAdmin && userID != doctorID {
		utils.Forbidden(c, "Doctors can only manage their own schedule")
		return
	}

	var req UpsertDoctorScheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	dates := make([]string, 0, len(req.Intervals))
	rows := make([]models.DoctorSchedule, 0, len(req.Intervals))
	for _, interval := range req.Intervals {
		if _, err := schedule.ParseWorkDate(interval.WorkDate); err != nil {
			utils.BadRequest(c, "Invalid work date: "+interval.WorkDate)
			return
		}
		start, err := schedule.ParseClock(interval.StartTime)
		if err != nil {
			utils.BadRequest(c, "Invalid start time: "+interval.StartTime)
			return
		}
		end, err := schedule.ParseClock(interval.EndTime)
		if err != nil {
			utils.BadRequest(c, "Invalid end time: "+interval.EndTime)
			return
		}
		if end <= start {
			utils.BadRequest(c, "Interval must end after it starts")
			return
		}
		dates = append(dates, interval.WorkDate)
		// Store the padded form; slot derivation and blocking compare exact strings
		rows = append(rows, models.DoctorSchedule{
			DoctorID:  doctorID,
			WorkDate:  interval.WorkDate,
			StartTime: schedule.FormatClock(start),
			EndTime:   schedule.FormatClock(end),
		})
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ? AND work_date IN ?", doctorID, dates).
			Delete(&models.DoctorSchedule{}).Error; err != nil {
			return err
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to save schedule: "+err.Error())
		return
	}

	h.Cache.Invalidate(doctorID)
	utils.Success(c, "Schedule saved successfully", rows)
}

// SlotCalendarResponse carries the derived horizon plus the day the client
// should open on.
type SlotCalendarResponse struct {
	Days            []schedule.DaySchedule `json:"days"`
	DefaultDayIndex int                    `json:"defaultDayIndex"`
}

// GetDoctorSlots handles deriving the bookable slot calendar for a doctor
// over the two-week horizon.
func (h *ScheduleHandler) GetDoctorSlots(c *gin.Context) {
	doctorID, ok := h.resolveDoctor(c)
	if !ok {
		return
	}

	now := time.Now()
	if days, hit := h.Cache.Get(doctorID, now); hit {
		utils.Success(c, "Slots fetched successfully", SlotCalendarResponse{
			Days:            days,
			DefaultDayIndex: schedule.DefaultDayIndex(days, now),
		})
		return
	}

	dates := schedule.HorizonDates(now)

	// A failed schedule fetch degrades to "no declared intervals" rather than
	// failing the request; the engine then falls back to the synthetic day.
	intervals := make(map[string][]schedule.WorkInterval)
	var rows []models.DoctorSchedule
	if err := h.DB.Where("doctor_id = ? AND work_date IN ?", doctorID, dates).Find(&rows).Error; err != nil {
		utils.GetLogger().Warn("schedule fetch failed",
			zap.String("doctorId", doctorID), zap.Error(err))
	} else {
		for _, row := range rows {
			intervals[row.WorkDate] = append(intervals[row.WorkDate], schedule.WorkInterval{
				StartTime: row.StartTime,
				EndTime:   row.EndTime,
			})
		}
	}

	booked := h.collectBookedSlots(doctorID, dates)

	days := schedule.BuildHorizon(schedule.HorizonInput{
		Now:             now,
		Intervals:       intervals,
		Booked:          booked,
		SlotMinutes:     h.Cfg.Schedule.SlotMinutes,
		DefaultDayStart: h.Cfg.Schedule.DefaultDayStart,
		DefaultDayEnd:   h.Cfg.Schedule.DefaultDayEnd,
	})
	h.Cache.Store(doctorID, now, days)

	utils.Success(c, "Slots fetched successfully", SlotCalendarResponse{
		Days:            days,
		DefaultDayIndex: schedule.DefaultDayIndex(days, now),
	})
}

// collectBookedSlots fans out one appointment query per horizon date and
// joins the results. A single date's failure is isolated: that date degrades
// to an empty conflict list instead of aborting the whole horizon.
func (h *ScheduleHandler) collectBookedSlots(doctorID string, dates []string) map[string][]schedule.BookedSlot {
	booked := make(map[string][]schedule.BookedSlot, len(dates))

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, date := range dates {
		wg.Add(1)
		go func(date string) {
			defer wg.Done()

			var appointments []models.Appointment
			if err := h.DB.Where("doctor_id = ? AND work_date = ?", doctorID, date).
				Find(&appointments).Error; err != nil {
				utils.GetLogger().Warn("appointment fetch failed",
					zap.String("doctorId", doctorID), zap.String("date", date), zap.Error(err))
				return
			}

			slots := make([]schedule.BookedSlot, 0, len(appointments))
			for _, a := range appointments {
				slots = append(slots, schedule.BookedSlot{
					StartTime: a.StartTime,
					EndTime:   a.EndTime,
					Cancelled: a.Status == models.StatusCancelled,
					Child:     !a.IsTopLevel(),
				})
			}

			mu.Lock()
			booked[date] = slots
			mu.Unlock()
		}(date)
	}
	wg.Wait()

	return booked
}

// resolveDoctor validates the doctorId path parameter and verifies the user
// exists and is a doctor. It writes the error response itself on failure.
func (h *ScheduleHandler) resolveDoctor(c *gin.Context) (string, bool) {
	doctorIDStr := c.Param("doctorId")
	doctorID, err := uuid.Parse(doctorIDStr)
	if err != nil {
		utils.BadRequest(c, "Invalid Doctor ID format")
		return "", false
	}

	var doctor models.User
	if err := h.DB.Where("id = ? AND role = ?", doctorID.String(), models.RoleDoctor).First(&doctor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found or user is not a doctor")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return "", false
	}

	return doctor.ID, true
}

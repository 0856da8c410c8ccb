package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mufies/OHMS-GROUP3-sub002/internal/models"
	"github.com/mufies/OHMS-GROUP3-sub002/internal/schedule"
	"github.com/mufies/OHMS-GROUP3-sub002/internal/utils"
)

// ExaminationHandler handles the diagnostic-service catalog.
type ExaminationHandler struct {
	DB *gorm.DB
}

// NewExaminationHandler creates a new ExaminationHandler.
func NewExaminationHandler(db *gorm.DB) *ExaminationHandler {
	return &ExaminationHandler{DB: db}
}

// CreateExaminationRequest represents the request body for creating a catalog entry.
type CreateExaminationRequest struct {
	Name               string `json:"name" binding:"required"`
	Specialty          string `json:"specialty" binding:"required"`
	Price              int64  `json:"price" binding:"required,gt=0"`
	MinDurationMinutes int    `json:"minDurationMinutes" binding:"gte=0"`
	Description        string `json:"description"`
}

// CreateExamination handles creating a catalog entry (admin).
func (h *ExaminationHandler) CreateExamination(c *gin.Context) {
	var req CreateExaminationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	examination := models.MedicalExamination{
		Name:               req.Name,
		Specialty:          req.Specialty,
		Price:              req.Price,
		MinDurationMinutes: req.MinDurationMinutes,
		Description:        req.Description,
	}

	if err := h.DB.Create(&examination).Error; err != nil {
		utils.InternalServerError(c, "Failed to create examination: "+err.Error())
		return
	}

	utils.Created(c, "Examination created successfully", examination)
}

// UpdateExaminationRequest represents the request body for updating a catalog entry.
type UpdateExaminationRequest struct {
	Name               string `json:"name"`
	Specialty          string `json:"specialty"`
	Price              int64  `json:"price" binding:"omitempty,gt=0"`
	MinDurationMinutes *int   `json:"minDurationMinutes"`
	Description        string `json:"description"`
}

// UpdateExamination handles updating a catalog entry (admin).
func (h *ExaminationHandler) UpdateExamination(c *gin.Context) {
	examinationID := c.Param("id")

	var req UpdateExaminationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var examination models.MedicalExamination
	if err := h.DB.First(&examination, "id = ?", examinationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Examination not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.Name != "" {
		examination.Name = req.Name
	}
	if req.Specialty != "" {
		examination.Specialty = req.Specialty
	}
	if req.Price > 0 {
		examination.Price = req.Price
	}
	if req.MinDurationMinutes != nil {
		examination.MinDurationMinutes = *req.MinDurationMinutes
	}
	if req.Description != "" {
		examination.Description = req.Description
	}

	if err := h.DB.Save(&examination).Error; err != nil {
		utils.InternalServerError(c, "Failed to update examination: "+err.Error())
		return
	}

	utils.Success(c, "Examination updated successfully", examination)
}

// DeleteExamination handles deleting a catalog entry (admin).
func (h *ExaminationHandler) DeleteExamination(c *gin.Context) {
	examinationID := c.Param("id")

	var examination models.MedicalExamination
	if err := h.DB.First(&examination, "id = ?", examinationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Examination not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&examination).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete examination: "+err.Error())
		return
	}

	utils.Success(c, "Examination deleted successfully", nil)
}

// BySpecialtyRequest represents the request body for listing catalog entries
// of one specialty.
type BySpecialtyRequest struct {
	Specialty string `json:"specialty" binding:"required"`
}

// GetExaminationsBySpecialty handles listing catalog entries for a specialty.
func (h *ExaminationHandler) GetExaminationsBySpecialty(c *gin.Context) {
	var req BySpecialtyRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var examinations []models.MedicalExamination
	if err := h.DB.Where("specialty = ?", req.Specialty).
		Order("name asc").Find(&examinations).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch examinations: "+err.Error())
		return
	}

	utils.Success(c, "Examinations fetched successfully", examinations)
}

// QuoteRequest represents the request body for a booking price quote.
type QuoteRequest struct {
	MedicalExaminationIDs []string `json:"medicalExaminationIds" binding:"required,min=1"`
}

// GetQuote handles computing the discounted price and deposit for a set of
// selected services.
func (h *ExaminationHandler) GetQuote(c *gin.Context) {
	var req QuoteRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var examinations []models.MedicalExamination
	if err := h.DB.Where("id IN ?", req.MedicalExaminationIDs).Find(&examinations).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch examinations: "+err.Error())
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

	utils.Success(c, "Quote computed successfully", schedule.Summarize(prices))
}

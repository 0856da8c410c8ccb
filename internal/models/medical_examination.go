package models

// MedicalExamination is one entry of the diagnostic-service catalog: a service
// a patient can book ahead of a consultation (blood test, X-ray, ...).
type MedicalExamination struct {
	BaseModel
	Name               string `gorm:"size:255;not null" json:"name"`
	Specialty          string `gorm:"size:100;index" json:"specialty"`
	Price              int64  `gorm:"not null" json:"price"`
	MinDurationMinutes int    `gorm:"default:0" json:"minDurationMinutes"`
	Description        string `gorm:"type:text" json:"description,omitempty"`

	Appointments []Appointment `gorm:"many2many:appointment_examinations;" json:"-"`
}

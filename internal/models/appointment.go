package models

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// DepositStatus represents the payment state of the online-booking deposit
type DepositStatus string

const (
	DepositPending DepositStatus = "pending"
	DepositPaid    DepositStatus = "paid"
)

// Appointment represents a booked occupation of one slot. A top-level
// appointment (ParentAppointmentID == nil) is the consultation and blocks its
// slot; child appointments are the diagnostic services booked under it and do
// not block slots on their own.
type Appointment struct {
	BaseModel
	PatientID           string            `gorm:"size:36;index" json:"patientId"`
	DoctorID            string            `gorm:"size:36;index" json:"doctorId"`
	WorkDate            string            `gorm:"size:10;index" json:"workDate"`  // YYYY-MM-DD
	StartTime           string            `gorm:"size:5" json:"startTime"`        // HH:mm
	EndTime             string            `gorm:"size:5" json:"endTime"`          // HH:mm
	Status              AppointmentStatus `gorm:"size:20;default:'pending'" json:"status"`
	Discount            int64             `json:"discount"` // discounted total price
	Deposit             int64             `json:"deposit"`
	DepositStatus       DepositStatus     `gorm:"size:20;default:'pending'" json:"depositStatus"`
	ParentAppointmentID *string           `gorm:"size:36;index" json:"parentAppointmentId,omitempty"`
	Notes               string            `gorm:"type:text" json:"notes"`

	// Relations
	Patient           User                 `gorm:"foreignKey:PatientID" json:"-"`
	Doctor            User                 `gorm:"foreignKey:DoctorID" json:"-"`
	ParentAppointment *Appointment         `gorm:"foreignKey:ParentAppointmentID" json:"parentAppointment,omitempty"`
	ChildAppointments []Appointment        `gorm:"foreignKey:ParentAppointmentID" json:"childAppointments,omitempty"`
	Examinations      []MedicalExamination `gorm:"many2many:appointment_examinations;" json:"examinations,omitempty"`
}

// IsTopLevel reports whether this appointment is a consultation rather than a
// child diagnostic booking.
func (a *Appointment) IsTopLevel() bool {
	return a.ParentAppointmentID == nil
}

// BlocksSlot reports whether this appointment occupies its slot for
// availability purposes: only non-cancelled top-level appointments do.
func (a *Appointment) BlocksSlot() bool {
	return a.IsTopLevel() && a.Status != StatusCancelled
}

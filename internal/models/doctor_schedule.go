package models

// DoctorSchedule is one declared availability window of a doctor on a calendar
// date: the WorkInterval the slot engine subdivides into bookable slots. A
// doctor may declare several intervals per day.
type DoctorSchedule struct {
	BaseModel
	DoctorID  string `gorm:"size:36;index:idx_doctor_workdate" json:"doctorId"`
	WorkDate  string `gorm:"size:10;index:idx_doctor_workdate" json:"workDate"` // YYYY-MM-DD
	StartTime string `gorm:"size:5" json:"startTime"`                           // HH:mm
	EndTime   string `gorm:"size:5" json:"endTime"`                             // HH:mm

	Doctor User `gorm:"foreignKey:DoctorID" json:"-"`
}

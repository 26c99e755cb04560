package models

import (
	"time"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "presente"
	AttendanceLate    AttendanceStatus = "tardanza"
	AttendanceAbsent  AttendanceStatus = "ausente"
)

// Attendance records a doctor's check-in/check-out for one date. At most
// one record per doctor per date.
type Attendance struct {
	ID       uint             `json:"id" gorm:"primaryKey"`
	DoctorID uint             `json:"doctor_id" gorm:"uniqueIndex:idx_attendance_doctor_date"`
	Doctor   Doctor           `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	Date     string           `json:"date" gorm:"uniqueIndex:idx_attendance_doctor_date"` // YYYY-MM-DD
	CheckIn  string           `json:"check_in"`                                           // HH:MM
	CheckOut *string          `json:"check_out"`
	Status   AttendanceStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

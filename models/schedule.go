package models

import (
	"time"
)

// Schedule is one recurring weekly availability window for a doctor.
// DayOfWeek is ISO numbering: 1 (Monday) through 7 (Sunday). Times are
// "HH:MM" in 24h format; the half-open window [StartTime, EndTime) accepts
// appointments.
//
// The unique index on (doctor_id, day_of_week, start_time) backs the
// overlap invariant under concurrent inserts: two windows starting at the
// same minute always overlap, so the index rejects the racing twin and the
// in-transaction overlap check handles every other shape.
// Schedules are hard deleted; no soft-delete column, so removed windows
// release their slot in the unique index immediately.
type Schedule struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	DoctorID  uint      `json:"doctor_id" gorm:"uniqueIndex:idx_schedules_doctor_day_start"`
	Doctor    Doctor    `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	DayOfWeek int       `json:"day_of_week" gorm:"uniqueIndex:idx_schedules_doctor_day_start"`
	StartTime string    `json:"start_time" gorm:"uniqueIndex:idx_schedules_doctor_day_start"`
	EndTime   string    `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DayNames is the fixed ISO day number to name mapping used by list and
// weekly-view responses.
var DayNames = map[int]string{
	1: "Monday",
	2: "Tuesday",
	3: "Wednesday",
	4: "Thursday",
	5: "Friday",
	6: "Saturday",
	7: "Sunday",
}

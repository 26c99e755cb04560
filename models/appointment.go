package models

import (
	"fmt"

	"gorm.io/gorm"
)

type AppointmentStatus string

// Status values are kept in Spanish; the web frontend and the reporting
// queries match on these literals.
const (
	StatusPending   AppointmentStatus = "pendiente"
	StatusConfirmed AppointmentStatus = "confirmada"
	StatusCompleted AppointmentStatus = "completada"
	StatusCanceled  AppointmentStatus = "cancelada"
)

// Appointment books a doctor for a patient at an exact (date, time) slot.
// Date is "YYYY-MM-DD", Time is "HH:MM". The unique index on
// (doctor_id, date, time) is the authoritative double-booking guard;
// application-level existence checks only produce friendlier messages.
// Appointments are never deleted; cancellation is a status change.
type Appointment struct {
	gorm.Model
	DoctorID  uint              `json:"doctor_id" gorm:"uniqueIndex:idx_appointments_doctor_slot"`
	Doctor    Doctor            `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	PatientID uint              `json:"patient_id"`
	Patient   Patient           `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	Date      string            `json:"date" gorm:"uniqueIndex:idx_appointments_doctor_slot"`
	Time      string            `json:"time" gorm:"uniqueIndex:idx_appointments_doctor_slot"`
	Reason    string            `json:"reason"`
	Status    AppointmentStatus `json:"status"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// CanTransition reports whether the state machine allows moving to next.
// Cancellation is allowed from any state; completada and cancelada are
// otherwise terminal.
func (a *Appointment) CanTransition(next AppointmentStatus) error {
	if next == StatusCanceled {
		return nil
	}
	switch a.Status {
	case StatusPending:
		if next == StatusConfirmed || next == StatusCompleted {
			return nil
		}
	case StatusConfirmed:
		if next == StatusCompleted {
			return nil
		}
	}
	return fmt.Errorf("invalid transition from %s to %s", a.Status, next)
}

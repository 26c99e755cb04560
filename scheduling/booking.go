package scheduling

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
)

// BookingInput carries a new or fully edited appointment.
type BookingInput struct {
	DoctorID  uint   `json:"doctor_id"`
	PatientID uint   `json:"patient_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Reason    string `json:"reason"`
}

func (in *BookingInput) validate(rejectPast bool) error {
	if in.DoctorID == 0 || in.PatientID == 0 || in.Date == "" || in.Time == "" || in.Reason == "" {
		return validationf("doctor_id, patient_id, date, time and reason are required")
	}
	date, err := ParseDate(in.Date)
	if err != nil {
		return err
	}
	if rejectPast {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		if date.Before(today) {
			return validationf("appointments cannot be scheduled on past dates")
		}
	}
	t, err := ParseTimeOfDay(in.Time)
	if err != nil {
		return err
	}
	in.Time = t.String()
	return nil
}

// slotTaken reports whether some other appointment (any status) already
// claims the doctor's (date, time) slot.
func slotTaken(tx *gorm.DB, doctorID uint, date, timeOfDay string, excludeID uint) (bool, error) {
	q := tx.Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ? AND time = ?", doctorID, date, timeOfDay)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, storeErr("check slot", err)
	}
	return count > 0, nil
}

// withinWorkingHours reports whether t falls inside any availability window
// the doctor has on the given ISO weekday (containment is start <= t < end).
func withinWorkingHours(tx *gorm.DB, doctorID uint, day int, t TimeOfDay) (bool, error) {
	var intervals []models.Schedule
	if err := tx.Where("doctor_id = ? AND day_of_week = ?", doctorID, day).
		Find(&intervals).Error; err != nil {
		return false, storeErr("load working hours", err)
	}
	for _, iv := range intervals {
		start, err := ParseTimeOfDay(iv.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseTimeOfDay(iv.EndTime)
		if err != nil {
			continue
		}
		if start <= t && t < end {
			return true, nil
		}
	}
	return false, nil
}

// CreateAppointment books a slot. The in-transaction existence check gives
// a friendly conflict message; the unique (doctor, date, time) index is
// what actually guarantees at most one booking survives a race.
func CreateAppointment(db *gorm.DB, in BookingInput) (uint, error) {
	if err := in.validate(true); err != nil {
		return 0, err
	}

	appointment := models.Appointment{
		DoctorID:  in.DoctorID,
		PatientID: in.PatientID,
		Date:      in.Date,
		Time:      in.Time,
		Reason:    in.Reason,
		Status:    models.StatusPending,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		taken, err := slotTaken(tx, in.DoctorID, in.Date, in.Time, 0)
		if err != nil {
			return err
		}
		if taken {
			return conflictf("the doctor already has an appointment on %s at %s", in.Date, in.Time)
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			return 0, conflictf("the doctor already has an appointment on %s at %s", in.Date, in.Time)
		}
		var ce *ConflictError
		var se *StoreError
		if errors.As(err, &ce) || errors.As(err, &se) {
			return 0, err
		}
		return 0, storeErr("create appointment", err)
	}
	return appointment.ID, nil
}

// GetAppointment loads one appointment with its doctor and patient users.
func GetAppointment(db *gorm.DB, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := db.Preload("Doctor.User").Preload("Doctor.Specialty").
		Preload("Patient.User").
		First(&appointment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("appointment %d not found", id)
		}
		return nil, storeErr("load appointment", err)
	}
	return &appointment, nil
}

// UpdateAppointment is the full edit used by the reception desk: every
// field is replaced and the status drops back to pendiente unconditionally.
func UpdateAppointment(db *gorm.DB, id uint, in BookingInput) error {
	if err := in.validate(false); err != nil {
		return err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.Appointment
		if err := tx.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("appointment %d not found", id)
			}
			return storeErr("load appointment", err)
		}

		taken, err := slotTaken(tx, in.DoctorID, in.Date, in.Time, id)
		if err != nil {
			return err
		}
		if taken {
			return conflictf("the doctor already has another appointment on %s at %s", in.Date, in.Time)
		}

		existing.DoctorID = in.DoctorID
		existing.PatientID = in.PatientID
		existing.Date = in.Date
		existing.Time = in.Time
		existing.Reason = in.Reason
		existing.Status = models.StatusPending
		return tx.Save(&existing).Error
	})
	return mapBookingErr(err, "update appointment")
}

// RescheduleAppointment moves a pending appointment to a new date/time,
// validating both the slot and the doctor's working hours for that weekday.
func RescheduleAppointment(db *gorm.DB, id uint, newDate, newTime string) error {
	if newDate == "" || newTime == "" {
		return validationf("new date and time are required")
	}
	date, err := ParseDate(newDate)
	if err != nil {
		return err
	}
	t, err := ParseTimeOfDay(newTime)
	if err != nil {
		return err
	}
	newTime = t.String()

	err = db.Transaction(func(tx *gorm.DB) error {
		var existing models.Appointment
		if err := tx.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("appointment %d not found", id)
			}
			return storeErr("load appointment", err)
		}
		if existing.Status != models.StatusPending {
			return validationf("only pendiente appointments may be rescheduled, current status is %s", existing.Status)
		}

		taken, err := slotTaken(tx, existing.DoctorID, newDate, newTime, id)
		if err != nil {
			return err
		}
		if taken {
			return conflictf("the doctor already has another appointment on %s at %s", newDate, newTime)
		}

		inside, err := withinWorkingHours(tx, existing.DoctorID, ISOWeekday(date), t)
		if err != nil {
			return err
		}
		if !inside {
			return validationf("the new time is outside the doctor's working hours")
		}

		existing.Date = newDate
		existing.Time = newTime
		return tx.Save(&existing).Error
	})
	return mapBookingErr(err, "reschedule appointment")
}

// CancelAppointment marks the appointment cancelada regardless of its
// current status. The row is kept; cancellation never deletes.
func CancelAppointment(db *gorm.DB, id uint) error {
	res := db.Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("status", models.StatusCanceled)
	if res.Error != nil {
		return storeErr("cancel appointment", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFoundf("appointment %d not found", id)
	}
	return nil
}

// ConfirmAppointment moves pendiente to confirmada. Only the doctor the
// appointment belongs to may confirm it; ownership is resolved through the
// doctor profile linked to the acting user.
func ConfirmAppointment(db *gorm.DB, id uint, actingUserID uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.Appointment
		if err := tx.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("appointment %d not found", id)
			}
			return storeErr("load appointment", err)
		}

		var doctor models.Doctor
		if err := tx.First(&doctor, existing.DoctorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("doctor %d not found", existing.DoctorID)
			}
			return storeErr("load doctor", err)
		}
		if doctor.UserID != actingUserID {
			return &AuthorizationError{Msg: "only the appointment's doctor may confirm it"}
		}
		if existing.Status != models.StatusPending {
			return validationf("only pendiente appointments may be confirmed, current status is %s", existing.Status)
		}

		existing.Status = models.StatusConfirmed
		return tx.Save(&existing).Error
	})
	return mapBookingErr(err, "confirm appointment")
}

// CompleteAppointment closes out a pendiente or confirmada appointment.
func CompleteAppointment(db *gorm.DB, id uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND status IN ?", id, []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
			Update("status", models.StatusCompleted)
		if res.Error != nil {
			return storeErr("complete appointment", res.Error)
		}
		if res.RowsAffected == 0 {
			var existing models.Appointment
			if err := tx.First(&existing, id).Error; err != nil {
				return notFoundf("appointment %d not found", id)
			}
			return validationf("appointment cannot be completed from status %s", existing.Status)
		}
		return nil
	})
	return mapBookingErr(err, "complete appointment")
}

// mapBookingErr passes taxonomy errors through and wraps anything else as a
// store failure.
func mapBookingErr(err error, op string) error {
	if err == nil {
		return nil
	}
	if isDuplicateKey(err) {
		return conflictf("the doctor already has another appointment at that time")
	}
	var ve *ValidationError
	var ce *ConflictError
	var ne *NotFoundError
	var ae *AuthorizationError
	var se *StoreError
	if errors.As(err, &ve) || errors.As(err, &ce) || errors.As(err, &ne) ||
		errors.As(err, &ae) || errors.As(err, &se) {
		return err
	}
	return storeErr(op, err)
}

package scheduling

import (
	"errors"

	"gorm.io/gorm"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
)

// IntervalInput carries a new availability window for a doctor.
type IntervalInput struct {
	DoctorID  uint   `json:"doctor_id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// IntervalPatch carries a partial update; nil fields keep the stored value.
type IntervalPatch struct {
	DayOfWeek *int    `json:"day_of_week"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

// ListIntervals returns a doctor's availability ordered by day then start.
func ListIntervals(db *gorm.DB, doctorID uint) ([]models.Schedule, error) {
	var intervals []models.Schedule
	if err := db.Where("doctor_id = ?", doctorID).
		Order("day_of_week asc, start_time asc").
		Find(&intervals).Error; err != nil {
		return nil, storeErr("list intervals", err)
	}
	return intervals, nil
}

// WeeklySchedule groups a doctor's availability by ISO day, with every day
// present even when empty.
func WeeklySchedule(db *gorm.DB, doctorID uint) (map[int][]models.Schedule, error) {
	intervals, err := ListIntervals(db, doctorID)
	if err != nil {
		return nil, err
	}
	weekly := make(map[int][]models.Schedule, 7)
	for day := 1; day <= 7; day++ {
		weekly[day] = []models.Schedule{}
	}
	for _, iv := range intervals {
		if ValidDay(iv.DayOfWeek) {
			weekly[iv.DayOfWeek] = append(weekly[iv.DayOfWeek], iv)
		}
	}
	return weekly, nil
}

// normalizeWindow validates a day/start/end triple and returns the times in
// canonical "HH:MM" form.
func normalizeWindow(day int, start, end string) (string, string, error) {
	if !ValidDay(day) {
		return "", "", validationf("day of week must be between 1 (Monday) and 7 (Sunday), got %d", day)
	}
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return "", "", err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return "", "", err
	}
	if s >= e {
		return "", "", validationf("start time %s must be before end time %s", s, e)
	}
	return s.String(), e.String(), nil
}

// hasOverlap checks the persisted set for a window intersecting
// [start,end) on the doctor's day. excludeID skips the row being updated.
// Times are canonical "HH:MM" so the string comparisons are numeric.
func hasOverlap(tx *gorm.DB, doctorID uint, day int, start, end string, excludeID uint) (bool, error) {
	q := tx.Model(&models.Schedule{}).
		Where("doctor_id = ? AND day_of_week = ?", doctorID, day).
		Where("start_time < ? AND ? < end_time", end, start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, storeErr("check schedule overlap", err)
	}
	return count > 0, nil
}

// CreateInterval persists a new availability window after validating it and
// checking the no-overlap invariant inside the insert transaction. The
// unique (doctor, day, start) index is the final guard against a racing
// insert the pre-check cannot see.
func CreateInterval(db *gorm.DB, in IntervalInput) (uint, error) {
	if in.DoctorID == 0 {
		return 0, validationf("doctor_id is required")
	}
	start, end, err := normalizeWindow(in.DayOfWeek, in.StartTime, in.EndTime)
	if err != nil {
		return 0, err
	}

	interval := models.Schedule{
		DoctorID:  in.DoctorID,
		DayOfWeek: in.DayOfWeek,
		StartTime: start,
		EndTime:   end,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		overlap, err := hasOverlap(tx, in.DoctorID, in.DayOfWeek, start, end, 0)
		if err != nil {
			return err
		}
		if overlap {
			return conflictf("schedule overlaps an existing window on %s", models.DayNames[in.DayOfWeek])
		}
		return tx.Create(&interval).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			return 0, conflictf("schedule overlaps an existing window on %s", models.DayNames[in.DayOfWeek])
		}
		var ce *ConflictError
		if errors.As(err, &ce) {
			return 0, err
		}
		return 0, storeErr("create interval", err)
	}
	return interval.ID, nil
}

// UpdateInterval merges the patch onto the stored row, re-validates and
// re-runs the overlap check against all other windows of that doctor/day.
func UpdateInterval(db *gorm.DB, id uint, patch IntervalPatch) (*models.Schedule, error) {
	if patch.DayOfWeek == nil && patch.StartTime == nil && patch.EndTime == nil {
		return nil, validationf("at least one of day_of_week, start_time or end_time is required")
	}

	var interval models.Schedule
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&interval, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("schedule %d not found", id)
			}
			return storeErr("load interval", err)
		}

		day := interval.DayOfWeek
		start := interval.StartTime
		end := interval.EndTime
		if patch.DayOfWeek != nil {
			day = *patch.DayOfWeek
		}
		if patch.StartTime != nil {
			start = *patch.StartTime
		}
		if patch.EndTime != nil {
			end = *patch.EndTime
		}

		var err error
		start, end, err = normalizeWindow(day, start, end)
		if err != nil {
			return err
		}

		overlap, err := hasOverlap(tx, interval.DoctorID, day, start, end, interval.ID)
		if err != nil {
			return err
		}
		if overlap {
			return conflictf("schedule overlaps an existing window on %s", models.DayNames[day])
		}

		interval.DayOfWeek = day
		interval.StartTime = start
		interval.EndTime = end
		return tx.Save(&interval).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			return nil, conflictf("schedule overlaps an existing window")
		}
		var ve *ValidationError
		var ce *ConflictError
		var ne *NotFoundError
		var se *StoreError
		if errors.As(err, &ve) || errors.As(err, &ce) || errors.As(err, &ne) || errors.As(err, &se) {
			return nil, err
		}
		return nil, storeErr("update interval", err)
	}
	return &interval, nil
}

// DeleteInterval removes one availability window.
func DeleteInterval(db *gorm.DB, id uint) error {
	res := db.Delete(&models.Schedule{}, id)
	if res.Error != nil {
		return storeErr("delete interval", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFoundf("schedule %d not found", id)
	}
	return nil
}

// CopyIntervals clones the source doctor's availability onto the target.
// With overwrite the target's windows are dropped first; without it,
// source windows that collide with the target's existing set are skipped
// and excluded from the returned count. Runs as a single transaction.
func CopyIntervals(db *gorm.DB, sourceDoctorID, targetDoctorID uint, overwrite bool) (int, error) {
	if sourceDoctorID == 0 || targetDoctorID == 0 {
		return 0, validationf("source and target doctor ids are required")
	}
	if sourceDoctorID == targetDoctorID {
		return 0, validationf("source and target doctor must differ")
	}

	copied := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		var source []models.Schedule
		if err := tx.Where("doctor_id = ?", sourceDoctorID).
			Order("day_of_week asc, start_time asc").
			Find(&source).Error; err != nil {
			return storeErr("load source schedules", err)
		}
		if len(source) == 0 {
			return notFoundf("doctor %d has no schedules to copy", sourceDoctorID)
		}

		if overwrite {
			if err := tx.Where("doctor_id = ?", targetDoctorID).
				Delete(&models.Schedule{}).Error; err != nil {
				return storeErr("clear target schedules", err)
			}
		}

		for _, src := range source {
			if !overwrite {
				overlap, err := hasOverlap(tx, targetDoctorID, src.DayOfWeek, src.StartTime, src.EndTime, 0)
				if err != nil {
					return err
				}
				if overlap {
					continue
				}
			}
			clone := models.Schedule{
				DoctorID:  targetDoctorID,
				DayOfWeek: src.DayOfWeek,
				StartTime: src.StartTime,
				EndTime:   src.EndTime,
			}
			if err := tx.Create(&clone).Error; err != nil {
				return storeErr("copy schedule", err)
			}
			copied++
		}
		return nil
	})
	if err != nil {
		copied = 0
		var ve *ValidationError
		var ne *NotFoundError
		var se *StoreError
		if errors.As(err, &ve) || errors.As(err, &ne) || errors.As(err, &se) {
			return 0, err
		}
		return 0, storeErr("copy intervals", err)
	}
	return copied, nil
}

// DeleteAllForDoctor drops every window of one doctor. A doctor without
// schedules yields count 0, not an error.
func DeleteAllForDoctor(db *gorm.DB, doctorID uint) (int64, error) {
	res := db.Where("doctor_id = ?", doctorID).Delete(&models.Schedule{})
	if res.Error != nil {
		return 0, storeErr("delete doctor schedules", res.Error)
	}
	return res.RowsAffected, nil
}

package scheduling

import (
	"sort"

	"gorm.io/gorm"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
)

// DefaultSlotMinutes is the clinic-wide appointment granularity.
const DefaultSlotMinutes = 30

// walkSlots steps through [start,end) in duration-minute increments,
// emitting every time where the whole slot still fits before close.
func walkSlots(start, end TimeOfDay, duration int, emit func(TimeOfDay)) {
	for t := start; t+TimeOfDay(duration) <= end; t += TimeOfDay(duration) {
		emit(t)
	}
}

// DaySlots generates the bookable slot starts for one ISO weekday from the
// doctor's availability alone, ignoring existing bookings. Sorted ascending.
func DaySlots(db *gorm.DB, doctorID uint, day int, durationMinutes int) ([]string, error) {
	if !ValidDay(day) {
		return nil, validationf("day of week must be between 1 (Monday) and 7 (Sunday), got %d", day)
	}
	if durationMinutes <= 0 {
		return nil, validationf("slot duration must be positive, got %d", durationMinutes)
	}

	var intervals []models.Schedule
	if err := db.Where("doctor_id = ? AND day_of_week = ?", doctorID, day).
		Order("start_time asc").
		Find(&intervals).Error; err != nil {
		return nil, storeErr("load day schedules", err)
	}

	slots := []string{}
	for _, iv := range intervals {
		start, err := ParseTimeOfDay(iv.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseTimeOfDay(iv.EndTime)
		if err != nil {
			continue
		}
		walkSlots(start, end, durationMinutes, func(t TimeOfDay) {
			slots = append(slots, t.String())
		})
	}
	sort.Strings(slots)
	return slots, nil
}

// AvailableSlots generates the free slot starts for a doctor on a concrete
// date: the date's weekday availability minus times already holding an
// appointment. Appointment status is deliberately ignored here, so a
// cancelled booking still blocks its slot; the product behavior predates
// this rewrite and is kept as-is. A doctor with no availability that
// weekday yields an empty list, not an error.
func AvailableSlots(db *gorm.DB, doctorID uint, date string, durationMinutes int) ([]string, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	if durationMinutes <= 0 {
		durationMinutes = DefaultSlotMinutes
	}

	var intervals []models.Schedule
	if err := db.Where("doctor_id = ? AND day_of_week = ?", doctorID, ISOWeekday(day)).
		Order("start_time asc").
		Find(&intervals).Error; err != nil {
		return nil, storeErr("load day schedules", err)
	}
	if len(intervals) == 0 {
		return []string{}, nil
	}

	var bookedTimes []string
	if err := db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ?", doctorID, date).
		Order("time asc").
		Pluck("time", &bookedTimes).Error; err != nil {
		return nil, storeErr("load booked times", err)
	}
	booked := make(map[string]struct{}, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = struct{}{}
	}

	slots := []string{}
	for _, iv := range intervals {
		start, err := ParseTimeOfDay(iv.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseTimeOfDay(iv.EndTime)
		if err != nil {
			continue
		}
		walkSlots(start, end, durationMinutes, func(t TimeOfDay) {
			if _, taken := booked[t.String()]; !taken {
				slots = append(slots, t.String())
			}
		})
	}
	return slots, nil
}

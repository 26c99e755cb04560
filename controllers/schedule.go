package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/db"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/middleware"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/scheduling"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/utils"
)

type scheduleResponse struct {
	ID        uint   `json:"id"`
	DoctorID  uint   `json:"doctor_id"`
	DayOfWeek int    `json:"day_of_week"`
	DayName   string `json:"day_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func toScheduleResponse(s models.Schedule) scheduleResponse {
	return scheduleResponse{
		ID:        s.ID,
		DoctorID:  s.DoctorID,
		DayOfWeek: s.DayOfWeek,
		DayName:   models.DayNames[s.DayOfWeek],
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
	}
}

// GetDoctorSchedules lists a doctor's availability ordered by day then start.
func GetDoctorSchedules(c *fiber.Ctx) error {
	doctorID, err := c.ParamsInt("doctorID")
	if err != nil || doctorID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid doctor id",
		})
	}

	intervals, err := scheduling.ListIntervals(db.DB, uint(doctorID))
	if err != nil {
		return utils.RespondError(c, "list doctor schedules", err)
	}

	out := make([]scheduleResponse, 0, len(intervals))
	for _, iv := range intervals {
		out = append(out, toScheduleResponse(iv))
	}
	return c.JSON(out)
}

// GetWeeklySchedule returns the availability grouped by ISO day 1..7.
func GetWeeklySchedule(c *fiber.Ctx) error {
	doctorID, err := c.ParamsInt("doctorID")
	if err != nil || doctorID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid doctor id",
		})
	}

	weekly, err := scheduling.WeeklySchedule(db.DB, uint(doctorID))
	if err != nil {
		return utils.RespondError(c, "weekly schedule", err)
	}

	out := make(map[int][]scheduleResponse, len(weekly))
	for day, intervals := range weekly {
		rows := make([]scheduleResponse, 0, len(intervals))
		for _, iv := range intervals {
			rows = append(rows, toScheduleResponse(iv))
		}
		out[day] = rows
	}
	return c.JSON(out)
}

// GetMySchedule returns the weekly availability of the logged-in doctor.
func GetMySchedule(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}
	if principal.DoctorID == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No doctor profile linked to this user",
		})
	}

	weekly, err := scheduling.WeeklySchedule(db.DB, principal.DoctorID)
	if err != nil {
		return utils.RespondError(c, "my schedule", err)
	}

	out := make(map[string][]scheduleResponse, len(weekly))
	for day, intervals := range weekly {
		rows := make([]scheduleResponse, 0, len(intervals))
		for _, iv := range intervals {
			rows = append(rows, toScheduleResponse(iv))
		}
		out[models.DayNames[day]] = rows
	}
	return c.JSON(out)
}

// GetDaySlots lists bookable slot starts for one weekday, derived from the
// availability windows alone.
func GetDaySlots(c *fiber.Ctx) error {
	doctorID, err := c.ParamsInt("doctorID")
	if err != nil || doctorID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid doctor id",
		})
	}
	day := c.QueryInt("day")
	duration := c.QueryInt("duration", scheduling.DefaultSlotMinutes)

	slots, err := scheduling.DaySlots(db.DB, uint(doctorID), day, duration)
	if err != nil {
		return utils.RespondError(c, "day slots", err)
	}
	return c.JSON(slots)
}

// CreateSchedule adds an availability window for a doctor.
func CreateSchedule(c *fiber.Ctx) error {
	var in scheduling.IntervalInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	id, err := scheduling.CreateInterval(db.DB, in)
	if err != nil {
		return utils.RespondError(c, "create schedule", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":          id,
		"day_of_week": in.DayOfWeek,
		"day_name":    models.DayNames[in.DayOfWeek],
		"message":     "Schedule created successfully",
	})
}

// UpdateSchedule merges the provided fields onto an existing window.
func UpdateSchedule(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid schedule id",
		})
	}

	var patch scheduling.IntervalPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	interval, err := scheduling.UpdateInterval(db.DB, uint(id), patch)
	if err != nil {
		return utils.RespondError(c, "update schedule", err)
	}
	return c.JSON(fiber.Map{
		"message":  "Schedule updated successfully",
		"schedule": toScheduleResponse(*interval),
	})
}

// DeleteSchedule removes one availability window.
func DeleteSchedule(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid schedule id",
		})
	}

	if err := scheduling.DeleteInterval(db.DB, uint(id)); err != nil {
		return utils.RespondError(c, "delete schedule", err)
	}
	return c.JSON(fiber.Map{
		"message": "Schedule deleted successfully",
	})
}

// CopySchedules clones one doctor's availability onto another.
func CopySchedules(c *fiber.Ctx) error {
	var body struct {
		SourceDoctorID uint `json:"source_doctor_id"`
		TargetDoctorID uint `json:"target_doctor_id"`
		Overwrite      bool `json:"overwrite"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	copied, err := scheduling.CopyIntervals(db.DB, body.SourceDoctorID, body.TargetDoctorID, body.Overwrite)
	if err != nil {
		return utils.RespondError(c, "copy schedules", err)
	}
	return c.JSON(fiber.Map{
		"copied":  copied,
		"message": "Schedules copied successfully",
	})
}

// DeleteDoctorSchedules clears every window of one doctor. Zero windows is
// a success, not an error.
func DeleteDoctorSchedules(c *fiber.Ctx) error {
	doctorID, err := c.ParamsInt("doctorID")
	if err != nil || doctorID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid doctor id",
		})
	}

	deleted, err := scheduling.DeleteAllForDoctor(db.DB, uint(doctorID))
	if err != nil {
		return utils.RespondError(c, "delete doctor schedules", err)
	}
	return c.JSON(fiber.Map{
		"deleted": deleted,
		"message": "Doctor schedules deleted successfully",
	})
}

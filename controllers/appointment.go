package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/db"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/middleware"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/scheduling"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/utils"
)

// statusColors drive the calendar rendering on the frontend.
var statusColors = map[models.AppointmentStatus]struct {
	Background string
	Text       string
}{
	models.StatusPending:   {"#ffc107", "#000"},
	models.StatusConfirmed: {"#0d6efd", "#fff"},
	models.StatusCompleted: {"#198754", "#fff"},
	models.StatusCanceled:  {"#dc3545", "#fff"},
}

// GetAvailableSlots returns the free slot starts for a doctor on a date.
// A doctor without availability that weekday yields an empty list.
func GetAvailableSlots(c *fiber.Ctx) error {
	doctorID, err := c.ParamsInt("doctorID")
	if err != nil || doctorID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid doctor id",
		})
	}
	date := c.Query("date")
	if date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing date parameter",
		})
	}
	duration := c.QueryInt("duration", scheduling.DefaultSlotMinutes)

	slots, err := scheduling.AvailableSlots(db.DB, uint(doctorID), date, duration)
	if err != nil {
		return utils.RespondError(c, "available slots", err)
	}
	return c.JSON(slots)
}

// CreateAppointment books a new appointment and notifies both parties.
func CreateAppointment(c *fiber.Ctx) error {
	var in scheduling.BookingInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	id, err := scheduling.CreateAppointment(db.DB, in)
	if err != nil {
		return utils.RespondError(c, "create appointment", err)
	}

	notifyAppointment(id, "Appointment booked", "A new appointment has been scheduled.")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      id,
		"message": "Appointment scheduled successfully",
	})
}

// GetAppointment returns one appointment with doctor and patient names.
func GetAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid appointment id",
		})
	}

	appointment, err := scheduling.GetAppointment(db.DB, uint(id))
	if err != nil {
		return utils.RespondError(c, "get appointment", err)
	}
	return c.JSON(fiber.Map{
		"id":           appointment.ID,
		"doctor_id":    appointment.DoctorID,
		"doctor_name":  appointment.Doctor.User.FullName,
		"specialty":    appointment.Doctor.Specialty.Name,
		"patient_id":   appointment.PatientID,
		"patient_name": appointment.Patient.User.FullName,
		"date":         appointment.Date,
		"time":         appointment.Time,
		"reason":       appointment.Reason,
		"status":       appointment.Status,
	})
}

// UpdateAppointment fully edits an appointment; status resets to pendiente.
func UpdateAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid appointment id",
		})
	}

	var in scheduling.BookingInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if err := scheduling.UpdateAppointment(db.DB, uint(id), in); err != nil {
		return utils.RespondError(c, "update appointment", err)
	}

	notifyAppointment(uint(id), "Appointment updated", "Your appointment has been rescheduled.")

	return c.JSON(fiber.Map{
		"message": "Appointment rescheduled successfully",
	})
}

// CancelAppointment marks the appointment cancelada.
func CancelAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid appointment id",
		})
	}

	if err := scheduling.CancelAppointment(db.DB, uint(id)); err != nil {
		return utils.RespondError(c, "cancel appointment", err)
	}
	return c.JSON(fiber.Map{
		"message": "Appointment cancelled successfully",
	})
}

// ConfirmAppointment lets the owning doctor confirm a pending appointment.
func ConfirmAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid appointment id",
		})
	}
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	if err := scheduling.ConfirmAppointment(db.DB, uint(id), principal.UserID); err != nil {
		return utils.RespondError(c, "confirm appointment", err)
	}
	return c.JSON(fiber.Map{
		"message": "Appointment confirmed successfully",
	})
}

// CompleteAppointment closes out a pending or confirmed appointment.
func CompleteAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid appointment id",
		})
	}

	if err := scheduling.CompleteAppointment(db.DB, uint(id)); err != nil {
		return utils.RespondError(c, "complete appointment", err)
	}
	return c.JSON(fiber.Map{
		"message": "Appointment marked as completed",
	})
}

// RescheduleAppointment moves a pending appointment via drag-and-drop.
func RescheduleAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid appointment id",
		})
	}

	var body struct {
		Date string `json:"date"`
		Time string `json:"time"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if err := scheduling.RescheduleAppointment(db.DB, uint(id), body.Date, body.Time); err != nil {
		return utils.RespondError(c, "reschedule appointment", err)
	}

	notifyAppointment(uint(id), "Appointment rescheduled", "Your appointment has been moved to a new time.")

	return c.JSON(fiber.Map{
		"message": "Appointment rescheduled successfully",
	})
}

// GetCalendarAppointments returns appointments as calendar events, filtered
// by doctor and/or patient, ordered by (date, time).
func GetCalendarAppointments(c *fiber.Ctx) error {
	query := db.DB.Preload("Patient.User").Model(&models.Appointment{})
	if doctorID := c.QueryInt("doctor_id"); doctorID > 0 {
		query = query.Where("doctor_id = ?", doctorID)
	}
	if patientID := c.QueryInt("patient_id"); patientID > 0 {
		query = query.Where("patient_id = ?", patientID)
	}

	var appointments []models.Appointment
	if err := query.Order("date asc, time asc").Find(&appointments).Error; err != nil {
		return utils.RespondError(c, "calendar appointments", err)
	}

	events := make([]fiber.Map, 0, len(appointments))
	for _, appt := range appointments {
		colors := statusColors[appt.Status]
		events = append(events, fiber.Map{
			"id":              appt.ID,
			"title":           appt.Patient.User.FullName,
			"start":           appt.Date + "T" + appt.Time + ":00",
			"backgroundColor": colors.Background,
			"borderColor":     colors.Background,
			"textColor":       colors.Text,
			"status":          appt.Status,
		})
	}
	return c.JSON(events)
}

// GetDetailedAppointments lists appointments with names and specialty.
// Doctors only see their own agenda; admin and reception see everything.
// Most recent first.
func GetDetailedAppointments(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	query := db.DB.Preload("Doctor.User").Preload("Doctor.Specialty").
		Preload("Patient.User").
		Model(&models.Appointment{})
	if principal.IsDoctor() {
		query = query.Where("doctor_id = ?", principal.DoctorID)
	}

	var appointments []models.Appointment
	if err := query.Order("date desc, time desc").Find(&appointments).Error; err != nil {
		return utils.RespondError(c, "detailed appointments", err)
	}

	out := make([]fiber.Map, 0, len(appointments))
	for _, appt := range appointments {
		out = append(out, fiber.Map{
			"id":           appt.ID,
			"patient_name": appt.Patient.User.FullName,
			"doctor_name":  appt.Doctor.User.FullName,
			"specialty":    appt.Doctor.Specialty.Name,
			"date":         appt.Date,
			"time":         appt.Time,
			"reason":       appt.Reason,
			"status":       appt.Status,
		})
	}
	return c.JSON(out)
}

// GetTodayAgenda lists today's appointments ordered by time.
func GetTodayAgenda(c *fiber.Ctx) error {
	var appointments []models.Appointment
	err := db.DB.Preload("Doctor.User").Preload("Doctor.Specialty").
		Preload("Patient.User").
		Where("date = ?", utils.Today()).
		Order("time asc").
		Find(&appointments).Error
	if err != nil {
		return utils.RespondError(c, "today agenda", err)
	}

	out := make([]fiber.Map, 0, len(appointments))
	for _, appt := range appointments {
		out = append(out, fiber.Map{
			"id":           appt.ID,
			"time":         appt.Time,
			"patient_name": appt.Patient.User.FullName,
			"doctor_name":  appt.Doctor.User.FullName,
			"specialty":    appt.Doctor.Specialty.Name,
			"status":       appt.Status,
		})
	}
	return c.JSON(out)
}

// GetAppointmentStats returns the counters shown on the dashboards.
func GetAppointmentStats(c *fiber.Ctx) error {
	var pending, today, completed int64
	if err := db.DB.Model(&models.Appointment{}).
		Where("status = ?", models.StatusPending).
		Count(&pending).Error; err != nil {
		return utils.RespondError(c, "appointment stats", err)
	}
	if err := db.DB.Model(&models.Appointment{}).
		Where("date = ? AND status = ?", utils.Today(), models.StatusPending).
		Count(&today).Error; err != nil {
		return utils.RespondError(c, "appointment stats", err)
	}
	if err := db.DB.Model(&models.Appointment{}).
		Where("status = ?", models.StatusCompleted).
		Count(&completed).Error; err != nil {
		return utils.RespondError(c, "appointment stats", err)
	}

	return c.JSON(fiber.Map{
		"pending":   pending,
		"today":     today,
		"completed": completed,
	})
}

// notifyAppointment emails both parties about an appointment event.
// Best effort: notification failures never affect the request outcome.
func notifyAppointment(id uint, subject, action string) {
	appointment, err := scheduling.GetAppointment(db.DB, id)
	if err != nil {
		return
	}
	doctorName := appointment.Doctor.User.FullName
	patientName := appointment.Patient.User.FullName
	go utils.SendAppointmentEmail(appointment.Patient.User.Email, patientName,
		subject, action, appointment, doctorName, patientName)
	go utils.SendAppointmentEmail(appointment.Doctor.User.Email, doctorName,
		subject, action, appointment, doctorName, patientName)
}

package controllers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/db"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/middleware"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/scheduling"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/utils"
)

// ChatbotMessage answers simple keyword questions from the in-app assistant.
// Doctors get answers computed from their live agenda; everyone else gets
// navigation help. This is intentionally a keyword matcher, not an NLP
// pipeline.
func ChatbotMessage(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	msg := strings.ToLower(body.Message)
	reply := func(text string) error {
		return c.JSON(fiber.Map{"reply": text})
	}

	switch {
	case containsAny(msg, "cita", "citas", "appointment"):
		if principal.IsDoctor() {
			return reply(doctorAgendaSummary(principal.DoctorID))
		}
		return reply("You can book or manage appointments from the Appointments section. " +
			"Conflicting times are rejected automatically.")

	case containsAny(msg, "horario", "schedule", "disponibilidad"):
		if principal.IsDoctor() {
			return reply(doctorScheduleSummary(principal.DoctorID))
		}
		return reply("Doctor availability is managed under Schedules. " +
			"Each doctor has weekly time windows per weekday.")

	case containsAny(msg, "asistencia", "attendance"):
		return reply("Attendance check-in and check-out are registered in the Attendance section, " +
			"one record per doctor per day.")

	case containsAny(msg, "hola", "hello", "buenas"):
		return reply("Hello! Ask me about appointments, schedules or attendance.")

	default:
		return reply("I did not understand that. Try asking about 'citas', 'horario' or 'asistencia'.")
	}
}

func containsAny(msg string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(msg, w) {
			return true
		}
	}
	return false
}

func doctorAgendaSummary(doctorID uint) string {
	var today, pending int64
	db.DB.Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ?", doctorID, utils.Today()).
		Count(&today)
	db.DB.Model(&models.Appointment{}).
		Where("doctor_id = ? AND status = ?", doctorID, models.StatusPending).
		Count(&pending)
	return fmt.Sprintf("You have %d appointment(s) today and %d pending confirmation overall.", today, pending)
}

func doctorScheduleSummary(doctorID uint) string {
	intervals, err := scheduling.ListIntervals(db.DB, doctorID)
	if err != nil || len(intervals) == 0 {
		return "You have no availability windows registered yet."
	}
	parts := make([]string, 0, len(intervals))
	for _, iv := range intervals {
		parts = append(parts, fmt.Sprintf("%s %s-%s",
			models.DayNames[iv.DayOfWeek], iv.StartTime, iv.EndTime))
	}
	return "Your weekly availability: " + strings.Join(parts, ", ") + "."
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/controllers"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/middleware"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointments := app.Group("/api/appointments", middleware.Protected())

	appointments.Get("/calendar", controllers.GetCalendarAppointments)
	appointments.Get("/detailed", controllers.GetDetailedAppointments)
	appointments.Get("/today", controllers.GetTodayAgenda)
	appointments.Get("/stats", controllers.GetAppointmentStats)
	appointments.Get("/doctor/:doctorID/available", controllers.GetAvailableSlots)
	appointments.Get("/:id", controllers.GetAppointment)

	appointments.Post("/", controllers.CreateAppointment)
	appointments.Put("/:id", controllers.UpdateAppointment)
	appointments.Patch("/:id/cancel", controllers.CancelAppointment)
	appointments.Patch("/:id/confirm", middleware.RequireRoles(models.RoleDoctor), controllers.ConfirmAppointment)
	appointments.Patch("/:id/complete", controllers.CompleteAppointment)
	appointments.Patch("/:id/reschedule", controllers.RescheduleAppointment)
}

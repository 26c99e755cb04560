package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/controllers"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/middleware"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
)

// SetupScheduleRoutes configures all availability related routes
func SetupScheduleRoutes(app *fiber.App) {
	schedules := app.Group("/api/schedules", middleware.Protected())

	schedules.Get("/my-schedule", controllers.GetMySchedule)
	schedules.Get("/doctor/:doctorID", controllers.GetDoctorSchedules)
	schedules.Get("/doctor/:doctorID/weekly", controllers.GetWeeklySchedule)
	schedules.Get("/doctor/:doctorID/slots", controllers.GetDaySlots)
	schedules.Get("/doctor/:doctorID/export/pdf", controllers.ExportSchedulePDF)

	// Editing availability is a front-desk/admin task.
	editors := middleware.RequireRoles(models.RoleAdmin, models.RoleReception)
	schedules.Post("/", editors, controllers.CreateSchedule)
	schedules.Put("/:id", editors, controllers.UpdateSchedule)
	schedules.Delete("/:id", editors, controllers.DeleteSchedule)

	// Bulk operations rewrite whole calendars, admin only.
	admin := middleware.RequireRoles(models.RoleAdmin)
	schedules.Post("/copy", admin, controllers.CopySchedules)
	schedules.Delete("/doctor/:doctorID", admin, controllers.DeleteDoctorSchedules)
}

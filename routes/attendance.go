package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/controllers"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/middleware"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
)

// SetupAttendanceRoutes configures attendance routes
func SetupAttendanceRoutes(app *fiber.App) {
	attendance := app.Group("/api/attendance", middleware.Protected())

	attendance.Get("/", controllers.GetAttendance)

	desk := middleware.RequireRoles(models.RoleAdmin, models.RoleReception)
	attendance.Post("/", desk, controllers.RegisterAttendance)
	attendance.Put("/:id/checkout", desk, controllers.CheckOutAttendance)
	attendance.Delete("/:id", middleware.RequireRoles(models.RoleAdmin), controllers.DeleteAttendance)
}

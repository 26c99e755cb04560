package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/controllers"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/middleware"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
)

// SetupPatientRoutes configures patient routes
func SetupPatientRoutes(app *fiber.App) {
	patients := app.Group("/api/patients", middleware.Protected())

	patients.Get("/", controllers.GetPatients)
	patients.Get("/:id", controllers.GetPatient)

	desk := middleware.RequireRoles(models.RoleAdmin, models.RoleReception)
	patients.Post("/", desk, controllers.CreatePatient)
	patients.Put("/:id", desk, controllers.UpdatePatient)
}

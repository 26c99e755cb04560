package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/controllers"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/middleware"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
)

// SetupDoctorRoutes configures doctor and specialty routes
func SetupDoctorRoutes(app *fiber.App) {
	doctors := app.Group("/api/doctors", middleware.Protected())

	doctors.Get("/", controllers.GetDoctors)
	doctors.Get("/active", controllers.GetActiveDoctors)
	doctors.Get("/:id", controllers.GetDoctor)

	admin := middleware.RequireRoles(models.RoleAdmin)
	doctors.Post("/", admin, controllers.CreateDoctor)
	doctors.Put("/:id", admin, controllers.UpdateDoctor)
	doctors.Delete("/:id", admin, controllers.DeactivateDoctor)

	app.Get("/api/specialties", middleware.Protected(), controllers.GetSpecialties)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/controllers"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/middleware"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
)

// SetupDashboardRoutes configures the dashboard and chatbot routes
func SetupDashboardRoutes(app *fiber.App) {
	dashboard := app.Group("/api/dashboard", middleware.Protected())

	dashboard.Get("/admin", middleware.RequireRoles(models.RoleAdmin), controllers.GetAdminDashboard)
	dashboard.Get("/doctor", middleware.RequireRoles(models.RoleDoctor), controllers.GetDoctorDashboard)
	dashboard.Get("/reception", middleware.RequireRoles(models.RoleAdmin, models.RoleReception), controllers.GetReceptionDashboard)
	dashboard.Get("/upcoming", controllers.GetUpcomingAppointments)

	app.Post("/api/chatbot/message", middleware.Protected(), controllers.ChatbotMessage)
}

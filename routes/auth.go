package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/controllers"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/forgot-password", controllers.ForgotPassword)
	auth.Post("/reset-password", controllers.ResetPassword)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.Me)
	auth.Post("/refresh", middleware.Protected(), controllers.Refresh)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
}

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/cron"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/db"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/redis"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/routes"
)

func main() {
	app := fiber.New()
	db.Migrate()

	if os.Getenv("REDIS_ADDR") != "" {
		redis.InitRedis()
	} else {
		log.Println("REDIS_ADDR not set, dashboard caching disabled")
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(logger.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Clinic API is running")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupPatientRoutes(app)
	routes.SetupScheduleRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupAttendanceRoutes(app)
	routes.SetupDashboardRoutes(app)

	cron.StartCronJobs()

	// Stop accepting requests before draining the pool so handlers never
	// observe a closed database.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down...")
		if err := app.Shutdown(); err != nil {
			log.Println("Error during shutdown:", err)
		}
		db.Close()
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

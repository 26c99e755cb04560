package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/db"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/middleware"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/redis"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/utils"
)

// Dashboard counters change slowly relative to how often the frontends poll
// them, so results sit in redis for a minute.
const dashboardCacheTTL = 60 * time.Second

type adminStats struct {
	Doctors           int64 `json:"doctors"`
	Patients          int64 `json:"patients"`
	AppointmentsToday int64 `json:"appointments_today"`
	Pending           int64 `json:"pending"`
	Completed         int64 `json:"completed"`
	Canceled          int64 `json:"canceled"`
}

// GetAdminDashboard returns the clinic-wide counters.
func GetAdminDashboard(c *fiber.Ctx) error {
	var stats adminStats
	if redis.GetJSON("dashboard:admin", &stats) {
		return c.JSON(stats)
	}

	today := utils.Today()
	steps := []error{
		db.DB.Model(&models.Doctor{}).Where("active = ?", true).Count(&stats.Doctors).Error,
		db.DB.Model(&models.Patient{}).Where("active = ?", true).Count(&stats.Patients).Error,
		db.DB.Model(&models.Appointment{}).Where("date = ?", today).Count(&stats.AppointmentsToday).Error,
		db.DB.Model(&models.Appointment{}).Where("status = ?", models.StatusPending).Count(&stats.Pending).Error,
		db.DB.Model(&models.Appointment{}).Where("status = ?", models.StatusCompleted).Count(&stats.Completed).Error,
		db.DB.Model(&models.Appointment{}).Where("status = ?", models.StatusCanceled).Count(&stats.Canceled).Error,
	}
	for _, err := range steps {
		if err != nil {
			return utils.RespondError(c, "admin dashboard", err)
		}
	}

	redis.SetJSON("dashboard:admin", stats, dashboardCacheTTL)
	return c.JSON(stats)
}

type doctorStats struct {
	Today     int64 `json:"today"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Completed int64 `json:"completed"`
}

// GetDoctorDashboard returns counters scoped to the logged-in doctor.
func GetDoctorDashboard(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}
	if principal.DoctorID == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No doctor profile linked to this user",
		})
	}

	key := fmt.Sprintf("dashboard:doctor:%d", principal.DoctorID)
	var stats doctorStats
	if redis.GetJSON(key, &stats) {
		return c.JSON(stats)
	}

	today := utils.Today()
	steps := []error{
		db.DB.Model(&models.Appointment{}).
			Where("doctor_id = ? AND date = ?", principal.DoctorID, today).
			Count(&stats.Today).Error,
		db.DB.Model(&models.Appointment{}).
			Where("doctor_id = ? AND status = ?", principal.DoctorID, models.StatusPending).
			Count(&stats.Pending).Error,
		db.DB.Model(&models.Appointment{}).
			Where("doctor_id = ? AND status = ?", principal.DoctorID, models.StatusConfirmed).
			Count(&stats.Confirmed).Error,
		db.DB.Model(&models.Appointment{}).
			Where("doctor_id = ? AND status = ?", principal.DoctorID, models.StatusCompleted).
			Count(&stats.Completed).Error,
	}
	for _, err := range steps {
		if err != nil {
			return utils.RespondError(c, "doctor dashboard", err)
		}
	}

	redis.SetJSON(key, stats, dashboardCacheTTL)
	return c.JSON(stats)
}

type receptionStats struct {
	Today     int64 `json:"today"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Doctors   int64 `json:"doctors"`
}

// GetReceptionDashboard returns the front-desk counters.
func GetReceptionDashboard(c *fiber.Ctx) error {
	var stats receptionStats
	if redis.GetJSON("dashboard:reception", &stats) {
		return c.JSON(stats)
	}

	today := utils.Today()
	steps := []error{
		db.DB.Model(&models.Appointment{}).Where("date = ?", today).Count(&stats.Today).Error,
		db.DB.Model(&models.Appointment{}).Where("status = ?", models.StatusPending).Count(&stats.Pending).Error,
		db.DB.Model(&models.Appointment{}).Where("status = ?", models.StatusConfirmed).Count(&stats.Confirmed).Error,
		db.DB.Model(&models.Doctor{}).Where("active = ?", true).Count(&stats.Doctors).Error,
	}
	for _, err := range steps {
		if err != nil {
			return utils.RespondError(c, "reception dashboard", err)
		}
	}

	redis.SetJSON("dashboard:reception", stats, dashboardCacheTTL)
	return c.JSON(stats)
}

// GetUpcomingAppointments lists the next appointments from today onward,
// scoped to the doctor when the caller has a doctor profile.
func GetUpcomingAppointments(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	limit := c.QueryInt("limit", 10)
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	query := db.DB.Preload("Doctor.User").Preload("Patient.User").
		Where("date >= ?", utils.Today()).
		Where("status IN ?", []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed})
	if principal.IsDoctor() {
		query = query.Where("doctor_id = ?", principal.DoctorID)
	}

	var appointments []models.Appointment
	err := query.Order("date asc, time asc").Limit(limit).Find(&appointments).Error
	if err != nil {
		return utils.RespondError(c, "upcoming appointments", err)
	}

	out := make([]fiber.Map, 0, len(appointments))
	for _, appt := range appointments {
		out = append(out, fiber.Map{
			"id":           appt.ID,
			"date":         appt.Date,
			"time":         appt.Time,
			"doctor_name":  appt.Doctor.User.FullName,
			"patient_name": appt.Patient.User.FullName,
			"status":       appt.Status,
		})
	}
	return c.JSON(out)
}

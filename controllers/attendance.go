package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/db"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/scheduling"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/utils"
)

// RegisterAttendance records a doctor's check-in for one date. One record
// per doctor per date; a second attempt answers 400.
func RegisterAttendance(c *fiber.Ctx) error {
	var body struct {
		DoctorID uint   `json:"doctor_id"`
		Date     string `json:"date"`
		CheckIn  string `json:"check_in"`
		Status   string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if body.DoctorID == 0 || body.Date == "" || body.CheckIn == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "doctor_id, date and check_in are required",
		})
	}
	if _, err := scheduling.ParseDate(body.Date); err != nil {
		return utils.RespondError(c, "register attendance", err)
	}
	checkIn, err := scheduling.ParseTimeOfDay(body.CheckIn)
	if err != nil {
		return utils.RespondError(c, "register attendance", err)
	}

	status := models.AttendanceStatus(body.Status)
	if status == "" {
		status = models.AttendancePresent
	}
	switch status {
	case models.AttendancePresent, models.AttendanceLate, models.AttendanceAbsent:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid attendance status",
		})
	}

	attendance := models.Attendance{
		DoctorID: body.DoctorID,
		Date:     body.Date,
		CheckIn:  checkIn.String(),
		Status:   status,
	}
	if err := db.DB.Create(&attendance).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Attendance already registered for this doctor on this date",
			})
		}
		return utils.RespondError(c, "register attendance", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      attendance.ID,
		"message": "Attendance registered successfully",
	})
}

// GetAttendance lists attendance records with optional doctor and date-range
// filters, newest first.
func GetAttendance(c *fiber.Ctx) error {
	query := db.DB.Model(&models.Attendance{})
	if doctorID := c.QueryInt("doctor_id"); doctorID > 0 {
		query = query.Where("doctor_id = ?", doctorID)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var records []models.Attendance
	if err := query.Order("date desc, check_in desc").Find(&records).Error; err != nil {
		return utils.RespondError(c, "list attendance", err)
	}
	return c.JSON(records)
}

// CheckOutAttendance stamps the check-out time on an open record.
func CheckOutAttendance(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid attendance id",
		})
	}

	var body struct {
		CheckOut string `json:"check_out"`
	}
	if err := c.BodyParser(&body); err != nil || body.CheckOut == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "check_out is required",
		})
	}
	checkOut, err := scheduling.ParseTimeOfDay(body.CheckOut)
	if err != nil {
		return utils.RespondError(c, "check out", err)
	}

	var record models.Attendance
	if err := db.DB.First(&record, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Attendance record not found",
		})
	}
	if checkIn, err := scheduling.ParseTimeOfDay(record.CheckIn); err == nil && checkOut <= checkIn {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Check-out must be after check-in",
		})
	}

	out := checkOut.String()
	if err := db.DB.Model(&record).Update("check_out", &out).Error; err != nil {
		return utils.RespondError(c, "check out", err)
	}
	return c.JSON(fiber.Map{"message": "Check-out registered successfully"})
}

// DeleteAttendance removes a record, typically one registered by mistake.
func DeleteAttendance(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid attendance id",
		})
	}

	res := db.DB.Delete(&models.Attendance{}, id)
	if res.Error != nil {
		return utils.RespondError(c, "delete attendance", res.Error)
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Attendance record not found",
		})
	}
	return c.JSON(fiber.Map{"message": "Attendance record deleted"})
}

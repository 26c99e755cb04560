package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/db"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/utils"
)

func toDoctorResponse(d models.Doctor) fiber.Map {
	return fiber.Map{
		"id":             d.ID,
		"user_id":        d.UserID,
		"full_name":      d.User.FullName,
		"email":          d.User.Email,
		"phone":          d.User.Phone,
		"specialty_id":   d.SpecialtyID,
		"specialty":      d.Specialty.Name,
		"license_number": d.LicenseNumber,
		"active":         d.Active,
	}
}

// GetDoctors lists every doctor, optionally filtered by specialty.
func GetDoctors(c *fiber.Ctx) error {
	query := db.DB.Preload("User").Preload("Specialty")
	if specialtyID := c.QueryInt("specialty_id"); specialtyID > 0 {
		query = query.Where("specialty_id = ?", specialtyID)
	}

	var doctors []models.Doctor
	if err := query.Find(&doctors).Error; err != nil {
		return utils.RespondError(c, "list doctors", err)
	}

	out := make([]fiber.Map, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, toDoctorResponse(d))
	}
	return c.JSON(out)
}

// GetActiveDoctors lists only doctors currently taking appointments.
func GetActiveDoctors(c *fiber.Ctx) error {
	var doctors []models.Doctor
	err := db.DB.Preload("User").Preload("Specialty").
		Where("active = ?", true).
		Find(&doctors).Error
	if err != nil {
		return utils.RespondError(c, "list active doctors", err)
	}

	out := make([]fiber.Map, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, toDoctorResponse(d))
	}
	return c.JSON(out)
}

// GetDoctor returns one doctor profile.
func GetDoctor(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid doctor id",
		})
	}

	var doctor models.Doctor
	err = db.DB.Preload("User").Preload("Specialty").First(&doctor, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Doctor not found",
			})
		}
		return utils.RespondError(c, "get doctor", err)
	}
	return c.JSON(toDoctorResponse(doctor))
}

// CreateDoctor attaches a doctor profile to an existing user account and
// promotes the account to the doctor role.
func CreateDoctor(c *fiber.Ctx) error {
	var body struct {
		UserID        uint   `json:"user_id"`
		SpecialtyID   uint   `json:"specialty_id"`
		LicenseNumber string `json:"license_number"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if body.UserID == 0 || body.SpecialtyID == 0 || body.LicenseNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id, specialty_id and license_number are required",
		})
	}

	doctor := models.Doctor{
		UserID:        body.UserID,
		SpecialtyID:   body.SpecialtyID,
		LicenseNumber: body.LicenseNumber,
		Active:        true,
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, body.UserID).Error; err != nil {
			return errors.New("user not found")
		}
		if err := tx.Create(&doctor).Error; err != nil {
			return err
		}
		return tx.Model(&user).Update("role_id", models.RoleDoctor).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "This user already has a doctor profile or the license number is taken",
			})
		}
		if err.Error() == "user not found" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return utils.RespondError(c, "create doctor", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      doctor.ID,
		"message": "Doctor created successfully",
	})
}

// UpdateDoctor edits specialty, license or active flag.
func UpdateDoctor(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid doctor id",
		})
	}

	var body struct {
		SpecialtyID   *uint   `json:"specialty_id"`
		LicenseNumber *string `json:"license_number"`
		Active        *bool   `json:"active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var doctor models.Doctor
	if err := db.DB.First(&doctor, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}

	if body.SpecialtyID != nil {
		doctor.SpecialtyID = *body.SpecialtyID
	}
	if body.LicenseNumber != nil {
		doctor.LicenseNumber = *body.LicenseNumber
	}
	if body.Active != nil {
		doctor.Active = *body.Active
	}
	if err := db.DB.Save(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "License number already in use",
			})
		}
		return utils.RespondError(c, "update doctor", err)
	}

	return c.JSON(fiber.Map{"message": "Doctor updated successfully"})
}

// DeactivateDoctor marks a doctor inactive. Rows are never hard deleted so
// past appointments keep a valid doctor reference.
func DeactivateDoctor(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid doctor id",
		})
	}

	res := db.DB.Model(&models.Doctor{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return utils.RespondError(c, "deactivate doctor", res.Error)
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}
	return c.JSON(fiber.Map{"message": "Doctor deactivated successfully"})
}

// GetSpecialties lists the catalogue of medical specialties.
func GetSpecialties(c *fiber.Ctx) error {
	var specialties []models.Specialty
	if err := db.DB.Order("name asc").Find(&specialties).Error; err != nil {
		return utils.RespondError(c, "list specialties", err)
	}
	return c.JSON(specialties)
}

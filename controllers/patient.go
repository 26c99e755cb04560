package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/db"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/utils"
)

func toPatientResponse(p models.Patient) fiber.Map {
	return fiber.Map{
		"id":         p.ID,
		"user_id":    p.UserID,
		"full_name":  p.User.FullName,
		"email":      p.User.Email,
		"phone":      p.User.Phone,
		"birth_date": p.BirthDate,
		"gender":     p.Gender,
		"address":    p.Address,
		"blood_type": p.BloodType,
		"active":     p.Active,
	}
}

// GetPatients lists patients, newest registrations first.
func GetPatients(c *fiber.Ctx) error {
	var patients []models.Patient
	err := db.DB.Preload("User").Order("id desc").Find(&patients).Error
	if err != nil {
		return utils.RespondError(c, "list patients", err)
	}

	out := make([]fiber.Map, 0, len(patients))
	for _, p := range patients {
		out = append(out, toPatientResponse(p))
	}
	return c.JSON(out)
}

// GetPatient returns one patient profile.
func GetPatient(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid patient id",
		})
	}

	var patient models.Patient
	if err := db.DB.Preload("User").First(&patient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Patient not found",
			})
		}
		return utils.RespondError(c, "get patient", err)
	}
	return c.JSON(toPatientResponse(patient))
}

// CreatePatient attaches a patient profile to an existing user account.
func CreatePatient(c *fiber.Ctx) error {
	var body struct {
		UserID    uint   `json:"user_id"`
		BirthDate string `json:"birth_date"`
		Gender    string `json:"gender"`
		Address   string `json:"address"`
		BloodType string `json:"blood_type"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if body.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	var user models.User
	if err := db.DB.First(&user, body.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	patient := models.Patient{
		UserID:    body.UserID,
		BirthDate: body.BirthDate,
		Gender:    body.Gender,
		Address:   body.Address,
		BloodType: body.BloodType,
		Active:    true,
	}
	if err := db.DB.Create(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "This user already has a patient profile",
			})
		}
		return utils.RespondError(c, "create patient", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      patient.ID,
		"message": "Patient created successfully",
	})
}

// UpdatePatient edits the clinical profile fields.
func UpdatePatient(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid patient id",
		})
	}

	var body struct {
		BirthDate *string `json:"birth_date"`
		Gender    *string `json:"gender"`
		Address   *string `json:"address"`
		BloodType *string `json:"blood_type"`
		Active    *bool   `json:"active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Patient not found",
		})
	}

	if body.BirthDate != nil {
		patient.BirthDate = *body.BirthDate
	}
	if body.Gender != nil {
		patient.Gender = *body.Gender
	}
	if body.Address != nil {
		patient.Address = *body.Address
	}
	if body.BloodType != nil {
		patient.BloodType = *body.BloodType
	}
	if body.Active != nil {
		patient.Active = *body.Active
	}
	if err := db.DB.Save(&patient).Error; err != nil {
		return utils.RespondError(c, "update patient", err)
	}

	return c.JSON(fiber.Map{"message": "Patient updated successfully"})
}

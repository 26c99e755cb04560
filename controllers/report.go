package controllers

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jung-kurt/gofpdf"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/db"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/scheduling"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/utils"
)

// ExportSchedulePDF renders a doctor's weekly availability as a printable
// PDF, the sheet reception pins at the front desk.
func ExportSchedulePDF(c *fiber.Ctx) error {
	doctorID, err := c.ParamsInt("doctorID")
	if err != nil || doctorID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid doctor id",
		})
	}

	var doctor models.Doctor
	err = db.DB.Preload("User").Preload("Specialty").First(&doctor, doctorID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}

	weekly, err := scheduling.WeeklySchedule(db.DB, uint(doctorID))
	if err != nil {
		return utils.RespondError(c, "export schedule pdf", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Weekly Schedule")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Doctor: %s", doctor.User.FullName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Specialty: %s", doctor.Specialty.Name))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(60, 8, "Day", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, "From", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 8, "To", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for day := 1; day <= 7; day++ {
		intervals := weekly[day]
		if len(intervals) == 0 {
			pdf.CellFormat(60, 8, models.DayNames[day], "1", 0, "L", false, 0, "")
			pdf.CellFormat(120, 8, "Not available", "1", 1, "C", false, 0, "")
			continue
		}
		for i, iv := range intervals {
			name := ""
			if i == 0 {
				name = models.DayNames[day]
			}
			pdf.CellFormat(60, 8, name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(60, 8, iv.StartTime, "1", 0, "C", false, 0, "")
			pdf.CellFormat(60, 8, iv.EndTime, "1", 1, "C", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return utils.RespondError(c, "export schedule pdf", err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="schedule_doctor_%d.pdf"`, doctorID))
	return c.Send(buf.Bytes())
}

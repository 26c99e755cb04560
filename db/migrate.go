package db

import (
	"fmt"
	"log"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Specialty{},
		&models.Doctor{},
		&models.Patient{},
		&models.Schedule{},
		&models.Appointment{},
		&models.Attendance{},
		&models.PasswordResetToken{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	seedRoles()
	seedSpecialties()

	fmt.Println("✅ Migrations applied successfully!")
}

// seedRoles guarantees the three fixed roles exist with their well-known ids.
func seedRoles() {
	roles := []models.Role{
		{ID: models.RoleAdmin, Name: "admin", Description: "Administrator with full access"},
		{ID: models.RoleDoctor, Name: "doctor", Description: "Doctor managing their own agenda"},
		{ID: models.RoleReception, Name: "reception", Description: "Front desk staff managing patients and bookings"},
	}
	for _, role := range roles {
		var existing models.Role
		if DB.Where("id = ?", role.ID).First(&existing).RowsAffected == 0 {
			DB.Create(&role)
		}
	}
}

func seedSpecialties() {
	names := []string{
		"Medicina General",
		"Pediatría",
		"Cardiología",
		"Dermatología",
		"Traumatología",
		"Ginecología",
	}
	for _, name := range names {
		var existing models.Specialty
		if DB.Where("name = ?", name).First(&existing).RowsAffected == 0 {
			DB.Create(&models.Specialty{Name: name})
		}
	}
}

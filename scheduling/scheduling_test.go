package scheduling

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
)

// testDB opens an isolated in-memory database per test and migrates the
// scheduling-related models into it.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("access pool: %v", err)
	}
	// A single connection keeps the shared in-memory db alive for the whole
	// test and serializes concurrent transactions the way sqlite requires.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Specialty{},
		&models.Doctor{},
		&models.Patient{},
		&models.Schedule{},
		&models.Appointment{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	if err := db.FirstOrCreate(&models.Specialty{}, models.Specialty{ID: 1, Name: "Medicina General"}).Error; err != nil {
		t.Fatalf("seed specialty: %v", err)
	}
	return db
}

func seedDoctor(t *testing.T, db *gorm.DB, name string) models.Doctor {
	t.Helper()
	user := models.User{
		FullName: name,
		Username: strings.ToLower(strings.ReplaceAll(name, " ", ".")),
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@clinic.test",
		Password: "x",
		RoleID:   models.RoleDoctor,
		Active:   true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed doctor user: %v", err)
	}
	doctor := models.Doctor{
		UserID:        user.ID,
		SpecialtyID:   1,
		LicenseNumber: fmt.Sprintf("LIC-%d", user.ID),
		Active:        true,
	}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	doctor.User = user
	return doctor
}

func seedPatient(t *testing.T, db *gorm.DB, name string) models.Patient {
	t.Helper()
	user := models.User{
		FullName: name,
		Username: strings.ToLower(strings.ReplaceAll(name, " ", "_")),
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", "_")) + "@mail.test",
		Password: "x",
		RoleID:   models.RoleReception,
		Active:   true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed patient user: %v", err)
	}
	patient := models.Patient{UserID: user.ID, Active: true}
	if err := db.Create(&patient).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	patient.User = user
	return patient
}

func mustCreateInterval(t *testing.T, db *gorm.DB, doctorID uint, day int, start, end string) uint {
	t.Helper()
	id, err := CreateInterval(db, IntervalInput{
		DoctorID:  doctorID,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		t.Fatalf("create interval %d %s-%s: %v", day, start, end, err)
	}
	return id
}

// nextDate returns the first date strictly after today falling on the given
// ISO weekday, formatted YYYY-MM-DD. Booking validation rejects past dates,
// so tests always work with future ones.
func nextDate(day int) string {
	d := time.Now().AddDate(0, 0, 1)
	for ISOWeekday(d) != day {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

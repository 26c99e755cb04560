package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/db"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/utils"
)

// StartCronJobs initializes and starts the cron scheduler for appointment reminders
func StartCronJobs() {
	c := cron.New()
	// Run every minute to check for appointments in the next hour
	_, err := c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
}

// sendAppointmentReminders emails patients whose confirmed appointment
// starts in roughly one hour. The window is ten minutes wide and the job
// runs every minute, so each appointment gets a handful of reminder mails
// at most; duplicates are acceptable, missed reminders are not.
func sendAppointmentReminders() {
	conn := db.GetDB()
	if conn == nil {
		return
	}

	loc := utils.ClinicLocation()
	now := time.Now().In(loc)
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	dates := []string{startWindow.Format("2006-01-02")}
	if d := endWindow.Format("2006-01-02"); d != dates[0] {
		dates = append(dates, d)
	}

	var appointments []models.Appointment
	err := conn.Preload("Doctor.User").Preload("Patient.User").
		Where("status = ? AND date IN ?", models.StatusConfirmed, dates).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		starts, err := time.ParseInLocation("2006-01-02 15:04", appointment.Date+" "+appointment.Time, loc)
		if err != nil {
			continue
		}
		if starts.Before(startWindow) || !starts.Before(endWindow) {
			continue
		}
		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Patient.User.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	subject := "Reminder: Upcoming Appointment"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>Clinic UPTAMCA</p>
	`, appointment.Patient.User.FullName, appointment.Doctor.User.FullName,
		appointment.Date, appointment.Time)

	return utils.SendEmail(appointment.Patient.User.Email, subject, body)
}

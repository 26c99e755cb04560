package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/gomail.v2"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
)

func SendEmail(to, subject, body string) error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("EMAIL_USER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)

	return d.DialAndSend(m)
}

// SendAppointmentEmail notifies one recipient about an appointment event
// (booked, rescheduled, reminder). Failures are logged, never fatal: losing
// a notification must not roll back a booking.
func SendAppointmentEmail(to, recipientName, subject, action string, appointment *models.Appointment, doctorName, patientName string) {
	if to == "" {
		return
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>%s</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Patient:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>Clinic UPTAMCA</p>
	`, recipientName, action, doctorName, patientName,
		appointment.Date, appointment.Time, appointment.Status)

	if err := SendEmail(to, subject, body); err != nil {
		log.Printf("failed to send appointment email to %s: %v", to, err)
	}
}

package scheduling

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
)

func TestCreateAppointment(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")
	patient := seedPatient(t, db, "Maria Gomez")
	date := nextDate(1)

	id, err := CreateAppointment(db, BookingInput{
		DoctorID:  doctor.ID,
		PatientID: patient.ID,
		Date:      date,
		Time:      "09:00",
		Reason:    "control",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := GetAppointment(db, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.StatusPending {
		t.Fatalf("status = %s, want pendiente", got.Status)
	}
	if got.Doctor.User.FullName != "Ana Perez" || got.Patient.User.FullName != "Maria Gomez" {
		t.Fatalf("preloads missing: %+v", got)
	}
}

func TestCreateAppointmentRejectsTakenSlot(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")
	p1 := seedPatient(t, db, "Maria Gomez")
	p2 := seedPatient(t, db, "Pedro Lara")
	date := nextDate(1)

	in := BookingInput{DoctorID: doctor.ID, PatientID: p1.ID, Date: date, Time: "09:00", Reason: "control"}
	if _, err := CreateAppointment(db, in); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	in.PatientID = p2.ID
	_, err := CreateAppointment(db, in)
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError for taken slot, got %v", err)
	}

	// A different doctor at the same time is fine.
	other := seedDoctor(t, db, "Luis Rojas")
	in.DoctorID = other.ID
	if _, err := CreateAppointment(db, in); err != nil {
		t.Fatalf("other doctor same slot: %v", err)
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")
	patient := seedPatient(t, db, "Maria Gomez")

	var ve *ValidationError

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	_, err := CreateAppointment(db, BookingInput{
		DoctorID: doctor.ID, PatientID: patient.ID,
		Date: yesterday, Time: "09:00", Reason: "control",
	})
	if !errors.As(err, &ve) {
		t.Errorf("past date: expected ValidationError, got %v", err)
	}

	_, err = CreateAppointment(db, BookingInput{
		DoctorID: doctor.ID, PatientID: patient.ID,
		Date: nextDate(1), Time: "09:00",
	})
	if !errors.As(err, &ve) {
		t.Errorf("missing reason: expected ValidationError, got %v", err)
	}

	_, err = CreateAppointment(db, BookingInput{
		DoctorID: doctor.ID, PatientID: patient.ID,
		Date: nextDate(1), Time: "25:00", Reason: "control",
	})
	if !errors.As(err, &ve) {
		t.Errorf("bad time: expected ValidationError, got %v", err)
	}
}

// TestConcurrentBookingSameSlot races N bookings for one slot. Exactly one
// may win; the rest must surface conflicts, never a second success or a raw
// store error.
func TestConcurrentBookingSameSlot(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")
	date := nextDate(1)

	const n = 8
	patients := make([]models.Patient, n)
	for i := range patients {
		patients[i] = seedPatient(t, db, "Patient "+string(rune('A'+i)))
	}

	var wg sync.WaitGroup
	results := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := CreateAppointment(db, BookingInput{
				DoctorID:  doctor.ID,
				PatientID: patients[i].ID,
				Date:      date,
				Time:      "09:00",
				Reason:    "control",
			})
			results[i] = err
		}(i)
	}
	wg.Wait()

	successes := 0
	for i, err := range results {
		if err == nil {
			successes++
			continue
		}
		var ce *ConflictError
		if !errors.As(err, &ce) {
			t.Errorf("booking %d: expected ConflictError, got %v", i, err)
		}
	}
	if successes != 1 {
		t.Fatalf("successes = %d, want exactly 1", successes)
	}

	var count int64
	db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ? AND time = ?", doctor.ID, date, "09:00").
		Count(&count)
	if count != 1 {
		t.Fatalf("persisted rows = %d, want 1", count)
	}
}

func TestUpdateAppointmentResetsStatus(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")
	patient := seedPatient(t, db, "Maria Gomez")
	date := nextDate(1)

	id, err := CreateAppointment(db, BookingInput{
		DoctorID: doctor.ID, PatientID: patient.ID,
		Date: date, Time: "09:00", Reason: "control",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := ConfirmAppointment(db, id, doctor.UserID); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	// A full edit drops the booking back to pendiente for re-confirmation.
	err = UpdateAppointment(db, id, BookingInput{
		DoctorID: doctor.ID, PatientID: patient.ID,
		Date: date, Time: "10:00", Reason: "control extendido",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := GetAppointment(db, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.StatusPending || got.Time != "10:00" {
		t.Fatalf("after update: status=%s time=%s", got.Status, got.Time)
	}
}

func TestRescheduleOnlyPending(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")
	patient := seedPatient(t, db, "Maria Gomez")

	mustCreateInterval(t, db, doctor.ID, 1, "09:00", "12:00")
	date := nextDate(1)

	id, err := CreateAppointment(db, BookingInput{
		DoctorID: doctor.ID, PatientID: patient.ID,
		Date: date, Time: "09:00", Reason: "control",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := RescheduleAppointment(db, id, date, "10:00"); err != nil {
		t.Fatalf("reschedule pending: %v", err)
	}

	var ve *ValidationError
	if err := RescheduleAppointment(db, id, date, "14:00"); !errors.As(err, &ve) {
		t.Fatalf("outside working hours: expected ValidationError, got %v", err)
	}

	if err := ConfirmAppointment(db, id, doctor.UserID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := RescheduleAppointment(db, id, date, "11:00"); !errors.As(err, &ve) {
		t.Fatalf("confirmed reschedule: expected ValidationError, got %v", err)
	}
}

func TestStatusTransitions(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")
	patient := seedPatient(t, db, "Maria Gomez")
	date := nextDate(1)

	book := func(tm string) uint {
		id, err := CreateAppointment(db, BookingInput{
			DoctorID: doctor.ID, PatientID: patient.ID,
			Date: date, Time: tm, Reason: "control",
		})
		if err != nil {
			t.Fatalf("book %s: %v", tm, err)
		}
		return id
	}
	status := func(id uint) models.AppointmentStatus {
		got, err := GetAppointment(db, id)
		if err != nil {
			t.Fatalf("get %d: %v", id, err)
		}
		return got.Status
	}

	// pendiente -> confirmada -> completada
	a := book("09:00")
	if err := ConfirmAppointment(db, a, doctor.UserID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := CompleteAppointment(db, a); err != nil {
		t.Fatalf("complete confirmed: %v", err)
	}
	if got := status(a); got != models.StatusCompleted {
		t.Fatalf("status = %s, want completada", got)
	}

	// pendiente -> completada directly is allowed (walk-in handled on the spot)
	b := book("09:30")
	if err := CompleteAppointment(db, b); err != nil {
		t.Fatalf("complete pending: %v", err)
	}

	// completada is terminal except for cancellation
	var ve *ValidationError
	if err := ConfirmAppointment(db, a, doctor.UserID); !errors.As(err, &ve) {
		t.Fatalf("confirm completed: expected ValidationError, got %v", err)
	}
	if err := CompleteAppointment(db, a); !errors.As(err, &ve) {
		t.Fatalf("complete completed: expected ValidationError, got %v", err)
	}

	// cancellation is allowed from any state
	if err := CancelAppointment(db, a); err != nil {
		t.Fatalf("cancel completed: %v", err)
	}
	c := book("10:00")
	if err := CancelAppointment(db, c); err != nil {
		t.Fatalf("cancel pending: %v", err)
	}
	if got := status(c); got != models.StatusCanceled {
		t.Fatalf("status = %s, want cancelada", got)
	}

	// cancelled bookings stay terminal
	if err := CompleteAppointment(db, c); !errors.As(err, &ve) {
		t.Fatalf("complete cancelled: expected ValidationError, got %v", err)
	}
}

func TestConfirmRequiresOwningDoctor(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")
	other := seedDoctor(t, db, "Luis Rojas")
	patient := seedPatient(t, db, "Maria Gomez")

	id, err := CreateAppointment(db, BookingInput{
		DoctorID: doctor.ID, PatientID: patient.ID,
		Date: nextDate(1), Time: "09:00", Reason: "control",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = ConfirmAppointment(db, id, other.UserID)
	var ae *AuthorizationError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}

	if err := ConfirmAppointment(db, id, doctor.UserID); err != nil {
		t.Fatalf("owner confirm: %v", err)
	}
}

func TestNotFoundErrors(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")

	var ne *NotFoundError
	if _, err := GetAppointment(db, 42); !errors.As(err, &ne) {
		t.Errorf("get: expected NotFoundError, got %v", err)
	}
	if err := CancelAppointment(db, 42); !errors.As(err, &ne) {
		t.Errorf("cancel: expected NotFoundError, got %v", err)
	}
	if err := CompleteAppointment(db, 42); !errors.As(err, &ne) {
		t.Errorf("complete: expected NotFoundError, got %v", err)
	}
	if err := ConfirmAppointment(db, 42, doctor.UserID); !errors.As(err, &ne) {
		t.Errorf("confirm: expected NotFoundError, got %v", err)
	}
}

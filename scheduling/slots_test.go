package scheduling

import (
	"errors"
	"reflect"
	"testing"
)

func TestDaySlotsHalfHourGrid(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")
	mustCreateInterval(t, db, doctor.ID, 1, "09:00", "10:00")

	slots, err := DaySlots(db, doctor.ID, 1, DefaultSlotMinutes)
	if err != nil {
		t.Fatalf("day slots: %v", err)
	}
	want := []string{"09:00", "09:30"}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("slots = %v, want %v", slots, want)
	}
}

func TestDaySlotsPartialSlotDropped(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")
	// 45 minutes of window only fits one 30-minute slot.
	mustCreateInterval(t, db, doctor.ID, 2, "09:00", "09:45")

	slots, err := DaySlots(db, doctor.ID, 2, DefaultSlotMinutes)
	if err != nil {
		t.Fatalf("day slots: %v", err)
	}
	if !reflect.DeepEqual(slots, []string{"09:00"}) {
		t.Fatalf("slots = %v, want [09:00]", slots)
	}
}

func TestDaySlotsCustomDuration(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")
	mustCreateInterval(t, db, doctor.ID, 1, "09:00", "10:00")

	slots, err := DaySlots(db, doctor.ID, 1, 20)
	if err != nil {
		t.Fatalf("day slots: %v", err)
	}
	want := []string{"09:00", "09:20", "09:40"}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("slots = %v, want %v", slots, want)
	}
}

func TestDaySlotsValidation(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")

	var ve *ValidationError
	if _, err := DaySlots(db, doctor.ID, 0, 30); !errors.As(err, &ve) {
		t.Errorf("day 0: expected ValidationError, got %v", err)
	}
	if _, err := DaySlots(db, doctor.ID, 1, 0); !errors.As(err, &ve) {
		t.Errorf("duration 0: expected ValidationError, got %v", err)
	}
}

func TestAvailableSlotsSubtractsBookings(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")
	patient := seedPatient(t, db, "Maria Gomez")

	mustCreateInterval(t, db, doctor.ID, 1, "09:00", "11:00")
	date := nextDate(1)

	if _, err := CreateAppointment(db, BookingInput{
		DoctorID:  doctor.ID,
		PatientID: patient.ID,
		Date:      date,
		Time:      "09:30",
		Reason:    "control",
	}); err != nil {
		t.Fatalf("book: %v", err)
	}

	slots, err := AvailableSlots(db, doctor.ID, date, DefaultSlotMinutes)
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}
	want := []string{"09:00", "10:00", "10:30"}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("slots = %v, want %v", slots, want)
	}
}

func TestAvailableSlotsCancelledStillBlocks(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")
	patient := seedPatient(t, db, "Maria Gomez")

	mustCreateInterval(t, db, doctor.ID, 1, "09:00", "10:00")
	date := nextDate(1)

	id, err := CreateAppointment(db, BookingInput{
		DoctorID:  doctor.ID,
		PatientID: patient.ID,
		Date:      date,
		Time:      "09:00",
		Reason:    "control",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if err := CancelAppointment(db, id); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	slots, err := AvailableSlots(db, doctor.ID, date, DefaultSlotMinutes)
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}
	// A cancelled booking keeps holding its slot.
	if !reflect.DeepEqual(slots, []string{"09:30"}) {
		t.Fatalf("slots = %v, want [09:30]", slots)
	}
}

func TestAvailableSlotsNoAvailability(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")

	slots, err := AvailableSlots(db, doctor.ID, nextDate(4), DefaultSlotMinutes)
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected empty list, got %v", slots)
	}
}

func TestAvailableSlotsBadDate(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")

	_, err := AvailableSlots(db, doctor.ID, "06-02-2025", DefaultSlotMinutes)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

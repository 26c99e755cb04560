package scheduling

import (
	"errors"
	"testing"
)

func TestCreateIntervalRejectsOverlap(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")

	mustCreateInterval(t, db, doctor.ID, 1, "09:00", "12:00")

	_, err := CreateInterval(db, IntervalInput{
		DoctorID:  doctor.ID,
		DayOfWeek: 1,
		StartTime: "11:00",
		EndTime:   "13:00",
	})
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError for overlapping window, got %v", err)
	}
}

func TestCreateIntervalAllowsTouchingWindows(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")

	mustCreateInterval(t, db, doctor.ID, 1, "09:00", "12:00")
	// Back-to-back is fine: [09:00,12:00) then [12:00,15:00).
	mustCreateInterval(t, db, doctor.ID, 1, "12:00", "15:00")
	// Same window on another day never conflicts.
	mustCreateInterval(t, db, doctor.ID, 2, "09:00", "12:00")
}

func TestCreateIntervalValidation(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")

	cases := []IntervalInput{
		{DoctorID: doctor.ID, DayOfWeek: 0, StartTime: "09:00", EndTime: "10:00"},
		{DoctorID: doctor.ID, DayOfWeek: 8, StartTime: "09:00", EndTime: "10:00"},
		{DoctorID: doctor.ID, DayOfWeek: 1, StartTime: "10:00", EndTime: "09:00"},
		{DoctorID: doctor.ID, DayOfWeek: 1, StartTime: "10:00", EndTime: "10:00"},
		{DoctorID: doctor.ID, DayOfWeek: 1, StartTime: "bad", EndTime: "10:00"},
		{DoctorID: 0, DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
	}
	for _, in := range cases {
		_, err := CreateInterval(db, in)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("CreateInterval(%+v): expected ValidationError, got %v", in, err)
		}
	}
}

func TestUpdateInterval(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")

	id := mustCreateInterval(t, db, doctor.ID, 1, "09:00", "12:00")
	mustCreateInterval(t, db, doctor.ID, 1, "14:00", "17:00")

	newEnd := "13:00"
	updated, err := UpdateInterval(db, id, IntervalPatch{EndTime: &newEnd})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.EndTime != "13:00" || updated.StartTime != "09:00" {
		t.Fatalf("unexpected window after patch: %s-%s", updated.StartTime, updated.EndTime)
	}

	// Growing into the afternoon window must fail.
	badEnd := "15:00"
	_, err = UpdateInterval(db, id, IntervalPatch{EndTime: &badEnd})
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}

	// The update must not clash with the row's own previous state.
	sameEnd := "13:00"
	if _, err := UpdateInterval(db, id, IntervalPatch{EndTime: &sameEnd}); err != nil {
		t.Fatalf("no-op window update should pass the overlap check: %v", err)
	}

	_, err = UpdateInterval(db, 9999, IntervalPatch{EndTime: &newEnd})
	var ne *NotFoundError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NotFoundError for missing row, got %v", err)
	}

	_, err = UpdateInterval(db, id, IntervalPatch{})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for empty patch, got %v", err)
	}
}

func TestDeleteInterval(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")
	id := mustCreateInterval(t, db, doctor.ID, 3, "08:00", "12:00")

	if err := DeleteInterval(db, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err := DeleteInterval(db, id)
	var ne *NotFoundError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NotFoundError on second delete, got %v", err)
	}
}

func TestWeeklyScheduleAlwaysHasSevenDays(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")
	mustCreateInterval(t, db, doctor.ID, 5, "09:00", "11:00")

	weekly, err := WeeklySchedule(db, doctor.ID)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if len(weekly) != 7 {
		t.Fatalf("expected 7 day buckets, got %d", len(weekly))
	}
	for day := 1; day <= 7; day++ {
		if weekly[day] == nil {
			t.Errorf("day %d bucket missing", day)
		}
	}
	if len(weekly[5]) != 1 || len(weekly[1]) != 0 {
		t.Fatalf("unexpected bucket sizes: %v", weekly)
	}
}

func TestCopyIntervalsSkipsConflicts(t *testing.T) {
	db := testDB(t)
	source := seedDoctor(t, db, "Ana Perez")
	target := seedDoctor(t, db, "Luis Rojas")

	mustCreateInterval(t, db, source.ID, 1, "09:00", "12:00")
	mustCreateInterval(t, db, source.ID, 2, "09:00", "12:00")
	mustCreateInterval(t, db, source.ID, 3, "09:00", "12:00")
	// The target already works Tuesday mornings.
	mustCreateInterval(t, db, target.ID, 2, "10:00", "11:00")

	copied, err := CopyIntervals(db, source.ID, target.ID, false)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if copied != 2 {
		t.Fatalf("copied = %d, want 2 (the conflicting Tuesday window is skipped)", copied)
	}

	weekly, err := WeeklySchedule(db, target.ID)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if len(weekly[2]) != 1 || weekly[2][0].StartTime != "10:00" {
		t.Fatalf("target's own Tuesday window should survive: %+v", weekly[2])
	}
}

func TestCopyIntervalsOverwrite(t *testing.T) {
	db := testDB(t)
	source := seedDoctor(t, db, "Ana Perez")
	target := seedDoctor(t, db, "Luis Rojas")

	mustCreateInterval(t, db, source.ID, 1, "09:00", "12:00")
	mustCreateInterval(t, db, target.ID, 1, "08:00", "16:00")

	copied, err := CopyIntervals(db, source.ID, target.ID, true)
	if err != nil {
		t.Fatalf("copy overwrite: %v", err)
	}
	if copied != 1 {
		t.Fatalf("copied = %d, want 1", copied)
	}

	intervals, err := ListIntervals(db, target.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(intervals) != 1 || intervals[0].StartTime != "09:00" || intervals[0].EndTime != "12:00" {
		t.Fatalf("overwrite should leave exactly the source windows: %+v", intervals)
	}
}

func TestCopyIntervalsErrors(t *testing.T) {
	db := testDB(t)
	source := seedDoctor(t, db, "Ana Perez")
	target := seedDoctor(t, db, "Luis Rojas")

	_, err := CopyIntervals(db, source.ID, source.ID, false)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for same source and target, got %v", err)
	}

	_, err = CopyIntervals(db, source.ID, target.ID, false)
	var ne *NotFoundError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NotFoundError for empty source, got %v", err)
	}
}

func TestDeleteAllForDoctor(t *testing.T) {
	db := testDB(t)
	doctor := seedDoctor(t, db, "Ana Perez")
	mustCreateInterval(t, db, doctor.ID, 1, "09:00", "12:00")
	mustCreateInterval(t, db, doctor.ID, 2, "09:00", "12:00")

	deleted, err := DeleteAllForDoctor(db, doctor.ID)
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("deleted = %d, want 2", deleted)
	}

	// A doctor without windows is a no-op, not an error.
	deleted, err = DeleteAllForDoctor(db, doctor.ID)
	if err != nil || deleted != 0 {
		t.Fatalf("second delete: got (%d, %v), want (0, nil)", deleted, err)
	}
}

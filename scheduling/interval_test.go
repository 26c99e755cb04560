package scheduling

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"09:00", 9 * 60, false},
		{"00:00", 0, false},
		{"23:59", 23*60 + 59, false},
		{"14:30:45", 14*60 + 30, false}, // seconds truncated
		{"9:05", 9*60 + 5, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q): expected error, got %v", tc.in, got)
			}
			var ve *ValidationError
			if err != nil && !errors.As(err, &ve) {
				t.Errorf("ParseTimeOfDay(%q): expected ValidationError, got %T", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestTimeOfDayString(t *testing.T) {
	if got := TimeOfDay(9 * 60).String(); got != "09:00" {
		t.Errorf("String() = %q, want 09:00", got)
	}
	if got := TimeOfDay(23*60 + 5).String(); got != "23:05" {
		t.Errorf("String() = %q, want 23:05", got)
	}
}

func TestOverlaps(t *testing.T) {
	nine, ten, eleven := TimeOfDay(9*60), TimeOfDay(10*60), TimeOfDay(11*60)

	if !Overlaps(nine, eleven, ten, eleven) {
		t.Error("nested windows should overlap")
	}
	if !Overlaps(nine, ten, nine, ten) {
		t.Error("identical windows should overlap")
	}
	// Touching windows share only the boundary instant, which belongs to
	// the later window alone.
	if Overlaps(nine, ten, ten, eleven) {
		t.Error("touching windows must not overlap")
	}
	if Overlaps(ten, eleven, nine, ten) {
		t.Error("touching windows must not overlap (reversed)")
	}
}

func TestISOWeekday(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	if got := ISOWeekday(monday); got != 1 {
		t.Errorf("Monday = %d, want 1", got)
	}
	sunday := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := ISOWeekday(sunday); got != 7 {
		t.Errorf("Sunday = %d, want 7", got)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2025-06-02"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	for _, bad := range []string{"02-06-2025", "2025/06/02", "not-a-date", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q): expected error", bad)
		}
	}
}

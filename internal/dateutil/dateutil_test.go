package dateutil

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "regular date",
			in:   time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC),
			want: "2026-08-30",
		},
		{
			name: "single digit month and day padded",
			in:   time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			want: "2026-01-02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.in); got != tt.want {
				t.Errorf("FormatDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDayRange(t *testing.T) {
	end := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	t.Run("spans month boundary", func(t *testing.T) {
		days := DayRange(end, 4)
		want := []string{"2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02"}
		if len(days) != len(want) {
			t.Fatalf("DayRange() returned %d days, want %d", len(days), len(want))
		}
		for i := range want {
			if days[i] != want[i] {
				t.Errorf("DayRange()[%d] = %q, want %q", i, days[i], want[i])
			}
		}
	})

	t.Run("single day", func(t *testing.T) {
		days := DayRange(end, 1)
		if len(days) != 1 || days[0] != "2026-03-02" {
			t.Errorf("DayRange(end, 1) = %v, want [2026-03-02]", days)
		}
	})

	t.Run("non-positive count", func(t *testing.T) {
		if days := DayRange(end, 0); days != nil {
			t.Errorf("DayRange(end, 0) = %v, want nil", days)
		}
	})

	t.Run("full heatmap window", func(t *testing.T) {
		days := DayRange(end, 112)
		if len(days) != 112 {
			t.Fatalf("DayRange() returned %d days, want 112", len(days))
		}
		if days[111] != "2026-03-02" {
			t.Errorf("last day = %q, want 2026-03-02", days[111])
		}
		if days[0] != "2025-11-11" {
			t.Errorf("first day = %q, want 2025-11-11", days[0])
		}
	})
}

func TestToday(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "local", timezone: "Local", wantErr: false},
		{name: "utc", timezone: "UTC", wantErr: false},
		{name: "named zone", timezone: "America/New_York", wantErr: false},
		{name: "invalid zone", timezone: "Nowhere/Land", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Today(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Today() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				if _, perr := ParseDate(got); perr != nil {
					t.Errorf("Today() = %q, not a valid date: %v", got, perr)
				}
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("") || !ValidateTimezone("Local") || !ValidateTimezone("UTC") {
		t.Error("ValidateTimezone() rejected a valid timezone")
	}
	if ValidateTimezone("Invalid/Timezone") {
		t.Error("ValidateTimezone() accepted an invalid timezone")
	}
}

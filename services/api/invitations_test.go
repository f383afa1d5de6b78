package api

import (
	"testing"
	"time"
)

func TestReminderDue(t *testing.T) {
	start := time.Date(2025, 12, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		offsets []int
		today   time.Time
		wantOff int
		wantDue bool
	}{
		{
			name:    "seven days out",
			offsets: []int{7, 1},
			today:   time.Date(2025, 11, 24, 9, 30, 0, 0, time.UTC),
			wantOff: 7,
			wantDue: true,
		},
		{
			name:    "one day out",
			offsets: []int{7, 1},
			today:   time.Date(2025, 11, 30, 23, 59, 0, 0, time.UTC),
			wantOff: 1,
			wantDue: true,
		},
		{
			name:    "between offsets",
			offsets: []int{7, 1},
			today:   time.Date(2025, 11, 27, 12, 0, 0, 0, time.UTC),
			wantDue: false,
		},
		{
			name:    "day of event not configured",
			offsets: []int{7, 1},
			today:   time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC),
			wantDue: false,
		},
		{
			name:    "zero offset matches event day",
			offsets: []int{0},
			today:   time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC),
			wantOff: 0,
			wantDue: true,
		},
		{
			name:    "negative offsets ignored",
			offsets: []int{-3},
			today:   time.Date(2025, 12, 4, 8, 0, 0, 0, time.UTC),
			wantDue: false,
		},
		{
			name:    "no offsets",
			offsets: nil,
			today:   time.Date(2025, 11, 24, 9, 30, 0, 0, time.UTC),
			wantDue: false,
		},
		{
			name:    "timezone normalised to utc day",
			offsets: []int{7},
			today:   time.Date(2025, 11, 24, 2, 0, 0, 0, time.FixedZone("CET", 3600)),
			wantOff: 7,
			wantDue: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off, due := reminderDue(start, tt.offsets, tt.today)
			if due != tt.wantDue {
				t.Fatalf("reminderDue() due = %v, want %v", due, tt.wantDue)
			}
			if due && off != tt.wantOff {
				t.Fatalf("reminderDue() offset = %d, want %d", off, tt.wantOff)
			}
		})
	}
}

func TestAlreadyReminded(t *testing.T) {
	cutoff := time.Date(2025, 11, 24, 0, 0, 0, 0, time.UTC)
	ptr := func(t time.Time) *time.Time { return &t }

	tests := []struct {
		name     string
		lastSent *time.Time
		since    time.Time
		want     bool
	}{
		{
			name:     "never reminded",
			lastSent: nil,
			since:    cutoff,
			want:     false,
		},
		{
			name:     "reminded on an earlier day",
			lastSent: ptr(cutoff.AddDate(0, 0, -6)),
			since:    cutoff,
			want:     false,
		},
		{
			name:     "reminded at the cutoff",
			lastSent: ptr(cutoff),
			since:    cutoff,
			want:     true,
		},
		{
			name:     "reminded later the same day",
			lastSent: ptr(cutoff.Add(9 * time.Hour)),
			since:    cutoff,
			want:     true,
		},
		{
			name:     "zero cutoff disables the check",
			lastSent: ptr(cutoff),
			since:    time.Time{},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := alreadyReminded(tt.lastSent, tt.since); got != tt.want {
				t.Fatalf("alreadyReminded() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidRSVPStatus(t *testing.T) {
	valid := []string{"pending", "accepted", "declined", "maybe"}
	for _, s := range valid {
		if !validRSVPStatus(s) {
			t.Fatalf("validRSVPStatus(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "invited", "yes", "PENDING", "accepted "}
	for _, s := range invalid {
		if validRSVPStatus(s) {
			t.Fatalf("validRSVPStatus(%q) = true, want false", s)
		}
	}
}

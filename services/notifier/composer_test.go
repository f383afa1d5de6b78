package notifier

import (
	"html/template"
	"strings"
	"testing"
	"time"

	"stitchcms/pkg/bus"
	"stitchcms/pkg/render"
)

func testComposer(t *testing.T) composer {
	t.Helper()
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New() error = %v", err)
	}
	return composer{renderer: renderer, frontendURL: "https://events.example.com"}
}

func testEvent() eventModel {
	return eventModel{
		ID:        12,
		Title:     "Launch Party",
		EventType: "celebration",
		Location:  "Rooftop",
		StartDate: time.Date(2025, 12, 1, 18, 0, 0, 0, time.UTC),
	}
}

func TestComposeInvitation(t *testing.T) {
	c := testComposer(t)
	rsvp := rsvpModel{ID: 34, Email: "a@x.com", Name: "Ada", Status: "pending"}

	subject, body, err := c.compose(bus.MailJob{Kind: bus.MailKindInvitation}, testEvent(), rsvp)
	if err != nil {
		t.Fatalf("compose() error = %v", err)
	}
	if subject != "You're invited: Launch Party" {
		t.Fatalf("subject = %q", subject)
	}
	for _, link := range []string{
		"https://events.example.com/rsvp/34/accept",
		"https://events.example.com/rsvp/34/maybe",
		"https://events.example.com/rsvp/34/decline",
	} {
		if !strings.Contains(body, link) {
			t.Fatalf("body missing link %q", link)
		}
	}
	if !strings.Contains(body, "Launch Party") {
		t.Fatal("body missing event title")
	}
}

func TestComposeReminderSubjectPlural(t *testing.T) {
	c := testComposer(t)
	rsvp := rsvpModel{ID: 1, Status: "pending"}

	tests := []struct {
		name       string
		daysBefore int
		want       string
	}{
		{name: "plural", daysBefore: 7, want: "Reminder: Launch Party - 7 days to go!"},
		{name: "singular", daysBefore: 1, want: "Reminder: Launch Party - 1 day to go!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, _, err := c.compose(bus.MailJob{Kind: bus.MailKindReminder, DaysBefore: tt.daysBefore}, testEvent(), rsvp)
			if err != nil {
				t.Fatalf("compose() error = %v", err)
			}
			if subject != tt.want {
				t.Fatalf("subject = %q, want %q", subject, tt.want)
			}
		})
	}
}

func TestComposeReminderLinksOnlyWhenPending(t *testing.T) {
	c := testComposer(t)

	_, pendingBody, err := c.compose(bus.MailJob{Kind: bus.MailKindReminder, DaysBefore: 3}, testEvent(), rsvpModel{ID: 9, Status: "pending"})
	if err != nil {
		t.Fatalf("compose() error = %v", err)
	}
	if !strings.Contains(pendingBody, "/rsvp/9/accept") {
		t.Fatal("pending reminder missing RSVP links")
	}

	_, acceptedBody, err := c.compose(bus.MailJob{Kind: bus.MailKindReminder, DaysBefore: 3}, testEvent(), rsvpModel{ID: 9, Status: "accepted"})
	if err != nil {
		t.Fatalf("compose() error = %v", err)
	}
	if strings.Contains(acceptedBody, "/rsvp/9/accept") {
		t.Fatal("accepted reminder should not carry RSVP links")
	}
}

func TestComposeConfirmation(t *testing.T) {
	c := testComposer(t)

	tests := []struct {
		name    string
		status  string
		message string
	}{
		{name: "accepted", status: "accepted", message: "Thank you for accepting our invitation!"},
		{name: "declined", status: "declined", message: "Thank you for letting us know you can't make it."},
		{name: "unknown falls back", status: "weird", message: "Thank you for your response."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rsvp := rsvpModel{ID: 2, Status: tt.status, GuestCount: 2}
			subject, body, err := c.compose(bus.MailJob{Kind: bus.MailKindConfirmation}, testEvent(), rsvp)
			if err != nil {
				t.Fatalf("compose() error = %v", err)
			}
			if subject != "RSVP Confirmation: Launch Party" {
				t.Fatalf("subject = %q", subject)
			}
			// Bodies are html/template output, so apostrophes arrive escaped.
			if want := template.HTMLEscapeString(tt.message); !strings.Contains(body, want) {
				t.Fatalf("body missing status message %q", want)
			}
		})
	}
}

func TestComposeUnknownKind(t *testing.T) {
	c := testComposer(t)
	if _, _, err := c.compose(bus.MailJob{Kind: "newsletter"}, testEvent(), rsvpModel{}); err == nil {
		t.Fatal("compose() error = nil, want error for unknown kind")
	}
}

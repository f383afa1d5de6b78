package notifier

import (
	"fmt"

	"stitchcms/pkg/bus"
	"stitchcms/pkg/render"
)

type composer struct {
	renderer    *render.Engine
	frontendURL string
}

func (c composer) rsvpLink(rsvpID int64, action string) string {
	return fmt.Sprintf("%s/rsvp/%d/%s", c.frontendURL, rsvpID, action)
}

var statusMessages = map[string]string{
	"accepted": "Thank you for accepting our invitation!",
	"declined": "Thank you for letting us know you can't make it.",
	"maybe":    "Thank you for your response. We hope you can join us!",
}

// compose builds the subject and HTML body for one mail job.
func (c composer) compose(job bus.MailJob, event eventModel, rsvp rsvpModel) (subject, body string, err error) {
	switch job.Kind {
	case bus.MailKindInvitation:
		subject = fmt.Sprintf("You're invited: %s", event.Title)
		body, err = c.renderer.Render("invitation.tmpl", map[string]any{
			"Event":      event,
			"AcceptURL":  c.rsvpLink(rsvp.ID, "accept"),
			"MaybeURL":   c.rsvpLink(rsvp.ID, "maybe"),
			"DeclineURL": c.rsvpLink(rsvp.ID, "decline"),
		})

	case bus.MailKindReminder:
		plural := "s"
		if job.DaysBefore == 1 {
			plural = ""
		}
		subject = fmt.Sprintf("Reminder: %s - %d day%s to go!", event.Title, job.DaysBefore, plural)
		body, err = c.renderer.Render("reminder.tmpl", map[string]any{
			"Event":      event,
			"Status":     rsvp.Status,
			"DaysBefore": job.DaysBefore,
			"AcceptURL":  c.rsvpLink(rsvp.ID, "accept"),
			"MaybeURL":   c.rsvpLink(rsvp.ID, "maybe"),
			"DeclineURL": c.rsvpLink(rsvp.ID, "decline"),
		})

	case bus.MailKindConfirmation:
		subject = fmt.Sprintf("RSVP Confirmation: %s", event.Title)
		message, ok := statusMessages[rsvp.Status]
		if !ok {
			message = "Thank you for your response."
		}
		body, err = c.renderer.Render("confirmation.tmpl", map[string]any{
			"Event":               event,
			"Status":              rsvp.Status,
			"StatusMessage":       message,
			"GuestCount":          rsvp.GuestCount,
			"DietaryRestrictions": rsvp.DietaryRestrictions,
			"SpecialRequests":     rsvp.SpecialRequests,
		})

	default:
		err = fmt.Errorf("unknown mail kind %q", job.Kind)
	}
	return subject, body, err
}

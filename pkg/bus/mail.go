package bus

import "time"

// Mail job kinds carried on MailSubject.
const (
	MailKindInvitation   = "invitation"
	MailKindReminder     = "reminder"
	MailKindConfirmation = "confirmation"
)

// MailJob is the work-queue payload for one outbound email. The
// notifier loads the event and RSVP rows itself so jobs stay small
// and never carry stale guest data.
type MailJob struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	EventID    int64     `json:"event_id"`
	RSVPID     int64     `json:"rsvp_id"`
	DaysBefore int       `json:"days_before,omitempty"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

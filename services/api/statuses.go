package api

// RSVP status strings stored in the database. The update endpoint validates
// against this set; nothing prevents re-transitioning a terminal status.
const (
	rsvpStatusPending  = "pending"
	rsvpStatusAccepted = "accepted"
	rsvpStatusDeclined = "declined"
	rsvpStatusMaybe    = "maybe"
)

const (
	eventStatusDraft     = "draft"
	eventStatusPublished = "published"
	eventStatusCancelled = "cancelled"
)

const (
	contentStatusDraft     = "draft"
	contentStatusPublished = "published"
	contentStatusArchived  = "archived"
)

const (
	rsvpSourceManual = "manual"
	rsvpSourceBulk   = "bulk"
)

func validRSVPStatus(s string) bool {
	switch s {
	case rsvpStatusPending, rsvpStatusAccepted, rsvpStatusDeclined, rsvpStatusMaybe:
		return true
	default:
		return false
	}
}

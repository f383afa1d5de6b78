package api

import "time"

// Event is a schedulable occurrence guests may respond to.
type Event struct {
	ID                 int64      `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	EventType          string     `json:"event_type"`
	StartDate          time.Time  `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	Location           string     `json:"location"`
	MaxAttendees       *int       `json:"max_attendees"`
	RSVPDeadline       *time.Time `json:"rsvp_deadline"`
	RequireApproval    bool       `json:"require_approval"`
	AllowGuests        bool       `json:"allow_guests"`
	SendReminders      bool       `json:"send_reminders"`
	ReminderDaysBefore []int      `json:"reminder_days_before"`
	Status             string     `json:"status"`
	CreatedBy          int64      `json:"created_by,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// EventSummary is the list-view shape: event fields plus derived RSVP counts.
type EventSummary struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	EventType    string     `json:"event_type"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Location     string     `json:"location"`
	MaxAttendees *int       `json:"max_attendees"`
	RSVPDeadline *time.Time `json:"rsvp_deadline"`
	Status       string     `json:"status"`
	TotalRSVPs   int        `json:"total_rsvps"`
	Accepted     int        `json:"accepted_rsvps"`
	Declined     int        `json:"declined_rsvps"`
	Pending      int        `json:"pending_rsvps"`
	CreatedAt    time.Time  `json:"created_at"`
}

// RSVP is one invitee's response record to an Event.
type RSVP struct {
	ID                  int64      `json:"id"`
	EventID             int64      `json:"event_id"`
	Email               string     `json:"email"`
	Name                string     `json:"name"`
	Phone               string     `json:"phone"`
	Company             string     `json:"company"`
	Status              string     `json:"status"`
	GuestCount          int        `json:"guest_count"`
	DietaryRestrictions string     `json:"dietary_restrictions"`
	SpecialRequests     string     `json:"special_requests"`
	InvitationSentAt    *time.Time `json:"invitation_sent_at"`
	RespondedAt         *time.Time `json:"responded_at"`
	ReminderCount       int        `json:"reminder_count"`
	LastReminderSent    *time.Time `json:"last_reminder_sent"`
	Source              string     `json:"source"`
	CreatedAt           time.Time  `json:"created_at"`
}

// Communication is an append-only audit row describing one outbound email attempt.
type Communication struct {
	ID             int64      `json:"id"`
	EventID        int64      `json:"event_id"`
	RSVPID         *int64     `json:"rsvp_id"`
	Type           string     `json:"type"`
	Subject        string     `json:"subject"`
	RecipientEmail string     `json:"recipient_email"`
	RecipientName  string     `json:"recipient_name"`
	SentAt         *time.Time `json:"sent_at"`
	DeliveryStatus string     `json:"delivery_status"`
	OpenedAt       *time.Time `json:"opened_at"`
	ClickedAt      *time.Time `json:"clicked_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Content is a managed piece of site content.
type Content struct {
	ID              int64          `json:"id"`
	Title           string         `json:"title"`
	Slug            string         `json:"slug"`
	ContentType     string         `json:"content_type"`
	Body            string         `json:"body"`
	Excerpt         string         `json:"excerpt"`
	Status          string         `json:"status"`
	AuthorID        int64          `json:"author_id"`
	MetaTitle       string         `json:"meta_title"`
	MetaDescription string         `json:"meta_description"`
	MetaKeywords    string         `json:"meta_keywords"`
	AIGenerated     bool           `json:"ai_generated"`
	AISuggestions   map[string]any `json:"ai_suggestions"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	PublishedAt     *time.Time     `json:"published_at"`
}

// Module is an installed feature module record.
type Module struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Version       string         `json:"version"`
	IsActive      bool           `json:"is_active"`
	Configuration map[string]any `json:"configuration"`
	HasAPIKeys    bool           `json:"has_api_keys"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Setting is a single site configuration entry.
type Setting struct {
	ID          int64     `json:"id"`
	Key         string    `json:"key"`
	Value       any       `json:"value"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AIProviderInfo is the masked view of a configured AI provider.
type AIProviderInfo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	APIKey      string `json:"api_key"`
	BaseURL     string `json:"base_url"`
	IsActive    bool   `json:"is_active"`
	IsDefault   bool   `json:"is_default"`
}

// User is the authenticated account shape returned by /api/auth/me.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

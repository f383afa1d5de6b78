package notifier

import (
	"time"

	"gorm.io/datatypes"
)

type eventModel struct {
	ID                 int64          `gorm:"primaryKey"`
	Title              string         `gorm:"type:text;not null"`
	Description        string         `gorm:"type:text"`
	EventType          string         `gorm:"type:text;not null"`
	StartDate          time.Time      `gorm:"type:timestamptz;not null"`
	EndDate            *time.Time     `gorm:"type:timestamptz"`
	Location           string         `gorm:"type:text"`
	RSVPDeadline       *time.Time     `gorm:"type:timestamptz"`
	SendReminders      bool           `gorm:"not null"`
	ReminderDaysBefore datatypes.JSON `gorm:"type:jsonb"`
	Status             string         `gorm:"type:text;not null"`
}

func (eventModel) TableName() string { return "events" }

type rsvpModel struct {
	ID                  int64      `gorm:"primaryKey"`
	EventID             int64      `gorm:"not null"`
	Email               string     `gorm:"type:text;not null"`
	Name                string     `gorm:"type:text;not null"`
	Status              string     `gorm:"type:text;not null"`
	GuestCount          int        `gorm:"not null"`
	DietaryRestrictions string     `gorm:"type:text"`
	SpecialRequests     string     `gorm:"type:text"`
	InvitationSentAt    *time.Time `gorm:"type:timestamptz"`
	ReminderCount       int        `gorm:"not null"`
	LastReminderSent    *time.Time `gorm:"type:timestamptz"`
}

func (rsvpModel) TableName() string { return "rsvps" }

type communicationModel struct {
	ID             int64      `gorm:"primaryKey"`
	EventID        *int64     `gorm:"index"`
	RSVPID         *int64     `gorm:"index"`
	Type           string     `gorm:"type:text;not null"`
	Subject        string     `gorm:"type:text"`
	Message        string     `gorm:"type:text"`
	RecipientEmail string     `gorm:"type:text;not null"`
	RecipientName  string     `gorm:"type:text"`
	SentAt         *time.Time `gorm:"type:timestamptz"`
	DeliveryStatus string     `gorm:"type:text;not null"`
	CreatedAt      time.Time  `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
}

func (communicationModel) TableName() string { return "communications" }

package api

import "time"

type rsvpModel struct {
	ID                  int64      `gorm:"primaryKey"`
	EventID             int64      `gorm:"not null;index"`
	Email               string     `gorm:"type:text;not null;index"`
	Name                string     `gorm:"type:text;not null"`
	Phone               string     `gorm:"type:text"`
	Company             string     `gorm:"type:text"`
	Status              string     `gorm:"type:text;not null;default:pending"`
	GuestCount          int        `gorm:"not null;default:1"`
	DietaryRestrictions string     `gorm:"type:text"`
	SpecialRequests     string     `gorm:"type:text"`
	InvitationSentAt    *time.Time `gorm:"type:timestamptz"`
	RespondedAt         *time.Time `gorm:"type:timestamptz"`
	ReminderCount       int        `gorm:"not null;default:0"`
	LastReminderSent    *time.Time `gorm:"type:timestamptz"`
	Source              string     `gorm:"type:text;not null;default:manual"`
	Notes               string     `gorm:"type:text"`
	CreatedAt           time.Time  `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	UpdatedAt           time.Time  `gorm:"type:timestamptz;not null;default:now();autoUpdateTime"`
}

func (rsvpModel) TableName() string { return "rsvps" }

func (m rsvpModel) toAPI() RSVP {
	return RSVP{
		ID:                  m.ID,
		EventID:             m.EventID,
		Email:               m.Email,
		Name:                m.Name,
		Phone:               m.Phone,
		Company:             m.Company,
		Status:              m.Status,
		GuestCount:          m.GuestCount,
		DietaryRestrictions: m.DietaryRestrictions,
		SpecialRequests:     m.SpecialRequests,
		InvitationSentAt:    m.InvitationSentAt,
		RespondedAt:         m.RespondedAt,
		ReminderCount:       m.ReminderCount,
		LastReminderSent:    m.LastReminderSent,
		Source:              m.Source,
		CreatedAt:           m.CreatedAt,
	}
}

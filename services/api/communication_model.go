package api

import (
	"time"

	"gorm.io/datatypes"
)

type communicationModel struct {
	ID                  int64             `gorm:"primaryKey"`
	EventID             *int64            `gorm:"index"`
	RSVPID              *int64            `gorm:"index"`
	Type                string            `gorm:"type:text;not null"`
	Subject             string            `gorm:"type:text"`
	Message             string            `gorm:"type:text"`
	RecipientEmail      string            `gorm:"type:text;not null"`
	RecipientName       string            `gorm:"type:text"`
	SentAt              *time.Time        `gorm:"type:timestamptz"`
	DeliveryStatus      string            `gorm:"type:text;not null;default:pending"`
	OpenedAt            *time.Time        `gorm:"type:timestamptz"`
	ClickedAt           *time.Time        `gorm:"type:timestamptz"`
	TemplateID          string            `gorm:"type:text"`
	PersonalizationData datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt           time.Time         `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
}

func (communicationModel) TableName() string { return "communications" }

func (m communicationModel) toAPI() Communication {
	var eventID int64
	if m.EventID != nil {
		eventID = *m.EventID
	}
	return Communication{
		ID:             m.ID,
		EventID:        eventID,
		RSVPID:         m.RSVPID,
		Type:           m.Type,
		Subject:        m.Subject,
		RecipientEmail: m.RecipientEmail,
		RecipientName:  m.RecipientName,
		SentAt:         m.SentAt,
		DeliveryStatus: m.DeliveryStatus,
		OpenedAt:       m.OpenedAt,
		ClickedAt:      m.ClickedAt,
		CreatedAt:      m.CreatedAt,
	}
}

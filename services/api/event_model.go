package api

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type eventModel struct {
	ID                 int64          `gorm:"primaryKey"`
	Title              string         `gorm:"type:text;not null"`
	Description        string         `gorm:"type:text"`
	EventType          string         `gorm:"type:text;not null;default:meeting"`
	StartDate          time.Time      `gorm:"type:timestamptz;not null"`
	EndDate            *time.Time     `gorm:"type:timestamptz"`
	Location           string         `gorm:"type:text"`
	MaxAttendees       *int
	RSVPDeadline       *time.Time     `gorm:"type:timestamptz"`
	RequireApproval    bool           `gorm:"not null;default:false"`
	AllowGuests        bool           `gorm:"not null;default:false"`
	SendReminders      bool           `gorm:"not null;default:true"`
	ReminderDaysBefore datatypes.JSON `gorm:"type:jsonb"`
	Status             string         `gorm:"type:text;not null;default:draft"`
	CreatedBy          *int64         `gorm:"index"`
	CreatedAt          time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime"`
}

func (eventModel) TableName() string { return "events" }

func (e eventModel) toAPI() Event {
	var createdBy int64
	if e.CreatedBy != nil {
		createdBy = *e.CreatedBy
	}
	return Event{
		ID:                 e.ID,
		Title:              e.Title,
		Description:        e.Description,
		EventType:          e.EventType,
		StartDate:          e.StartDate,
		EndDate:            e.EndDate,
		Location:           e.Location,
		MaxAttendees:       e.MaxAttendees,
		RSVPDeadline:       e.RSVPDeadline,
		RequireApproval:    e.RequireApproval,
		AllowGuests:        e.AllowGuests,
		SendReminders:      e.SendReminders,
		ReminderDaysBefore: reminderOffsets(e.ReminderDaysBefore),
		Status:             e.Status,
		CreatedBy:          createdBy,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

// reminderOffsets decodes the stored JSON day-offset list, tolerating an
// absent or malformed column.
func reminderOffsets(raw datatypes.JSON) []int {
	if len(raw) == 0 {
		return nil
	}
	var days []int
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil
	}
	return days
}

func encodeOffsets(days []int) datatypes.JSON {
	if days == nil {
		days = []int{}
	}
	data, err := json.Marshal(days)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(data)
}

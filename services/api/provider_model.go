package api

import (
	"time"

	"gorm.io/datatypes"
)

type providerModel struct {
	ID            int64             `gorm:"primaryKey"`
	Name          string            `gorm:"type:text;not null"`
	DisplayName   string            `gorm:"type:text;not null"`
	APIKey        string            `gorm:"type:text"`
	BaseURL       string            `gorm:"type:text"`
	IsActive      bool              `gorm:"not null;default:false"`
	IsDefault     bool              `gorm:"not null;default:false"`
	Configuration datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt     time.Time         `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
}

func (providerModel) TableName() string { return "ai_providers" }

func (m providerModel) toAPI() AIProviderInfo {
	return AIProviderInfo{
		ID:          m.ID,
		Name:        m.Name,
		DisplayName: m.DisplayName,
		APIKey:      maskValue(m.APIKey),
		BaseURL:     m.BaseURL,
		IsActive:    m.IsActive,
		IsDefault:   m.IsDefault,
	}
}

package api

import (
	"time"

	"gorm.io/datatypes"
)

type moduleModel struct {
	ID            int64             `gorm:"primaryKey"`
	Name          string            `gorm:"type:text;uniqueIndex;not null"`
	Description   string            `gorm:"type:text"`
	Version       string            `gorm:"type:text"`
	IsActive      bool              `gorm:"not null;default:false"`
	Configuration datatypes.JSONMap `gorm:"type:jsonb"`
	APIKeys       datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt     time.Time         `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"type:timestamptz;not null;default:now();autoUpdateTime"`
}

func (moduleModel) TableName() string { return "modules" }

func (m moduleModel) toAPI() Module {
	return Module{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Version:       m.Version,
		IsActive:      m.IsActive,
		Configuration: mapFromJSONMap(m.Configuration),
		HasAPIKeys:    len(m.APIKeys) > 0,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

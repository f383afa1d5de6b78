package api

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type settingModel struct {
	ID          int64          `gorm:"primaryKey"`
	Key         string         `gorm:"type:text;uniqueIndex;not null"`
	Value       datatypes.JSON `gorm:"type:jsonb"`
	Description string         `gorm:"type:text"`
	UpdatedAt   time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime"`
}

func (settingModel) TableName() string { return "site_settings" }

func (m settingModel) toAPI() Setting {
	return Setting{
		ID:          m.ID,
		Key:         m.Key,
		Value:       maskSecrets(decodeSettingValue(m.Value), m.Key),
		Description: m.Description,
		UpdatedAt:   m.UpdatedAt,
	}
}

func decodeSettingValue(raw datatypes.JSON) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

func encodeSettingValue(v any) (datatypes.JSON, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

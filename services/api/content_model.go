package api

import (
	"time"

	"gorm.io/datatypes"
)

type contentModel struct {
	ID              int64             `gorm:"primaryKey"`
	Title           string            `gorm:"type:text;not null"`
	Slug            string            `gorm:"type:text;uniqueIndex"`
	ContentType     string            `gorm:"type:text;not null"`
	Body            string            `gorm:"type:text"`
	Excerpt         string            `gorm:"type:text"`
	Status          string            `gorm:"type:text;not null;default:draft"`
	AuthorID        *int64            `gorm:"index"`
	MetaTitle       string            `gorm:"type:text"`
	MetaDescription string            `gorm:"type:text"`
	MetaKeywords    string            `gorm:"type:text"`
	AIGenerated     bool              `gorm:"not null;default:false"`
	AISuggestions   datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt       time.Time         `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"type:timestamptz;not null;default:now();autoUpdateTime"`
	PublishedAt     *time.Time        `gorm:"type:timestamptz"`
}

func (contentModel) TableName() string { return "content" }

func (m contentModel) toAPI() Content {
	var authorID int64
	if m.AuthorID != nil {
		authorID = *m.AuthorID
	}
	return Content{
		ID:              m.ID,
		Title:           m.Title,
		Slug:            m.Slug,
		ContentType:     m.ContentType,
		Body:            m.Body,
		Excerpt:         m.Excerpt,
		Status:          m.Status,
		AuthorID:        authorID,
		MetaTitle:       m.MetaTitle,
		MetaDescription: m.MetaDescription,
		MetaKeywords:    m.MetaKeywords,
		AIGenerated:     m.AIGenerated,
		AISuggestions:   mapFromJSONMap(m.AISuggestions),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		PublishedAt:     m.PublishedAt,
	}
}

func mapFromJSONMap(src datatypes.JSONMap) map[string]any {
	if src == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func toJSONMap(src map[string]any) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	if src == nil {
		return out
	}
	for k, v := range src {
		out[k] = v
	}
	return out
}

package api

import (
	"time"

	"gorm.io/datatypes"
)

type userModel struct {
	ID             int64             `gorm:"primaryKey"`
	Email          string            `gorm:"type:text;uniqueIndex;not null"`
	Username       string            `gorm:"type:text;uniqueIndex;not null"`
	HashedPassword string            `gorm:"type:text;not null"`
	FullName       string            `gorm:"type:text"`
	Role           string            `gorm:"type:text;not null;default:editor"`
	IsActive       bool              `gorm:"not null;default:true"`
	Preferences    datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt      time.Time         `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"type:timestamptz;not null;default:now();autoUpdateTime"`
}

func (userModel) TableName() string { return "users" }

func (m userModel) toAPI() User {
	return User{
		ID:       m.ID,
		Email:    m.Email,
		Username: m.Username,
		FullName: m.FullName,
		Role:     m.Role,
		IsActive: m.IsActive,
	}
}

type refreshTokenModel struct {
	ID        int64      `gorm:"primaryKey"`
	UserID    int64      `gorm:"not null;index"`
	TokenHash string     `gorm:"type:text;uniqueIndex;not null"`
	FamilyID  string     `gorm:"type:text;index;not null"`
	CreatedAt time.Time  `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	ExpiresAt time.Time  `gorm:"type:timestamptz;not null"`
	RevokedAt *time.Time `gorm:"type:timestamptz"`
}

func (refreshTokenModel) TableName() string { return "refresh_tokens" }

package db

import (
	"context"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedUser struct {
	ID             int64  `gorm:"primaryKey"`
	Email          string `gorm:"uniqueIndex"`
	Username       string `gorm:"uniqueIndex"`
	HashedPassword string
	FullName       string
	Role           string
	IsActive       bool
}

func (seedUser) TableName() string { return "users" }

// Seed inserts the baseline admin account when no users exist yet.
// The initial password comes from ADMIN_PASSWORD and falls back to a
// development default.
func Seed(ctx context.Context, database *gorm.DB) error {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := seedUser{
		Email:          "admin@example.com",
		Username:       "admin",
		HashedPassword: string(hash),
		FullName:       "Administrator",
		Role:           "admin",
		IsActive:       true,
	}
	return database.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&admin).Error
}

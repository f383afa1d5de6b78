package migrations

import (
	"context"
	"database/sql"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func init() {
	goose.AddMigrationContext(upInit, downInit)
}

type User struct {
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

type RefreshToken struct {
	ID        int64      `gorm:"primaryKey"`
	UserID    int64      `gorm:"not null;index"`
	TokenHash string     `gorm:"type:text;uniqueIndex;not null"`
	FamilyID  string     `gorm:"type:text;index;not null"`
	CreatedAt time.Time  `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	ExpiresAt time.Time  `gorm:"type:timestamptz;not null"`
	RevokedAt *time.Time `gorm:"type:timestamptz"`
	User      User       `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

type Content struct {
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
	Author          User              `gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

type Module struct {
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

type AIProvider struct {
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

type SiteSetting struct {
	ID          int64          `gorm:"primaryKey"`
	Key         string         `gorm:"type:text;uniqueIndex;not null"`
	Value       datatypes.JSON `gorm:"type:jsonb"`
	Description string         `gorm:"type:text"`
	UpdatedAt   time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime"`
}

type Event struct {
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
	Creator            User           `gorm:"foreignKey:CreatedBy;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

type RSVP struct {
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
	Event               Event      `gorm:"foreignKey:EventID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

type Communication struct {
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
	Event               Event             `gorm:"foreignKey:EventID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	RSVP                RSVP              `gorm:"foreignKey:RSVPID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func upInit(ctx context.Context, tx *sql.Tx) error {
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: tx, PreferSimpleProtocol: true}), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: false},
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	if err := gormDB.WithContext(ctx).AutoMigrate(
		&User{},
		&RefreshToken{},
		&Content{},
		&Module{},
		&AIProvider{},
		&SiteSetting{},
		&Event{},
		&RSVP{},
		&Communication{},
	); err != nil {
		return err
	}

	m := gormDB.WithContext(ctx).Migrator()
	if err := m.CreateConstraint(&RSVP{}, "Event"); err != nil {
		return err
	}
	if err := m.CreateConstraint(&Communication{}, "Event"); err != nil {
		return err
	}
	if err := m.CreateConstraint(&Communication{}, "RSVP"); err != nil {
		return err
	}
	if err := m.CreateConstraint(&RefreshToken{}, "User"); err != nil {
		return err
	}

	return nil
}

func downInit(ctx context.Context, tx *sql.Tx) error {
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: tx, PreferSimpleProtocol: true}), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: false},
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	if err := gormDB.WithContext(ctx).Migrator().DropTable(
		&Communication{},
		&RSVP{},
		&Event{},
		&SiteSetting{},
		&AIProvider{},
		&Module{},
		&Content{},
		&RefreshToken{},
		&User{},
	); err != nil {
		return err
	}

	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SkillPack struct {
	Id          uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerId     uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Title       string                      `gorm:"type:varchar(255);not null"`
	Description string                      `gorm:"type:text"`
	Visibility  string                      `gorm:"type:varchar(16);not null;default:'private'"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Skills      datatypes.JSON              `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt              `gorm:"index"`
}

func (SkillPack) TableName() string {
	return "skill_packs"
}

type Agent struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title      string         `gorm:"type:varchar(255);not null"`
	Visibility string         `gorm:"type:varchar(16);not null;default:'private'"`
	Spec       datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Agent) TableName() string {
	return "agents"
}

// UserProfile mirrors the hosted auth user. Rows are created on first use.
type UserProfile struct {
	Id                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	DisplayName         string    `gorm:"type:varchar(255)"`
	Email               string    `gorm:"type:varchar(255)"`
	OnboardingCompleted bool      `gorm:"not null;default:false"`
	PreferredMode       string    `gorm:"type:varchar(16);not null;default:'quest'"`
	AdvancedMode        bool      `gorm:"not null;default:false"`
	IsAdmin             bool      `gorm:"not null;default:false;index"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

func (UserProfile) TableName() string {
	return "users_profile"
}

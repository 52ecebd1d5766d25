package entity

import (
	"time"

	"github.com/google/uuid"
)

type SkillPack struct {
	Id          uuid.UUID
	OwnerId     uuid.UUID
	Title       string
	Description string
	Visibility  string
	Tags        []string
	Skills      []byte
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

type Agent struct {
	Id         uuid.UUID
	OwnerId    uuid.UUID
	Title      string
	Visibility string
	Spec       []byte
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}

type UserProfile struct {
	Id                  uuid.UUID
	DisplayName         string
	Email               string
	OnboardingCompleted bool
	PreferredMode       string
	AdvancedMode        bool
	IsAdmin             bool
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PromptDraft struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	BuilderState datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

func (PromptDraft) TableName() string {
	return "prompt_drafts"
}

type Prompt struct {
	Id             uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerId        uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Title          string                      `gorm:"type:varchar(255);not null"`
	Slug           string                      `gorm:"type:varchar(255);not null;uniqueIndex"`
	Language       string                      `gorm:"type:varchar(8);not null;default:'auto'"`
	Visibility     string                      `gorm:"type:varchar(16);not null;default:'public';index:idx_prompts_listing,priority:1"`
	Status         string                      `gorm:"type:varchar(16);not null;default:'active';index:idx_prompts_listing,priority:2"`
	HiddenReason   *string                     `gorm:"type:text"`
	Structure      string                      `gorm:"type:varchar(32);not null"`
	Macro          string                      `gorm:"type:varchar(32);not null;index"`
	Tags           datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	BuilderState   datatypes.JSON              `gorm:"type:jsonb"`
	OutputPrompt   string                      `gorm:"type:text;not null"`
	ViewsCount     int64                       `gorm:"not null;default:0"`
	FavoritesCount int64                       `gorm:"not null;default:0"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime;index"`
	UpdatedAt      time.Time                   `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt              `gorm:"index"`
}

func (Prompt) TableName() string {
	return "prompts"
}

type Favorite struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_prompt,priority:1"`
	PromptId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_prompt,priority:2;index"`
	Prompt    Prompt    `gorm:"foreignKey:PromptId;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Favorite) TableName() string {
	return "favorites"
}

type Report struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReporterId *uuid.UUID `gorm:"type:uuid"`
	TargetType string     `gorm:"type:varchar(16);not null;default:'prompt'"`
	TargetId   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Reason     string     `gorm:"type:text;not null"`
	Details    string     `gorm:"type:text"`
	Status     string     `gorm:"type:varchar(16);not null;default:'open';index"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`
	ResolvedAt *time.Time
}

func (Report) TableName() string {
	return "reports"
}

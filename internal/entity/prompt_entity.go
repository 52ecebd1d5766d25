package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"

	StatusActive = "active"
	StatusHidden = "hidden"

	LanguageAuto = "auto"
)

// PromptDraft is a signed-in user's single working draft. BuilderState is
// kept raw so a broken record can still be loaded and repaired.
type PromptDraft struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	BuilderState []byte
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

type Prompt struct {
	Id             uuid.UUID
	OwnerId        uuid.UUID
	Title          string
	Slug           string
	Language       string
	Visibility     string
	Status         string
	HiddenReason   *string
	Structure      string
	Macro          string
	Tags           []string
	BuilderState   []byte
	OutputPrompt   string
	ViewsCount     int64
	FavoritesCount int64
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

// IsListed reports whether the prompt belongs in the public gallery.
func (p *Prompt) IsListed() bool {
	return p.Visibility == VisibilityPublic && p.Status == StatusActive
}

type Favorite struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	PromptId  uuid.UUID
	CreatedAt time.Time
}

const (
	ReportOpen     = "open"
	ReportResolved = "resolved"

	ReportTargetPrompt = "prompt"
)

type Report struct {
	Id         uuid.UUID
	ReporterId *uuid.UUID
	TargetType string
	TargetId   uuid.UUID
	Reason     string
	Details    string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	ResolvedAt *time.Time
}

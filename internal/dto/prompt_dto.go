package dto

import (
	"encoding/json"
	"time"

	"promptito-be/pkg/builder/state"

	"github.com/google/uuid"
)

type PublishRequest struct {
	State      json.RawMessage `json:"state" validate:"required"`
	Visibility string          `json:"visibility" validate:"omitempty,oneof=public private"`
}

type PublishResponse struct {
	Id   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
}

type PromptSummary struct {
	Id             uuid.UUID `json:"id"`
	OwnerId        uuid.UUID `json:"owner_id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Structure      string    `json:"structure"`
	Macro          string    `json:"macro"`
	Tags           []string  `json:"tags"`
	Visibility     string    `json:"visibility"`
	Status         string    `json:"status"`
	ViewsCount     int64     `json:"views_count"`
	FavoritesCount int64     `json:"favorites_count"`
	IsFavorite     bool      `json:"is_favorite"`
	CreatedAt      time.Time `json:"created_at"`
}

type PromptDetail struct {
	PromptSummary
	Language     string             `json:"language"`
	HiddenReason *string            `json:"hidden_reason,omitempty"`
	OutputPrompt string             `json:"output_prompt"`
	BuilderState state.BuilderState `json:"builder_state"`
	IsOwner      bool               `json:"is_owner"`
}

type GalleryQuery struct {
	Query  string `query:"q"`
	Macro  string `query:"macro"`
	Tag    string `query:"tag"`
	Sort   string `query:"sort" validate:"omitempty,oneof=recent views favorites"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}

type GalleryListResponse struct {
	Items  []*PromptSummary `json:"items"`
	Total  int64            `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type FacetsResponse struct {
	Macros []string `json:"macros"`
	Tags   []string `json:"tags"`
}

type FavoriteResponse struct {
	PromptId       uuid.UUID `json:"prompt_id"`
	IsFavorite     bool      `json:"is_favorite"`
	FavoritesCount int64     `json:"favorites_count"`
}

type ReportRequest struct {
	Reason  string `json:"reason" validate:"required,max=500"`
	Details string `json:"details" validate:"max=2000"`
}

type ReportResponse struct {
	Id         uuid.UUID  `json:"id"`
	TargetId   uuid.UUID  `json:"target_id"`
	ReporterId *uuid.UUID `json:"reporter_id,omitempty"`
	Reason     string     `json:"reason"`
	Details    string     `json:"details,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// ForkResponse holds the private copy for signed-in users, or a local draft
// for anonymous ones.
type ForkResponse struct {
	Prompt *PromptSummary `json:"prompt,omitempty"`
	Draft  *DraftResponse `json:"draft,omitempty"`
}

type UpdateVisibilityRequest struct {
	Visibility string `json:"visibility" validate:"required,oneof=public private"`
}

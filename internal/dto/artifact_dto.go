package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SaveSkillPackRequest carries a pack in its interchange JSON form.
type SaveSkillPackRequest struct {
	Pack json.RawMessage `json:"pack" validate:"required"`
}

type SaveAgentRequest struct {
	Spec json.RawMessage `json:"spec" validate:"required"`
}

type ArtifactSummary struct {
	Id         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Visibility string     `json:"visibility"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

type ArtifactResponse struct {
	ArtifactSummary
	Body json.RawMessage `json:"body"`
}

type ParseSkillRequest struct {
	Markdown string `json:"markdown" validate:"required"`
}

type AgentPreviewResponse struct {
	Prompt string `json:"prompt"`
	Agents string `json:"agents_md"`
}

type DashboardResponse struct {
	Prompts    []*ArtifactSummary `json:"prompts"`
	SkillPacks []*ArtifactSummary `json:"skill_packs"`
	Agents     []*ArtifactSummary `json:"agents"`
}

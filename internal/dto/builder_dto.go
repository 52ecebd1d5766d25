package dto

import (
	"encoding/json"
	"time"

	"promptito-be/pkg/builder/compose"
	"promptito-be/pkg/builder/state"
)

// BuilderRequest carries a client held state. A missing or broken state is
// replaced by a fresh one.
type BuilderRequest struct {
	State json.RawMessage `json:"state"`
}

type ReduceRequest struct {
	State   json.RawMessage   `json:"state"`
	Actions []json.RawMessage `json:"actions" validate:"required,min=1,dive,required"`
}

type SectionResponse struct {
	Segment string   `json:"segment"`
	Label   string   `json:"label"`
	Lines   []string `json:"lines"`
}

// BuilderResponse is the state plus everything derived from it.
type BuilderResponse struct {
	State     state.BuilderState `json:"state"`
	Composed  string             `json:"composed"`
	Sections  []SectionResponse  `json:"sections"`
	Readiness compose.Readiness  `json:"readiness"`
	Ready     bool               `json:"ready"`
	Repaired  bool               `json:"repaired,omitempty"`
}

type DraftResponse struct {
	State      state.BuilderState `json:"state"`
	UpdatedAt  *time.Time         `json:"updatedAt"`
	SavedLabel string             `json:"savedLabel,omitempty"`
	Stored     string             `json:"stored"`
}

type PreferencesRequest struct {
	OnboardingCompleted *bool   `json:"onboardingCompleted"`
	PreferredMode       *string `json:"preferredMode" validate:"omitempty,oneof=quest pro"`
	AdvancedMode        *bool   `json:"advancedMode"`
}

type PreferencesResponse struct {
	OnboardingCompleted bool   `json:"onboardingCompleted"`
	PreferredMode       string `json:"preferredMode"`
	AdvancedMode        bool   `json:"advancedMode"`
}

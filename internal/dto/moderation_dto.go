package dto

import "github.com/google/uuid"

type ModerationActionRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type ModerationActionResponse struct {
	ReportId uuid.UUID `json:"report_id"`
	PromptId uuid.UUID `json:"prompt_id"`
	Status   string    `json:"status"`
}

type LogsQuery struct {
	Level  string `query:"level" validate:"omitempty,oneof=debug info warn error"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=500"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}

type ReportsQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=open resolved all"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}

// ReportListItem is a report with the prompt it targets. Prompt is nil once
// the prompt has been deleted.
type ReportListItem struct {
	ReportResponse
	Prompt *PromptSummary `json:"prompt"`
}

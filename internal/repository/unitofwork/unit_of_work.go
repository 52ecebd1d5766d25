package unitofwork

import (
	"context"

	"promptito-be/internal/repository"
	"promptito-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	PromptRepository() contract.PromptRepository
	PromptDraftRepository() contract.PromptDraftRepository
	FavoriteRepository() contract.FavoriteRepository
	ReportRepository() contract.ReportRepository
	SkillPackRepository() contract.SkillPackRepository
	AgentRepository() contract.AgentRepository
	UserProfileRepository() contract.UserProfileRepository
	NotificationRepository() repository.NotificationRepository
}

package contract

import (
	"context"

	"promptito-be/internal/entity"
	"promptito-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PromptRepository interface {
	Create(ctx context.Context, prompt *entity.Prompt) error
	Update(ctx context.Context, prompt *entity.Prompt) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Prompt, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Prompt, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// IncrementViews adds n to the view counter of a listed prompt.
	IncrementViews(ctx context.Context, id uuid.UUID, n int64) error
	// AdjustFavorites adds delta to the favorite counter, never going below zero.
	AdjustFavorites(ctx context.Context, id uuid.UUID, delta int64) error
	SetStatus(ctx context.Context, id uuid.UUID, status string, hiddenReason *string) error
	// Facets returns the distinct macros and tags over listed prompts.
	Facets(ctx context.Context) (macros []string, tags []string, err error)
}

type PromptDraftRepository interface {
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.PromptDraft, error)
	// Upsert stores the single draft of a user and refreshes draft.UpdatedAt.
	Upsert(ctx context.Context, draft *entity.PromptDraft) error
	DeleteByUserId(ctx context.Context, userId uuid.UUID) error
}

type FavoriteRepository interface {
	// Create reports false when the favorite already existed.
	Create(ctx context.Context, favorite *entity.Favorite) (bool, error)
	// Delete reports false when there was nothing to delete.
	Delete(ctx context.Context, userId, promptId uuid.UUID) (bool, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Favorite, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	Update(ctx context.Context, report *entity.Report) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Report, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Report, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

package contract

import (
	"context"

	"promptito-be/internal/entity"
	"promptito-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SkillPackRepository interface {
	Create(ctx context.Context, pack *entity.SkillPack) error
	Update(ctx context.Context, pack *entity.SkillPack) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SkillPack, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SkillPack, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type AgentRepository interface {
	Create(ctx context.Context, agent *entity.Agent) error
	Update(ctx context.Context, agent *entity.Agent) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Agent, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Agent, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type UserProfileRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserProfile, error)
	// Upsert creates the profile on first use and overwrites it afterwards.
	Upsert(ctx context.Context, profile *entity.UserProfile) error
	FindAdminIds(ctx context.Context) ([]uuid.UUID, error)
}

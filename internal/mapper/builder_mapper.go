package mapper

import (
	"promptito-be/internal/entity"
	"promptito-be/internal/model"

	"gorm.io/datatypes"
)

type SkillPackMapper struct{}

func NewSkillPackMapper() *SkillPackMapper {
	return &SkillPackMapper{}
}

func (m *SkillPackMapper) ToEntity(p *model.SkillPack) *entity.SkillPack {
	if p == nil {
		return nil
	}
	return &entity.SkillPack{
		Id:          p.Id,
		OwnerId:     p.OwnerId,
		Title:       p.Title,
		Description: p.Description,
		Visibility:  p.Visibility,
		Tags:        copyTags(p.Tags),
		Skills:      []byte(p.Skills),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   optionalTime(p.UpdatedAt),
		DeletedAt:   fromDeletedAt(p.DeletedAt),
		IsDeleted:   p.DeletedAt.Valid,
	}
}

func (m *SkillPackMapper) ToModel(p *entity.SkillPack) *model.SkillPack {
	if p == nil {
		return nil
	}
	return &model.SkillPack{
		Id:          p.Id,
		OwnerId:     p.OwnerId,
		Title:       p.Title,
		Description: p.Description,
		Visibility:  p.Visibility,
		Tags:        datatypes.JSONSlice[string](copyTags(p.Tags)),
		Skills:      datatypes.JSON(p.Skills),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   valueTime(p.UpdatedAt),
		DeletedAt:   toDeletedAt(p.DeletedAt, p.IsDeleted),
	}
}

func (m *SkillPackMapper) ToEntities(packs []*model.SkillPack) []*entity.SkillPack {
	entities := make([]*entity.SkillPack, len(packs))
	for i, p := range packs {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

type AgentMapper struct{}

func NewAgentMapper() *AgentMapper {
	return &AgentMapper{}
}

func (m *AgentMapper) ToEntity(a *model.Agent) *entity.Agent {
	if a == nil {
		return nil
	}
	return &entity.Agent{
		Id:         a.Id,
		OwnerId:    a.OwnerId,
		Title:      a.Title,
		Visibility: a.Visibility,
		Spec:       []byte(a.Spec),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  optionalTime(a.UpdatedAt),
		DeletedAt:  fromDeletedAt(a.DeletedAt),
		IsDeleted:  a.DeletedAt.Valid,
	}
}

func (m *AgentMapper) ToModel(a *entity.Agent) *model.Agent {
	if a == nil {
		return nil
	}
	return &model.Agent{
		Id:         a.Id,
		OwnerId:    a.OwnerId,
		Title:      a.Title,
		Visibility: a.Visibility,
		Spec:       datatypes.JSON(a.Spec),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  valueTime(a.UpdatedAt),
		DeletedAt:  toDeletedAt(a.DeletedAt, a.IsDeleted),
	}
}

func (m *AgentMapper) ToEntities(agents []*model.Agent) []*entity.Agent {
	entities := make([]*entity.Agent, len(agents))
	for i, a := range agents {
		entities[i] = m.ToEntity(a)
	}
	return entities
}

type UserProfileMapper struct{}

func NewUserProfileMapper() *UserProfileMapper {
	return &UserProfileMapper{}
}

func (m *UserProfileMapper) ToEntity(u *model.UserProfile) *entity.UserProfile {
	if u == nil {
		return nil
	}
	return &entity.UserProfile{
		Id:                  u.Id,
		DisplayName:         u.DisplayName,
		Email:               u.Email,
		OnboardingCompleted: u.OnboardingCompleted,
		PreferredMode:       u.PreferredMode,
		AdvancedMode:        u.AdvancedMode,
		IsAdmin:             u.IsAdmin,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           optionalTime(u.UpdatedAt),
	}
}

func (m *UserProfileMapper) ToModel(u *entity.UserProfile) *model.UserProfile {
	if u == nil {
		return nil
	}
	return &model.UserProfile{
		Id:                  u.Id,
		DisplayName:         u.DisplayName,
		Email:               u.Email,
		OnboardingCompleted: u.OnboardingCompleted,
		PreferredMode:       u.PreferredMode,
		AdvancedMode:        u.AdvancedMode,
		IsAdmin:             u.IsAdmin,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           valueTime(u.UpdatedAt),
	}
}

package mapper

import (
	"promptito-be/internal/entity"
	"promptito-be/internal/model"

	"gorm.io/datatypes"
)

type PromptMapper struct{}

func NewPromptMapper() *PromptMapper {
	return &PromptMapper{}
}

func (m *PromptMapper) ToEntity(p *model.Prompt) *entity.Prompt {
	if p == nil {
		return nil
	}
	return &entity.Prompt{
		Id:             p.Id,
		OwnerId:        p.OwnerId,
		Title:          p.Title,
		Slug:           p.Slug,
		Language:       p.Language,
		Visibility:     p.Visibility,
		Status:         p.Status,
		HiddenReason:   p.HiddenReason,
		Structure:      p.Structure,
		Macro:          p.Macro,
		Tags:           copyTags(p.Tags),
		BuilderState:   []byte(p.BuilderState),
		OutputPrompt:   p.OutputPrompt,
		ViewsCount:     p.ViewsCount,
		FavoritesCount: p.FavoritesCount,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      optionalTime(p.UpdatedAt),
		DeletedAt:      fromDeletedAt(p.DeletedAt),
		IsDeleted:      p.DeletedAt.Valid,
	}
}

func (m *PromptMapper) ToModel(p *entity.Prompt) *model.Prompt {
	if p == nil {
		return nil
	}
	return &model.Prompt{
		Id:             p.Id,
		OwnerId:        p.OwnerId,
		Title:          p.Title,
		Slug:           p.Slug,
		Language:       p.Language,
		Visibility:     p.Visibility,
		Status:         p.Status,
		HiddenReason:   p.HiddenReason,
		Structure:      p.Structure,
		Macro:          p.Macro,
		Tags:           datatypes.JSONSlice[string](copyTags(p.Tags)),
		BuilderState:   datatypes.JSON(p.BuilderState),
		OutputPrompt:   p.OutputPrompt,
		ViewsCount:     p.ViewsCount,
		FavoritesCount: p.FavoritesCount,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      valueTime(p.UpdatedAt),
		DeletedAt:      toDeletedAt(p.DeletedAt, p.IsDeleted),
	}
}

func (m *PromptMapper) ToEntities(prompts []*model.Prompt) []*entity.Prompt {
	entities := make([]*entity.Prompt, len(prompts))
	for i, p := range prompts {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

func (m *PromptMapper) ToModels(prompts []*entity.Prompt) []*model.Prompt {
	models := make([]*model.Prompt, len(prompts))
	for i, p := range prompts {
		models[i] = m.ToModel(p)
	}
	return models
}

type PromptDraftMapper struct{}

func NewPromptDraftMapper() *PromptDraftMapper {
	return &PromptDraftMapper{}
}

func (m *PromptDraftMapper) ToEntity(d *model.PromptDraft) *entity.PromptDraft {
	if d == nil {
		return nil
	}
	return &entity.PromptDraft{
		Id:           d.Id,
		UserId:       d.UserId,
		BuilderState: []byte(d.BuilderState),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    optionalTime(d.UpdatedAt),
	}
}

func (m *PromptDraftMapper) ToModel(d *entity.PromptDraft) *model.PromptDraft {
	if d == nil {
		return nil
	}
	return &model.PromptDraft{
		Id:           d.Id,
		UserId:       d.UserId,
		BuilderState: datatypes.JSON(d.BuilderState),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    valueTime(d.UpdatedAt),
	}
}

type FavoriteMapper struct{}

func NewFavoriteMapper() *FavoriteMapper {
	return &FavoriteMapper{}
}

func (m *FavoriteMapper) ToEntity(f *model.Favorite) *entity.Favorite {
	if f == nil {
		return nil
	}
	return &entity.Favorite{Id: f.Id, UserId: f.UserId, PromptId: f.PromptId, CreatedAt: f.CreatedAt}
}

func (m *FavoriteMapper) ToModel(f *entity.Favorite) *model.Favorite {
	if f == nil {
		return nil
	}
	return &model.Favorite{Id: f.Id, UserId: f.UserId, PromptId: f.PromptId, CreatedAt: f.CreatedAt}
}

func (m *FavoriteMapper) ToEntities(favorites []*model.Favorite) []*entity.Favorite {
	entities := make([]*entity.Favorite, len(favorites))
	for i, f := range favorites {
		entities[i] = m.ToEntity(f)
	}
	return entities
}

type ReportMapper struct{}

func NewReportMapper() *ReportMapper {
	return &ReportMapper{}
}

func (m *ReportMapper) ToEntity(r *model.Report) *entity.Report {
	if r == nil {
		return nil
	}
	return &entity.Report{
		Id:         r.Id,
		ReporterId: r.ReporterId,
		TargetType: r.TargetType,
		TargetId:   r.TargetId,
		Reason:     r.Reason,
		Details:    r.Details,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  optionalTime(r.UpdatedAt),
		ResolvedAt: r.ResolvedAt,
	}
}

func (m *ReportMapper) ToModel(r *entity.Report) *model.Report {
	if r == nil {
		return nil
	}
	return &model.Report{
		Id:         r.Id,
		ReporterId: r.ReporterId,
		TargetType: r.TargetType,
		TargetId:   r.TargetId,
		Reason:     r.Reason,
		Details:    r.Details,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  valueTime(r.UpdatedAt),
		ResolvedAt: r.ResolvedAt,
	}
}

func (m *ReportMapper) ToEntities(reports []*model.Report) []*entity.Report {
	entities := make([]*entity.Report, len(reports))
	for i, r := range reports {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

package service

import (
	"context"

	"promptito-be/internal/dto"
	"promptito-be/internal/pkg/apperror"
	"promptito-be/internal/repository/specification"
	"promptito-be/internal/repository/unitofwork"
)

type IDashboardService interface {
	Get(ctx context.Context, actor Actor) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewDashboardService(uowFactory unitofwork.RepositoryFactory) IDashboardService {
	return &dashboardService{uowFactory: uowFactory}
}

// Get lists everything the caller owns, newest first.
func (s *dashboardService) Get(ctx context.Context, actor Actor) (*dto.DashboardResponse, error) {
	if s.uowFactory == nil {
		return nil, apperror.ErrFeatureDisabled
	}
	if !actor.SignedIn() {
		return nil, apperror.ErrUnauthorized
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	mine := []specification.Specification{
		specification.OwnedBy{OwnerID: actor.UserID},
		specification.OrderBy{Field: "created_at", Desc: true},
	}

	prompts, err := uow.PromptRepository().FindAll(ctx, mine...)
	if err != nil {
		return nil, err
	}
	packs, err := uow.SkillPackRepository().FindAll(ctx, mine...)
	if err != nil {
		return nil, err
	}
	agents, err := uow.AgentRepository().FindAll(ctx, mine...)
	if err != nil {
		return nil, err
	}

	res := &dto.DashboardResponse{
		Prompts:    make([]*dto.ArtifactSummary, len(prompts)),
		SkillPacks: make([]*dto.ArtifactSummary, len(packs)),
		Agents:     make([]*dto.ArtifactSummary, len(agents)),
	}
	for i, p := range prompts {
		res.Prompts[i] = &dto.ArtifactSummary{Id: p.Id, Title: p.Title, Visibility: p.Visibility, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
	}
	for i, p := range packs {
		res.SkillPacks[i] = &dto.ArtifactSummary{Id: p.Id, Title: p.Title, Visibility: p.Visibility, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
	}
	for i, a := range agents {
		res.Agents[i] = &dto.ArtifactSummary{Id: a.Id, Title: a.Title, Visibility: a.Visibility, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt}
	}
	return res, nil
}

package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"promptito-be/internal/dto"
	"promptito-be/internal/entity"
	"promptito-be/internal/pkg/apperror"
	"promptito-be/internal/pkg/logger"
	"promptito-be/internal/repository/specification"
	"promptito-be/internal/repository/unitofwork"
	"promptito-be/pkg/agent"
	"promptito-be/pkg/builder/catalog"
	"promptito-be/pkg/bundle"
	"promptito-be/pkg/i18n"

	"github.com/google/uuid"
)

type IAgentService interface {
	New(tr i18n.Translator) agent.Spec
	Preview(tr i18n.Translator, req *dto.SaveAgentRequest) (*dto.AgentPreviewResponse, error)
	Validate(tr i18n.Translator, req *dto.SaveAgentRequest) error
	Export(tr i18n.Translator, req *dto.SaveAgentRequest) (*bundle.Archive, error)

	Save(ctx context.Context, actor Actor, tr i18n.Translator, req *dto.SaveAgentRequest) (*dto.ArtifactResponse, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*dto.ArtifactResponse, error)
	List(ctx context.Context, actor Actor) ([]*dto.ArtifactSummary, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type agentService struct {
	uowFactory unitofwork.RepositoryFactory
	catalog    *catalog.Store
	logger     logger.ILogger
	now        func() time.Time
}

func NewAgentService(uowFactory unitofwork.RepositoryFactory, store *catalog.Store, log logger.ILogger) IAgentService {
	return &agentService{
		uowFactory: uowFactory,
		catalog:    store,
		logger:     log,
		now:        time.Now,
	}
}

func (s *agentService) New(tr i18n.Translator) agent.Spec {
	return agent.New(newID(), newID(), tr)
}

func decodeSpec(raw json.RawMessage) (agent.Spec, error) {
	var spec agent.Spec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return agent.Spec{}, apperror.WithCode(err, http.StatusBadRequest)
	}
	return spec, nil
}

func (s *agentService) Preview(tr i18n.Translator, req *dto.SaveAgentRequest) (*dto.AgentPreviewResponse, error) {
	spec, err := decodeSpec(req.Spec)
	if err != nil {
		return nil, err
	}
	spec = spec.Finalize(tr)
	return &dto.AgentPreviewResponse{
		Prompt: agent.Prompt(spec, s.catalog, tr),
		Agents: agent.AgentsMarkdown(spec, s.catalog, tr),
	}, nil
}

func (s *agentService) Validate(tr i18n.Translator, req *dto.SaveAgentRequest) error {
	spec, err := decodeSpec(req.Spec)
	if err != nil {
		return err
	}
	return spec.Finalize(tr).Validate()
}

func (s *agentService) Export(tr i18n.Translator, req *dto.SaveAgentRequest) (*bundle.Archive, error) {
	spec, err := decodeSpec(req.Spec)
	if err != nil {
		return nil, err
	}
	archive, err := bundle.Agent(spec, s.catalog, tr, s.now())
	if err != nil {
		return nil, err
	}
	return &archive, nil
}

func agentResponse(a *entity.Agent) *dto.ArtifactResponse {
	return &dto.ArtifactResponse{
		ArtifactSummary: dto.ArtifactSummary{
			Id:         a.Id,
			Title:      a.Title,
			Visibility: a.Visibility,
			CreatedAt:  a.CreatedAt,
			UpdatedAt:  a.UpdatedAt,
		},
		Body: a.Spec,
	}
}

func (s *agentService) Save(ctx context.Context, actor Actor, tr i18n.Translator, req *dto.SaveAgentRequest) (*dto.ArtifactResponse, error) {
	if s.uowFactory == nil {
		return nil, apperror.ErrFeatureDisabled
	}
	if !actor.SignedIn() {
		return nil, apperror.ErrUnauthorized
	}
	spec, err := decodeSpec(req.Spec)
	if err != nil {
		return nil, err
	}
	spec = spec.Finalize(tr)
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	repo := s.uowFactory.NewUnitOfWork(ctx).AgentRepository()
	var existing *entity.Agent
	if id, err := uuid.Parse(spec.ID); err == nil {
		existing, err = repo.FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{OwnerID: actor.UserID})
		if err != nil {
			return nil, err
		}
	}

	record := entity.Agent{
		OwnerId:    actor.UserID,
		Title:      spec.Title,
		Visibility: entity.VisibilityPrivate,
	}
	if existing != nil {
		record.Id = existing.Id
		record.Visibility = existing.Visibility
		record.CreatedAt = existing.CreatedAt
	} else {
		record.Id = uuid.New()
	}
	spec.ID = record.Id.String()
	if record.Spec, err = json.Marshal(spec); err != nil {
		return nil, err
	}

	if existing != nil {
		err = repo.Update(ctx, &record)
	} else {
		err = repo.Create(ctx, &record)
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info("Agent", "Agent saved", map[string]interface{}{"agent_id": record.Id.String(), "steps": len(spec.Steps)})
	return agentResponse(&record), nil
}

func (s *agentService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*dto.ArtifactResponse, error) {
	if s.uowFactory == nil {
		return nil, apperror.ErrFeatureDisabled
	}
	a, err := s.uowFactory.NewUnitOfWork(ctx).AgentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if a == nil || (a.Visibility != entity.VisibilityPublic && a.OwnerId != actor.UserID) {
		return nil, apperror.ErrNotFound
	}
	return agentResponse(a), nil
}

func (s *agentService) List(ctx context.Context, actor Actor) ([]*dto.ArtifactSummary, error) {
	if s.uowFactory == nil {
		return nil, apperror.ErrFeatureDisabled
	}
	if !actor.SignedIn() {
		return nil, apperror.ErrUnauthorized
	}
	agents, err := s.uowFactory.NewUnitOfWork(ctx).AgentRepository().FindAll(ctx,
		specification.OwnedBy{OwnerID: actor.UserID},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ArtifactSummary, len(agents))
	for i, a := range agents {
		out[i] = &agentResponse(a).ArtifactSummary
	}
	return out, nil
}

func (s *agentService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if s.uowFactory == nil {
		return apperror.ErrFeatureDisabled
	}
	if !actor.SignedIn() {
		return apperror.ErrUnauthorized
	}
	repo := s.uowFactory.NewUnitOfWork(ctx).AgentRepository()
	a, err := repo.FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{OwnerID: actor.UserID})
	if err != nil {
		return err
	}
	if a == nil {
		return apperror.ErrNotFound
	}
	return repo.Delete(ctx, a.Id)
}

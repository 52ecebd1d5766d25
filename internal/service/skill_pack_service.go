package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"promptito-be/internal/dto"
	"promptito-be/internal/entity"
	"promptito-be/internal/pkg/apperror"
	"promptito-be/internal/pkg/logger"
	"promptito-be/internal/repository/specification"
	"promptito-be/internal/repository/unitofwork"
	"promptito-be/pkg/bundle"
	"promptito-be/pkg/i18n"
	"promptito-be/pkg/skill"

	"github.com/google/uuid"
)

type ISkillPackService interface {
	NewPack(tr i18n.Translator) skill.Pack
	NewSkill(tr i18n.Translator, template bool) skill.Skill
	Validate(req *dto.SaveSkillPackRequest) error
	Export(req *dto.SaveSkillPackRequest) (*bundle.Archive, error)
	ParseSkill(req *dto.ParseSkillRequest) (*skill.Skill, error)

	Save(ctx context.Context, actor Actor, req *dto.SaveSkillPackRequest) (*dto.ArtifactResponse, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*dto.ArtifactResponse, error)
	List(ctx context.Context, actor Actor) ([]*dto.ArtifactSummary, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type skillPackService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	now        func() time.Time
}

func NewSkillPackService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) ISkillPackService {
	return &skillPackService{
		uowFactory: uowFactory,
		logger:     log,
		now:        time.Now,
	}
}

func newID() string { return uuid.NewString() }

func (s *skillPackService) NewPack(tr i18n.Translator) skill.Pack {
	return skill.NewBuilder(tr, newID).NewPack()
}

func (s *skillPackService) NewSkill(tr i18n.Translator, template bool) skill.Skill {
	return skill.NewBuilder(tr, newID).NewSkill(template)
}

func decodePack(raw json.RawMessage) (skill.Pack, error) {
	var p skill.Pack
	if err := json.Unmarshal(raw, &p); err != nil {
		return skill.Pack{}, apperror.WithCode(err, http.StatusBadRequest)
	}
	return p, nil
}

func (s *skillPackService) Validate(req *dto.SaveSkillPackRequest) error {
	p, err := decodePack(req.Pack)
	if err != nil {
		return err
	}
	return p.Validate()
}

func (s *skillPackService) Export(req *dto.SaveSkillPackRequest) (*bundle.Archive, error) {
	p, err := decodePack(req.Pack)
	if err != nil {
		return nil, err
	}
	archive, err := bundle.SkillPack(p, s.now())
	if err != nil {
		return nil, err
	}
	return &archive, nil
}

func (s *skillPackService) ParseSkill(req *dto.ParseSkillRequest) (*skill.Skill, error) {
	sk, err := skill.FromMarkdown(newID(), []byte(req.Markdown))
	if err != nil {
		return nil, apperror.WithCode(err, http.StatusBadRequest)
	}
	return &sk, nil
}

func (s *skillPackService) packResponse(p *entity.SkillPack) *dto.ArtifactResponse {
	// The stored skills come back as the full pack document.
	var skills []skill.Skill
	if err := json.Unmarshal(p.Skills, &skills); err != nil {
		s.logger.Warn("SkillPack", "Stored skills are unreadable, returning an empty pack", map[string]interface{}{
			"pack_id": p.Id.String(),
			"error":   err.Error(),
		})
		skills = nil
	}
	if skills == nil {
		skills = []skill.Skill{}
	}
	body, _ := json.Marshal(skill.Pack{
		ID:          p.Id.String(),
		Title:       p.Title,
		Description: p.Description,
		Visibility:  skill.Visibility(p.Visibility),
		Tags:        p.Tags,
		Skills:      skills,
	})
	return &dto.ArtifactResponse{
		ArtifactSummary: dto.ArtifactSummary{
			Id:         p.Id,
			Title:      p.Title,
			Visibility: p.Visibility,
			CreatedAt:  p.CreatedAt,
			UpdatedAt:  p.UpdatedAt,
		},
		Body: body,
	}
}

// Save validates the pack and stores it. A pack whose id names one of the
// caller's packs is updated; anything else creates a new record.
func (s *skillPackService) Save(ctx context.Context, actor Actor, req *dto.SaveSkillPackRequest) (*dto.ArtifactResponse, error) {
	if s.uowFactory == nil {
		return nil, apperror.ErrFeatureDisabled
	}
	if !actor.SignedIn() {
		return nil, apperror.ErrUnauthorized
	}
	p, err := decodePack(req.Pack)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	skills, err := json.Marshal(p.Skills)
	if err != nil {
		return nil, err
	}
	visibility := string(p.Visibility)
	if visibility == "" {
		visibility = entity.VisibilityPrivate
	}

	repo := s.uowFactory.NewUnitOfWork(ctx).SkillPackRepository()
	var existing *entity.SkillPack
	if id, err := uuid.Parse(p.ID); err == nil {
		existing, err = repo.FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{OwnerID: actor.UserID})
		if err != nil {
			return nil, err
		}
	}

	record := entity.SkillPack{
		OwnerId:     actor.UserID,
		Title:       strings.TrimSpace(p.Title),
		Description: p.Description,
		Visibility:  visibility,
		Tags:        p.Tags,
		Skills:      skills,
	}
	if existing != nil {
		record.Id = existing.Id
		record.CreatedAt = existing.CreatedAt
		err = repo.Update(ctx, &record)
	} else {
		err = repo.Create(ctx, &record)
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info("SkillPack", "Skill pack saved", map[string]interface{}{"pack_id": record.Id.String(), "skills": len(p.Skills)})
	return s.packResponse(&record), nil
}

func (s *skillPackService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*dto.ArtifactResponse, error) {
	if s.uowFactory == nil {
		return nil, apperror.ErrFeatureDisabled
	}
	p, err := s.uowFactory.NewUnitOfWork(ctx).SkillPackRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if p == nil || (p.Visibility != entity.VisibilityPublic && p.OwnerId != actor.UserID) {
		return nil, apperror.ErrNotFound
	}
	return s.packResponse(p), nil
}

func (s *skillPackService) List(ctx context.Context, actor Actor) ([]*dto.ArtifactSummary, error) {
	if s.uowFactory == nil {
		return nil, apperror.ErrFeatureDisabled
	}
	if !actor.SignedIn() {
		return nil, apperror.ErrUnauthorized
	}
	packs, err := s.uowFactory.NewUnitOfWork(ctx).SkillPackRepository().FindAll(ctx,
		specification.OwnedBy{OwnerID: actor.UserID},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ArtifactSummary, len(packs))
	for i, p := range packs {
		out[i] = &s.packResponse(p).ArtifactSummary
	}
	return out, nil
}

func (s *skillPackService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if s.uowFactory == nil {
		return apperror.ErrFeatureDisabled
	}
	if !actor.SignedIn() {
		return apperror.ErrUnauthorized
	}
	repo := s.uowFactory.NewUnitOfWork(ctx).SkillPackRepository()
	p, err := repo.FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{OwnerID: actor.UserID})
	if err != nil {
		return err
	}
	if p == nil {
		return apperror.ErrNotFound
	}
	return repo.Delete(ctx, p.Id)
}

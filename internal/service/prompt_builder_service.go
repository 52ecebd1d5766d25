package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"promptito-be/internal/config"
	"promptito-be/internal/dto"
	"promptito-be/internal/entity"
	"promptito-be/internal/pkg/apperror"
	"promptito-be/internal/pkg/logger"
	"promptito-be/internal/repository/cache"
	"promptito-be/internal/repository/memory"
	"promptito-be/internal/repository/unitofwork"
	"promptito-be/pkg/builder/catalog"
	"promptito-be/pkg/builder/compose"
	"promptito-be/pkg/builder/dnd"
	"promptito-be/pkg/builder/editor"
	"promptito-be/pkg/builder/state"
	"promptito-be/pkg/bundle"
	"promptito-be/pkg/events"
	"promptito-be/pkg/i18n"
	"promptito-be/pkg/slug"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StoredHosted = "hosted"
	StoredLocal  = "local"

	slugAttempts = 3
)

var ErrClientIDRequired = apperror.BadRequest("X-Client-Id header is required for anonymous drafts")

type IPromptBuilderService interface {
	Fresh(tr i18n.Translator) *dto.BuilderResponse
	Compose(tr i18n.Translator, req *dto.BuilderRequest) *dto.BuilderResponse
	Reduce(tr i18n.Translator, req *dto.ReduceRequest) (*dto.BuilderResponse, error)
	LoadDraft(ctx context.Context, actor Actor, tr i18n.Translator) (*dto.DraftResponse, error)
	SaveDraft(ctx context.Context, actor Actor, tr i18n.Translator, req *dto.BuilderRequest) (*dto.DraftResponse, error)
	DeleteDraft(ctx context.Context, actor Actor) error
	Export(tr i18n.Translator, req *dto.BuilderRequest) (*bundle.Archive, error)
	Publish(ctx context.Context, actor Actor, tr i18n.Translator, req *dto.PublishRequest) (*dto.PublishResponse, error)
}

type promptBuilderService struct {
	uowFactory   unitofwork.RepositoryFactory
	localDrafts  *memory.LocalDraftRepository
	catalog      *catalog.Store
	publisher    EventPublisher
	galleryCache *cache.GalleryCache
	features     config.FeatureFlags
	logger       logger.ILogger
	now          func() time.Time
}

// NewPromptBuilderService accepts a nil uowFactory; every draft is then kept
// in the local store and publishing is disabled.
func NewPromptBuilderService(
	uowFactory unitofwork.RepositoryFactory,
	localDrafts *memory.LocalDraftRepository,
	store *catalog.Store,
	publisher EventPublisher,
	galleryCache *cache.GalleryCache,
	features config.FeatureFlags,
	log logger.ILogger,
) IPromptBuilderService {
	return &promptBuilderService{
		uowFactory:   uowFactory,
		localDrafts:  localDrafts,
		catalog:      store,
		publisher:    publisher,
		galleryCache: galleryCache,
		features:     features,
		logger:       log,
		now:          time.Now,
	}
}

func (s *promptBuilderService) hosted(actor Actor) bool {
	return s.uowFactory != nil && actor.SignedIn()
}

// decode repairs raw into a valid state. repaired is true when raw was
// present but unusable.
func (s *promptBuilderService) decode(raw []byte, tr i18n.Translator) (st state.BuilderState, repaired bool) {
	st, ok := state.Decode(raw, tr)
	if !ok && len(raw) > 0 && string(raw) != "null" {
		s.logger.Warn("PromptBuilder", "Replaced unreadable builder state with a fresh one", map[string]interface{}{"bytes": len(raw)})
		return st, true
	}
	return st, false
}

func view(st state.BuilderState, tr i18n.Translator) *dto.BuilderResponse {
	sections := compose.Sections(st, tr)
	out := make([]dto.SectionResponse, len(sections))
	for i, sec := range sections {
		out[i] = dto.SectionResponse{Segment: string(sec.Segment), Label: sec.Label, Lines: sec.Lines}
	}
	readiness := compose.Check(st)
	return &dto.BuilderResponse{
		State:     st,
		Composed:  compose.Compose(st, tr),
		Sections:  out,
		Readiness: readiness,
		Ready:     readiness.Ready(),
	}
}

func (s *promptBuilderService) Fresh(tr i18n.Translator) *dto.BuilderResponse {
	return view(state.New(tr), tr)
}

func (s *promptBuilderService) Compose(tr i18n.Translator, req *dto.BuilderRequest) *dto.BuilderResponse {
	st, repaired := s.decode(req.State, tr)
	res := view(st, tr)
	res.Repaired = repaired
	return res
}

func (s *promptBuilderService) editor(tr i18n.Translator) *editor.Editor {
	return editor.New(dnd.NewController(s.catalog, tr), tr)
}

func (s *promptBuilderService) Reduce(tr i18n.Translator, req *dto.ReduceRequest) (*dto.BuilderResponse, error) {
	actions := make([]editor.Action, 0, len(req.Actions))
	for _, raw := range req.Actions {
		a, err := editor.DecodeAction(raw)
		if err != nil {
			return nil, apperror.WithCode(err, http.StatusBadRequest)
		}
		actions = append(actions, a)
	}
	st, repaired := s.decode(req.State, tr)
	res := view(s.editor(tr).ReduceAll(st, actions...), tr)
	res.Repaired = repaired
	return res, nil
}

func (s *promptBuilderService) draftResponse(st state.BuilderState, updatedAt *time.Time, stored string) *dto.DraftResponse {
	res := &dto.DraftResponse{State: st, UpdatedAt: updatedAt, Stored: stored}
	if updatedAt != nil {
		res.SavedLabel = state.FormatRelative(*updatedAt, s.now())
	}
	return res
}

func (s *promptBuilderService) LoadDraft(ctx context.Context, actor Actor, tr i18n.Translator) (*dto.DraftResponse, error) {
	if s.hosted(actor) {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		draft, err := uow.PromptDraftRepository().FindByUserId(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if draft == nil {
			return s.draftResponse(state.New(tr), nil, StoredHosted), nil
		}
		st, _ := s.decode(draft.BuilderState, tr)
		return s.draftResponse(st, draft.UpdatedAt, StoredHosted), nil
	}

	if !actor.hasIdentity() {
		return nil, ErrClientIDRequired
	}
	draft, ok := s.localDrafts.Get(actor.localKey())
	if !ok {
		return s.draftResponse(state.New(tr), nil, StoredLocal), nil
	}
	updatedAt := draft.UpdatedAt
	return s.draftResponse(state.Normalize(draft.State, tr), &updatedAt, StoredLocal), nil
}

// SaveDraft writes the normalized state. Hosted saves pass the readiness gate
// first; local saves always succeed.
func (s *promptBuilderService) SaveDraft(ctx context.Context, actor Actor, tr i18n.Translator, req *dto.BuilderRequest) (*dto.DraftResponse, error) {
	st, _ := s.decode(req.State, tr)

	if s.hosted(actor) {
		if err := compose.Check(st).Err(); err != nil {
			return nil, err
		}
		raw, err := json.Marshal(st)
		if err != nil {
			return nil, err
		}
		uow := s.uowFactory.NewUnitOfWork(ctx)
		draft := entity.PromptDraft{UserId: actor.UserID, BuilderState: raw}
		if err := uow.PromptDraftRepository().Upsert(ctx, &draft); err != nil {
			return nil, err
		}
		s.logger.Info("PromptBuilder", "Draft saved", map[string]interface{}{"user_id": actor.UserID.String()})
		return s.draftResponse(st, draft.UpdatedAt, StoredHosted), nil
	}

	if !actor.hasIdentity() {
		return nil, ErrClientIDRequired
	}
	now := s.now().UTC()
	s.localDrafts.Save(actor.localKey(), state.Draft{State: st, UpdatedAt: now})
	return s.draftResponse(st, &now, StoredLocal), nil
}

func (s *promptBuilderService) DeleteDraft(ctx context.Context, actor Actor) error {
	if s.hosted(actor) {
		return s.uowFactory.NewUnitOfWork(ctx).PromptDraftRepository().DeleteByUserId(ctx, actor.UserID)
	}
	if !actor.hasIdentity() {
		return ErrClientIDRequired
	}
	s.localDrafts.Delete(actor.localKey())
	return nil
}

func (s *promptBuilderService) Export(tr i18n.Translator, req *dto.BuilderRequest) (*bundle.Archive, error) {
	st, _ := s.decode(req.State, tr)
	archive, err := bundle.Prompt(st, tr, s.now())
	if err != nil {
		return nil, err
	}
	return &archive, nil
}

// publishTags uses the niche as the only tag when the user set none.
func publishTags(st state.BuilderState) []string {
	if len(st.Tags) > 0 {
		return append([]string{}, st.Tags...)
	}
	if st.Niche != "" && st.Niche != state.DefaultNiche {
		return []string{st.Niche}
	}
	return []string{}
}

func (s *promptBuilderService) Publish(ctx context.Context, actor Actor, tr i18n.Translator, req *dto.PublishRequest) (*dto.PublishResponse, error) {
	if !s.features.Publishing || s.uowFactory == nil {
		return nil, apperror.ErrFeatureDisabled
	}
	if !actor.SignedIn() {
		return nil, apperror.ErrUnauthorized
	}

	st, _ := s.decode(req.State, tr)
	if err := compose.Check(st).Err(); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(st.Title)
	if title == "" {
		title = tr.T("promptBuilder.untitled")
	}
	visibility := req.Visibility
	if visibility == "" {
		visibility = entity.VisibilityPublic
	}

	prompt := entity.Prompt{
		OwnerId:      actor.UserID,
		Title:        title,
		Language:     entity.LanguageAuto,
		Visibility:   visibility,
		Status:       entity.StatusActive,
		Structure:    st.Structure,
		Macro:        st.Macro,
		Tags:         publishTags(st),
		BuilderState: raw,
		OutputPrompt: compose.Compose(st, tr),
	}

	base := slug.MakeOr(title, "untitled")
	repo := s.uowFactory.NewUnitOfWork(ctx).PromptRepository()
	for attempt := 1; ; attempt++ {
		prompt.Id = uuid.Nil
		prompt.Slug = slug.WithSuffix(base)
		err = repo.Create(ctx, &prompt)
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt == slugAttempts {
			return nil, err
		}
	}

	s.logger.Info("PromptBuilder", "Prompt published", map[string]interface{}{"prompt_id": prompt.Id.String(), "slug": prompt.Slug})
	if prompt.IsListed() {
		s.galleryCache.Invalidate(ctx)
	}
	publish(ctx, s.publisher, s.logger, events.New(events.PromptPublished, promptPayload(&prompt, actor.UserID)))

	return &dto.PublishResponse{Id: prompt.Id, Slug: prompt.Slug}, nil
}

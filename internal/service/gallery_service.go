package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"promptito-be/internal/config"
	"promptito-be/internal/dto"
	"promptito-be/internal/entity"
	"promptito-be/internal/pkg/apperror"
	"promptito-be/internal/pkg/logger"
	"promptito-be/internal/pkg/mailer"
	"promptito-be/internal/repository/cache"
	"promptito-be/internal/repository/memory"
	"promptito-be/internal/repository/specification"
	"promptito-be/internal/repository/unitofwork"
	"promptito-be/pkg/builder/segment"
	"promptito-be/pkg/builder/state"
	"promptito-be/pkg/events"
	"promptito-be/pkg/i18n"
	"promptito-be/pkg/slug"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultGalleryLimit = 24
	filterAll           = "all"
)

var ErrReasonRequired = apperror.BadRequest("reason is required")

type IGalleryService interface {
	List(ctx context.Context, actor Actor, q *dto.GalleryQuery) (*dto.GalleryListResponse, error)
	Facets(ctx context.Context) (*dto.FacetsResponse, error)
	Detail(ctx context.Context, actor Actor, tr i18n.Translator, slug string) (*dto.PromptDetail, error)
	SetFavorite(ctx context.Context, actor Actor, promptId uuid.UUID, favorite bool) (*dto.FavoriteResponse, error)
	Favorites(ctx context.Context, actor Actor) ([]*dto.PromptSummary, error)
	Report(ctx context.Context, actor Actor, promptId uuid.UUID, req *dto.ReportRequest) (*dto.ReportResponse, error)
	Fork(ctx context.Context, actor Actor, tr i18n.Translator, promptId uuid.UUID) (*dto.ForkResponse, error)
	Mine(ctx context.Context, actor Actor) ([]*dto.PromptSummary, error)
	UpdateVisibility(ctx context.Context, actor Actor, promptId uuid.UUID, req *dto.UpdateVisibilityRequest) (*dto.PromptSummary, error)
	Delete(ctx context.Context, actor Actor, promptId uuid.UUID) error
}

type galleryService struct {
	uowFactory     unitofwork.RepositoryFactory
	localDrafts    *memory.LocalDraftRepository
	galleryCache   *cache.GalleryCache
	viewPublisher  IPublisherService
	publisher      EventPublisher
	emailService   mailer.IEmailService
	features       config.FeatureFlags
	clientURL      string
	moderatorEmail string
	logger         logger.ILogger
	now            func() time.Time
}

func NewGalleryService(
	uowFactory unitofwork.RepositoryFactory,
	localDrafts *memory.LocalDraftRepository,
	galleryCache *cache.GalleryCache,
	viewPublisher IPublisherService,
	publisher EventPublisher,
	emailService mailer.IEmailService,
	features config.FeatureFlags,
	clientURL string,
	moderatorEmail string,
	log logger.ILogger,
) IGalleryService {
	return &galleryService{
		uowFactory:     uowFactory,
		localDrafts:    localDrafts,
		galleryCache:   galleryCache,
		viewPublisher:  viewPublisher,
		publisher:      publisher,
		emailService:   emailService,
		features:       features,
		clientURL:      strings.TrimRight(clientURL, "/"),
		moderatorEmail: moderatorEmail,
		logger:         log,
		now:            time.Now,
	}
}

func (s *galleryService) available() error {
	if !s.features.Gallery || s.uowFactory == nil {
		return apperror.ErrFeatureDisabled
	}
	return nil
}

// canView: listed prompts are open to everyone. Anything else needs a
// signed-in caller who is an admin, the owner, or looking at a private
// prompt.
func canView(p *entity.Prompt, actor Actor) bool {
	if p.IsListed() {
		return true
	}
	if !actor.SignedIn() {
		return false
	}
	return actor.IsAdmin || p.OwnerId == actor.UserID || p.Visibility == entity.VisibilityPrivate
}

func summary(p *entity.Prompt) *dto.PromptSummary {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.PromptSummary{
		Id:             p.Id,
		OwnerId:        p.OwnerId,
		Title:          p.Title,
		Slug:           p.Slug,
		Structure:      p.Structure,
		Macro:          p.Macro,
		Tags:           tags,
		Visibility:     p.Visibility,
		Status:         p.Status,
		ViewsCount:     p.ViewsCount,
		FavoritesCount: p.FavoritesCount,
		CreatedAt:      p.CreatedAt,
	}
}

func summaries(prompts []*entity.Prompt) []*dto.PromptSummary {
	out := make([]*dto.PromptSummary, len(prompts))
	for i, p := range prompts {
		out[i] = summary(p)
	}
	return out
}

func withoutAll(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, filterAll) {
		return ""
	}
	return v
}

func (s *galleryService) List(ctx context.Context, actor Actor, q *dto.GalleryQuery) (*dto.GalleryListResponse, error) {
	if err := s.available(); err != nil {
		return nil, err
	}

	query := strings.TrimSpace(q.Query)
	macro := withoutAll(q.Macro)
	tag := withoutAll(q.Tag)
	sort := q.Sort
	if sort == "" {
		sort = specification.SortRecent
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultGalleryLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	keyParts := []string{"list", strings.ToLower(query), macro, tag, sort, strconv.Itoa(limit), strconv.Itoa(offset)}
	var res dto.GalleryListResponse
	if !s.galleryCache.Get(ctx, &res, keyParts...) {
		filters := []specification.Specification{
			specification.PublicActive{},
			specification.GallerySearch{Query: query},
			specification.ByMacro{Macro: macro},
			specification.HasTag{Tag: tag},
		}
		repo := s.uowFactory.NewUnitOfWork(ctx).PromptRepository()
		total, err := repo.Count(ctx, filters...)
		if err != nil {
			return nil, err
		}
		prompts, err := repo.FindAll(ctx, append(filters,
			specification.GallerySort{Sort: sort},
			specification.Pagination{Limit: limit, Offset: offset},
		)...)
		if err != nil {
			return nil, err
		}
		res = dto.GalleryListResponse{Items: summaries(prompts), Total: total, Limit: limit, Offset: offset}
		s.galleryCache.Set(ctx, res, keyParts...)
	}

	if err := s.markFavorites(ctx, actor, res.Items); err != nil {
		return nil, err
	}
	return &res, nil
}

// markFavorites sets IsFavorite per caller. Cached listings never carry it.
func (s *galleryService) markFavorites(ctx context.Context, actor Actor, items []*dto.PromptSummary) error {
	if !actor.SignedIn() || len(items) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(items))
	for i, it := range items {
		ids[i] = it.Id
	}
	favorites, err := s.uowFactory.NewUnitOfWork(ctx).FavoriteRepository().FindAll(ctx,
		specification.ByUserID{UserID: actor.UserID},
		specification.ByPromptIDs{PromptIDs: ids},
	)
	if err != nil {
		return err
	}
	marked := make(map[uuid.UUID]bool, len(favorites))
	for _, f := range favorites {
		marked[f.PromptId] = true
	}
	for _, it := range items {
		it.IsFavorite = marked[it.Id]
	}
	return nil
}

func (s *galleryService) Facets(ctx context.Context) (*dto.FacetsResponse, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	var res dto.FacetsResponse
	if s.galleryCache.Get(ctx, &res, "facets") {
		return &res, nil
	}
	macros, tags, err := s.uowFactory.NewUnitOfWork(ctx).PromptRepository().Facets(ctx)
	if err != nil {
		return nil, err
	}
	res = dto.FacetsResponse{Macros: macros, Tags: tags}
	s.galleryCache.Set(ctx, res, "facets")
	return &res, nil
}

// findViewable loads a prompt and hides the ones the actor may not see
// behind ErrNotFound.
func (s *galleryService) findViewable(ctx context.Context, uow unitofwork.UnitOfWork, actor Actor, specs ...specification.Specification) (*entity.Prompt, error) {
	p, err := uow.PromptRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if p == nil || !canView(p, actor) {
		return nil, apperror.ErrNotFound
	}
	return p, nil
}

func (s *galleryService) Detail(ctx context.Context, actor Actor, tr i18n.Translator, promptSlug string) (*dto.PromptDetail, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	p, err := s.findViewable(ctx, uow, actor, specification.BySlug{Slug: promptSlug})
	if err != nil {
		return nil, err
	}

	if p.IsListed() && s.viewPublisher != nil {
		if err := s.viewPublisher.PublishPromptViewed(ctx, p.Id); err != nil {
			s.logger.Warn("Gallery", "Failed to record view", map[string]interface{}{"prompt_id": p.Id.String(), "error": err.Error()})
		}
	}

	st, _ := state.Decode(p.BuilderState, tr)
	detail := &dto.PromptDetail{
		PromptSummary: *summary(p),
		Language:      p.Language,
		HiddenReason:  p.HiddenReason,
		OutputPrompt:  p.OutputPrompt,
		BuilderState:  st,
		IsOwner:       actor.SignedIn() && p.OwnerId == actor.UserID,
	}
	if actor.SignedIn() {
		n, err := uow.FavoriteRepository().Count(ctx,
			specification.ByUserID{UserID: actor.UserID},
			specification.ByPromptID{PromptID: p.Id},
		)
		if err != nil {
			return nil, err
		}
		detail.IsFavorite = n > 0
	}
	return detail, nil
}

func (s *galleryService) SetFavorite(ctx context.Context, actor Actor, promptId uuid.UUID, favorite bool) (*dto.FavoriteResponse, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	if !actor.SignedIn() {
		return nil, apperror.ErrUnauthorized
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	p, err := s.findViewable(ctx, uow, actor, specification.ByID{ID: promptId})
	if err != nil {
		return nil, err
	}

	var changed bool
	var delta int64
	if favorite {
		changed, err = uow.FavoriteRepository().Create(ctx, &entity.Favorite{UserId: actor.UserID, PromptId: p.Id})
		delta = 1
	} else {
		changed, err = uow.FavoriteRepository().Delete(ctx, actor.UserID, p.Id)
		delta = -1
	}
	if err != nil {
		return nil, err
	}

	count := p.FavoritesCount
	if changed {
		if err := uow.PromptRepository().AdjustFavorites(ctx, p.Id, delta); err != nil {
			return nil, err
		}
		count += delta
		if count < 0 {
			count = 0
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if changed {
		if p.IsListed() {
			s.galleryCache.Invalidate(ctx)
		}
		if favorite {
			publish(ctx, s.publisher, s.logger, events.New(events.PromptFavorited, promptPayload(p, actor.UserID)))
		}
	}
	return &dto.FavoriteResponse{PromptId: p.Id, IsFavorite: favorite, FavoritesCount: count}, nil
}

// Favorites lists the caller's favorites, newest first. Prompts that were
// hidden or deleted since are left out.
func (s *galleryService) Favorites(ctx context.Context, actor Actor) ([]*dto.PromptSummary, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	if !actor.SignedIn() {
		return nil, apperror.ErrUnauthorized
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	favorites, err := uow.FavoriteRepository().FindAll(ctx,
		specification.ByUserID{UserID: actor.UserID},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if len(favorites) == 0 {
		return []*dto.PromptSummary{}, nil
	}

	ids := make([]uuid.UUID, len(favorites))
	for i, f := range favorites {
		ids[i] = f.PromptId
	}
	prompts, err := uow.PromptRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*entity.Prompt, len(prompts))
	for _, p := range prompts {
		byID[p.Id] = p
	}

	out := make([]*dto.PromptSummary, 0, len(favorites))
	for _, f := range favorites {
		p, ok := byID[f.PromptId]
		if !ok || !canView(p, actor) {
			continue
		}
		item := summary(p)
		item.IsFavorite = true
		out = append(out, item)
	}
	return out, nil
}

func reportResponse(r *entity.Report) *dto.ReportResponse {
	return &dto.ReportResponse{
		Id:         r.Id,
		TargetId:   r.TargetId,
		ReporterId: r.ReporterId,
		Reason:     r.Reason,
		Details:    r.Details,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
		ResolvedAt: r.ResolvedAt,
	}
}

func (s *galleryService) promptURL(p *entity.Prompt) string {
	return s.clientURL + "/p/" + p.Slug
}

// Report files a report against a prompt. Anonymous reports are accepted.
func (s *galleryService) Report(ctx context.Context, actor Actor, promptId uuid.UUID, req *dto.ReportRequest) (*dto.ReportResponse, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	p, err := s.findViewable(ctx, uow, actor, specification.ByID{ID: promptId})
	if err != nil {
		return nil, err
	}

	report := entity.Report{
		TargetType: entity.ReportTargetPrompt,
		TargetId:   p.Id,
		Reason:     reason,
		Details:    strings.TrimSpace(req.Details),
		Status:     entity.ReportOpen,
	}
	if actor.SignedIn() {
		reporter := actor.UserID
		report.ReporterId = &reporter
	}
	if err := uow.ReportRepository().Create(ctx, &report); err != nil {
		return nil, err
	}

	s.logger.Info("Gallery", "Prompt reported", map[string]interface{}{"prompt_id": p.Id.String(), "report_id": report.Id.String()})

	payload := promptPayload(p, actor.UserID)
	payload["report_id"] = report.Id.String()
	payload["reason"] = reason
	publish(ctx, s.publisher, s.logger, events.New(events.PromptReported, payload))

	if s.emailService != nil && s.moderatorEmail != "" {
		notice := mailer.ReportNotice{
			PromptTitle: p.Title,
			PromptURL:   s.promptURL(p),
			Reason:      reason,
			Details:     report.Details,
		}
		go func() {
			if err := s.emailService.SendReportNotice(s.moderatorEmail, notice); err != nil {
				s.logger.Warn("Gallery", "Moderator email failed", map[string]interface{}{"report_id": report.Id.String(), "error": err.Error()})
			}
		}()
	}

	return reportResponse(&report), nil
}

// forkState rebuilds a usable state from the record when the stored
// builder_state cannot be read.
func forkState(p *entity.Prompt, tr i18n.Translator) state.BuilderState {
	if st, ok := state.Decode(p.BuilderState, tr); ok {
		return st
	}
	st := state.New(tr)
	st.Title = strings.TrimSpace(p.Title + " " + tr.T("gallery.fork"))
	if segment.IsKnownStructure(p.Structure) {
		st.Structure = p.Structure
		st.SegmentOrder = state.NormalizeSegmentOrder(segment.Segments(p.Structure), st.Columns)
	}
	st.Macro = st.Structure
	st.Tags = append([]string{}, p.Tags...)
	st.OnboardingCompleted = true
	st.PreferredMode = state.ModePro
	return state.Normalize(st, tr)
}

func (s *galleryService) Fork(ctx context.Context, actor Actor, tr i18n.Translator, promptId uuid.UUID) (*dto.ForkResponse, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	src, err := s.findViewable(ctx, uow, actor, specification.ByID{ID: promptId})
	if err != nil {
		return nil, err
	}
	st := forkState(src, tr)

	if !actor.SignedIn() {
		if !actor.hasIdentity() {
			return nil, ErrClientIDRequired
		}
		now := s.now().UTC()
		s.localDrafts.Save(actor.localKey(), state.Draft{State: st, UpdatedAt: now})
		return &dto.ForkResponse{Draft: &dto.DraftResponse{
			State:      st,
			UpdatedAt:  &now,
			SavedLabel: state.FormatRelative(now, s.now()),
			Stored:     StoredLocal,
		}}, nil
	}

	raw, err := json.Marshal(st)
	if err != nil {
		return nil, err
	}
	fork := entity.Prompt{
		OwnerId:      actor.UserID,
		Title:        strings.TrimSpace(src.Title + " " + tr.T("gallery.fork")),
		Language:     entity.LanguageAuto,
		Visibility:   entity.VisibilityPrivate,
		Status:       entity.StatusActive,
		Structure:    src.Structure,
		Macro:        src.Macro,
		Tags:         append([]string{}, src.Tags...),
		BuilderState: raw,
		OutputPrompt: src.OutputPrompt,
	}
	repo := uow.PromptRepository()
	for attempt := 1; ; attempt++ {
		fork.Id = uuid.Nil
		fork.Slug = slug.WithSuffix(src.Slug + "-fork")
		err = repo.Create(ctx, &fork)
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt == slugAttempts {
			return nil, err
		}
	}

	s.logger.Info("Gallery", "Prompt forked", map[string]interface{}{"source_id": src.Id.String(), "fork_id": fork.Id.String()})
	payload := promptPayload(src, actor.UserID)
	payload["fork_id"] = fork.Id.String()
	publish(ctx, s.publisher, s.logger, events.New(events.PromptForked, payload))

	return &dto.ForkResponse{Prompt: summary(&fork)}, nil
}

func (s *galleryService) Mine(ctx context.Context, actor Actor) ([]*dto.PromptSummary, error) {
	if s.uowFactory == nil {
		return nil, apperror.ErrFeatureDisabled
	}
	if !actor.SignedIn() {
		return nil, apperror.ErrUnauthorized
	}
	prompts, err := s.uowFactory.NewUnitOfWork(ctx).PromptRepository().FindAll(ctx,
		specification.OwnedBy{OwnerID: actor.UserID},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return summaries(prompts), nil
}

// owned loads a prompt for a write by its owner. Admins may write any prompt.
func (s *galleryService) owned(ctx context.Context, uow unitofwork.UnitOfWork, actor Actor, promptId uuid.UUID) (*entity.Prompt, error) {
	if !actor.SignedIn() {
		return nil, apperror.ErrUnauthorized
	}
	p, err := uow.PromptRepository().FindOne(ctx, specification.ByID{ID: promptId})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.ErrNotFound
	}
	if p.OwnerId != actor.UserID && !actor.IsAdmin {
		return nil, apperror.ErrForbidden
	}
	return p, nil
}

func (s *galleryService) UpdateVisibility(ctx context.Context, actor Actor, promptId uuid.UUID, req *dto.UpdateVisibilityRequest) (*dto.PromptSummary, error) {
	if s.uowFactory == nil {
		return nil, apperror.ErrFeatureDisabled
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	p, err := s.owned(ctx, uow, actor, promptId)
	if err != nil {
		return nil, err
	}
	if p.Visibility == req.Visibility {
		return summary(p), nil
	}
	wasListed := p.IsListed()
	p.Visibility = req.Visibility
	if err := uow.PromptRepository().Update(ctx, p); err != nil {
		return nil, err
	}
	if wasListed || p.IsListed() {
		s.galleryCache.Invalidate(ctx)
	}
	return summary(p), nil
}

func (s *galleryService) Delete(ctx context.Context, actor Actor, promptId uuid.UUID) error {
	if s.uowFactory == nil {
		return apperror.ErrFeatureDisabled
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	p, err := s.owned(ctx, uow, actor, promptId)
	if err != nil {
		return err
	}
	if err := uow.PromptRepository().Delete(ctx, p.Id); err != nil {
		return err
	}
	s.logger.Info("Gallery", "Prompt deleted", map[string]interface{}{"prompt_id": p.Id.String()})
	if p.IsListed() {
		s.galleryCache.Invalidate(ctx)
	}
	return nil
}

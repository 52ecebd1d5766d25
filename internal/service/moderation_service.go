package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"promptito-be/internal/dto"
	"promptito-be/internal/entity"
	"promptito-be/internal/pkg/apperror"
	"promptito-be/internal/pkg/logger"
	"promptito-be/internal/pkg/mailer"
	"promptito-be/internal/repository/cache"
	"promptito-be/internal/repository/scope"
	"promptito-be/internal/repository/specification"
	"promptito-be/internal/repository/unitofwork"
	"promptito-be/pkg/events"
	"promptito-be/pkg/i18n"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultReportsLimit = 50

// LogReader is the read side of the log file, served by *logger.ZapLogger.
type LogReader interface {
	GetLogs(level string, limit, offset int) ([]logger.LogEntry, error)
	GetLogById(id string) (*logger.LogEntry, error)
}

type IModerationService interface {
	ListReports(ctx context.Context, q *dto.ReportsQuery) ([]*dto.ReportListItem, error)
	Hide(ctx context.Context, actor Actor, tr i18n.Translator, reportId uuid.UUID, req *dto.ModerationActionRequest) (*dto.ModerationActionResponse, error)
	Restore(ctx context.Context, actor Actor, reportId uuid.UUID) (*dto.ModerationActionResponse, error)
	Logs(q *dto.LogsQuery) ([]logger.LogEntry, error)
	Log(id string) (*logger.LogEntry, error)
}

type moderationService struct {
	uowFactory   unitofwork.RepositoryFactory
	galleryCache *cache.GalleryCache
	publisher    EventPublisher
	emailService mailer.IEmailService
	logs         LogReader
	enabled      bool
	logger       logger.ILogger
	now          func() time.Time
}

func NewModerationService(
	uowFactory unitofwork.RepositoryFactory,
	galleryCache *cache.GalleryCache,
	publisher EventPublisher,
	emailService mailer.IEmailService,
	logs LogReader,
	enabled bool,
	log logger.ILogger,
) IModerationService {
	return &moderationService{
		uowFactory:   uowFactory,
		galleryCache: galleryCache,
		publisher:    publisher,
		emailService: emailService,
		logs:         logs,
		enabled:      enabled,
		logger:       log,
		now:          time.Now,
	}
}

func (s *moderationService) available() error {
	if !s.enabled || s.uowFactory == nil {
		return apperror.ErrFeatureDisabled
	}
	return nil
}

func (s *moderationService) ListReports(ctx context.Context, q *dto.ReportsQuery) ([]*dto.ReportListItem, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultReportsLimit
	}

	specs := []specification.Specification{}
	switch q.Status {
	case "", entity.ReportOpen:
		specs = append(specs, specification.ScopeFunc(scope.OpenReports))
	case entity.ReportResolved:
		specs = append(specs, specification.Filter("status", entity.ReportResolved))
	}
	specs = append(specs,
		specification.ScopeFunc(scope.OrderByCreatedDesc),
		specification.Pagination{Limit: limit, Offset: q.Offset},
	)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	reports, err := uow.ReportRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(reports))
	for _, r := range reports {
		ids = append(ids, r.TargetId)
	}
	byID := make(map[uuid.UUID]*entity.Prompt)
	if len(ids) > 0 {
		prompts, err := uow.PromptRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
		if err != nil {
			return nil, err
		}
		for _, p := range prompts {
			byID[p.Id] = p
		}
	}

	out := make([]*dto.ReportListItem, len(reports))
	for i, r := range reports {
		item := &dto.ReportListItem{ReportResponse: *reportResponse(r)}
		if p, ok := byID[r.TargetId]; ok {
			item.Prompt = summary(p)
		}
		out[i] = item
	}
	return out, nil
}

// moderate applies status to the reported prompt and resolves the report in
// one transaction.
func (s *moderationService) moderate(ctx context.Context, reportId uuid.UUID, status string, hiddenReason *string) (*entity.Report, *entity.Prompt, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	defer uow.Rollback()

	report, err := uow.ReportRepository().FindOne(ctx, specification.ByID{ID: reportId})
	if err != nil {
		return nil, nil, err
	}
	if report == nil {
		return nil, nil, apperror.ErrNotFound
	}
	prompt, err := uow.PromptRepository().FindOne(ctx, specification.ByID{ID: report.TargetId})
	if err != nil {
		return nil, nil, err
	}
	if prompt == nil {
		return nil, nil, apperror.ErrNotFound
	}

	if err := uow.PromptRepository().SetStatus(ctx, prompt.Id, status, hiddenReason); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperror.ErrNotFound
		}
		return nil, nil, err
	}
	wasListed := prompt.IsListed()
	prompt.Status = status
	prompt.HiddenReason = hiddenReason

	resolvedAt := s.now().UTC()
	report.Status = entity.ReportResolved
	report.ResolvedAt = &resolvedAt
	if err := uow.ReportRepository().Update(ctx, report); err != nil {
		return nil, nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, nil, err
	}

	if wasListed || prompt.IsListed() {
		s.galleryCache.Invalidate(ctx)
	}
	return report, prompt, nil
}

func (s *moderationService) Hide(ctx context.Context, actor Actor, tr i18n.Translator, reportId uuid.UUID, req *dto.ModerationActionRequest) (*dto.ModerationActionResponse, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = tr.T("gallery.hiddenByAdmin")
	}

	report, prompt, err := s.moderate(ctx, reportId, entity.StatusHidden, &reason)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Moderation", "Prompt hidden", map[string]interface{}{
		"prompt_id": prompt.Id.String(),
		"report_id": report.Id.String(),
		"admin_id":  actor.UserID.String(),
	})

	payload := promptPayload(prompt, actor.UserID)
	payload["reason"] = reason
	publish(ctx, s.publisher, s.logger, events.New(events.PromptHidden, payload))
	s.notifyOwner(ctx, prompt, reason)

	return &dto.ModerationActionResponse{ReportId: report.Id, PromptId: prompt.Id, Status: prompt.Status}, nil
}

func (s *moderationService) Restore(ctx context.Context, actor Actor, reportId uuid.UUID) (*dto.ModerationActionResponse, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	report, prompt, err := s.moderate(ctx, reportId, entity.StatusActive, nil)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Moderation", "Prompt restored", map[string]interface{}{
		"prompt_id": prompt.Id.String(),
		"report_id": report.Id.String(),
		"admin_id":  actor.UserID.String(),
	})
	publish(ctx, s.publisher, s.logger, events.New(events.PromptRestored, promptPayload(prompt, actor.UserID)))
	return &dto.ModerationActionResponse{ReportId: report.Id, PromptId: prompt.Id, Status: prompt.Status}, nil
}

// notifyOwner emails the owner a hidden notice when their profile has an
// address on file.
func (s *moderationService) notifyOwner(ctx context.Context, prompt *entity.Prompt, reason string) {
	if s.emailService == nil {
		return
	}
	profile, err := s.uowFactory.NewUnitOfWork(ctx).UserProfileRepository().FindOne(ctx, specification.ByID{ID: prompt.OwnerId})
	if err != nil || profile == nil || profile.Email == "" {
		return
	}
	title := prompt.Title
	go func() {
		if err := s.emailService.SendHiddenNotice(profile.Email, title, reason); err != nil {
			s.logger.Warn("Moderation", "Hidden notice email failed", map[string]interface{}{"prompt_id": prompt.Id.String(), "error": err.Error()})
		}
	}()
}

func (s *moderationService) Logs(q *dto.LogsQuery) ([]logger.LogEntry, error) {
	if s.logs == nil {
		return []logger.LogEntry{}, nil
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	return s.logs.GetLogs(q.Level, limit, q.Offset)
}

func (s *moderationService) Log(id string) (*logger.LogEntry, error) {
	if s.logs == nil {
		return nil, apperror.ErrNotFound
	}
	entry, err := s.logs.GetLogById(id)
	if errors.Is(err, logger.ErrLogNotFound) {
		return nil, apperror.ErrNotFound
	}
	return entry, err
}

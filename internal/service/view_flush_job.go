package service

import (
	"context"

	"promptito-be/internal/pkg/logger"
	"promptito-be/internal/repository/cache"
	"promptito-be/internal/repository/unitofwork"

	"github.com/robfig/cron/v3"
)

// ViewFlushJob periodically writes buffered view counts to the prompts table.
type ViewFlushJob struct {
	cron       *cron.Cron
	schedule   string
	counter    *cache.ViewCounter
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewViewFlushJob(schedule string, counter *cache.ViewCounter, uowFactory unitofwork.RepositoryFactory, log logger.ILogger) *ViewFlushJob {
	return &ViewFlushJob{
		cron:       cron.New(),
		schedule:   schedule,
		counter:    counter,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (j *ViewFlushJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		if _, err := j.Flush(context.Background()); err != nil {
			j.logger.Error("ViewFlushJob", "Flush failed", map[string]interface{}{"error": err.Error()})
		}
	}); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("ViewFlushJob", "View flush scheduled", map[string]interface{}{"schedule": j.schedule})
	return nil
}

// Stop waits for a running flush, then writes whatever is left.
func (j *ViewFlushJob) Stop() {
	<-j.cron.Stop().Done()
	if _, err := j.Flush(context.Background()); err != nil {
		j.logger.Error("ViewFlushJob", "Final flush failed", map[string]interface{}{"error": err.Error()})
	}
}

// Flush drains the counter into one transaction and returns the number of
// prompts updated. Counts go back to the buffer when the write fails.
func (j *ViewFlushJob) Flush(ctx context.Context) (int, error) {
	counts, err := j.counter.Drain(ctx)
	if err != nil || len(counts) == 0 {
		return 0, err
	}

	uow := j.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		j.counter.Restore(ctx, counts)
		return 0, err
	}
	defer uow.Rollback()

	repo := uow.PromptRepository()
	for id, n := range counts {
		if err := repo.IncrementViews(ctx, id, n); err != nil {
			j.counter.Restore(ctx, counts)
			return 0, err
		}
	}
	if err := uow.Commit(); err != nil {
		j.counter.Restore(ctx, counts)
		return 0, err
	}
	return len(counts), nil
}

// Package digest periodically tells registered workers about newly posted
// jobs that match their preferences.
package digest

import (
	"context"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/agromatch/agromatch/internal/farm"
	"github.com/agromatch/agromatch/internal/matching"
	"github.com/agromatch/agromatch/internal/notify"
	"github.com/agromatch/agromatch/internal/store"
	"github.com/agromatch/agromatch/internal/texts"
)

// Service runs the digest on a cron schedule. Each run looks at jobs
// created since the previous run, matches them per worker and sends one
// notification per worker with the count.
type Service struct {
	store    store.Store
	notifier notify.Notifier
	engine   *matching.Engine
	texts    texts.Renderer
	logger   *zap.Logger

	cron    *cron.Cron
	lastRun time.Time
	now     func() time.Time
}

func New(st store.Store, notifier notify.Notifier, engine *matching.Engine, renderer texts.Renderer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if renderer == nil {
		renderer = texts.NewCatalog()
	}
	return &Service{
		store:    st,
		notifier: notifier,
		engine:   engine,
		texts:    renderer,
		logger:   logger,
		now:      time.Now,
	}
}

// Start schedules the digest with a cron spec (e.g. "@every 1h") and
// begins running it. Jobs posted before the first tick are not announced.
func (s *Service) Start(ctx context.Context, spec string) error {
	s.lastRun = s.now()

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := s.Run(ctx); err != nil {
			s.logger.Error("digest run failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	s.cron = c
	s.logger.Info("digest scheduled", zap.String("spec", spec))
	return nil
}

// Stop halts the schedule and waits for an in-flight run to finish.
func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Run executes one digest pass.
func (s *Service) Run(ctx context.Context) error {
	since := s.lastRun
	s.lastRun = s.now()

	open, err := s.store.ListOpenJobs(ctx)
	if err != nil {
		return err
	}

	var fresh []*farm.Job
	for _, job := range open {
		if job.CreatedAt.After(since) {
			fresh = append(fresh, job)
		}
	}
	if len(fresh) == 0 {
		s.logger.Debug("digest: no new jobs", zap.Time("since", since))
		return nil
	}

	workers, err := s.store.ListUsersByRole(ctx, farm.RoleWorker)
	if err != nil {
		return err
	}

	notified := 0
	for _, worker := range workers {
		if !worker.Registered {
			continue
		}
		matched := s.engine.Match(ctx, fresh, worker.Profile)
		if len(matched) == 0 {
			continue
		}

		lang := worker.Profile.Language
		if lang == "" {
			lang = "en"
		}
		body := s.texts.Render("digest_new_jobs", lang, texts.Params{
			"count": strconv.Itoa(len(matched)),
		})
		if err := s.notifier.Send(ctx, worker.ID, body); err != nil {
			s.logger.Warn("digest notification failed",
				zap.String("worker", worker.ID),
				zap.Error(err),
			)
			continue
		}
		notified++
	}

	s.logger.Info("digest run complete",
		zap.Int("new_jobs", len(fresh)),
		zap.Int("workers_notified", notified),
	)
	return nil
}

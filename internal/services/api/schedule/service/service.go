// Package service runs the daily crawl over a fixed product list
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"reviewharvest/internal/core/review"
	perr "reviewharvest/internal/platform/errors"
	"reviewharvest/internal/platform/logger"
	"reviewharvest/internal/platform/metrics"
	crawls "reviewharvest/internal/services/api/crawls/domain"
	"reviewharvest/internal/services/api/schedule/domain"

	"github.com/robfig/cron/v3"
)

// Config holds the schedule and the per product job bounds
type Config struct {
	Spec      string   // five field cron spec in the provider's zone
	Products  []string // product ids crawled on every run
	MaxPages  int
	DaysLimit int
}

// DefaultConfig crawls the last day of one product at 03:00
func DefaultConfig() Config {
	return Config{
		Spec:      "0 3 * * *",
		Products:  []string{"10032280299715"},
		MaxPages:  10,
		DaysLimit: 1,
	}
}

// Service implements domain.ServicePort and owns the cron runner
type Service struct {
	crawls crawls.ServicePort
	cfg    Config
	met    *metrics.Metrics
	cron   *cron.Cron
	now    func() time.Time

	runMu sync.Mutex // one run at a time, cron or manual
}

var _ domain.ServicePort = (*Service)(nil)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// New validates the spec and registers the job; call Start to begin ticking
func New(cs crawls.ServicePort, cfg Config, m *metrics.Metrics) (*Service, error) {
	if cs == nil {
		return nil, perr.Internalf("schedule requires a crawl service")
	}
	if _, err := parser.Parse(cfg.Spec); err != nil {
		return nil, perr.WithField(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "bad cron spec %q", cfg.Spec), "spec")
	}
	if cfg.MaxPages < 1 {
		cfg.MaxPages = 1
	}
	if cfg.DaysLimit < 0 {
		cfg.DaysLimit = 0
	}

	cl := cronLogger{l: logger.Named("schedule")}
	s := &Service{
		crawls: cs,
		cfg:    cfg,
		met:    m,
		now:    time.Now,
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLocation(review.Zone),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
	if _, err := s.cron.AddFunc(cfg.Spec, func() { s.RunNow(context.Background()) }); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "schedule add job")
	}
	return s, nil
}

// Start begins ticking in the background
func (s *Service) Start() {
	s.cron.Start()
	logger.Named("schedule").Info().
		Str("spec", s.cfg.Spec).
		Strs("products", s.cfg.Products).
		Time("next", s.Next()).
		Msg("schedule: started")
}

// Stop halts the ticker and waits for an in-flight run, or for ctx
func (s *Service) Stop(ctx context.Context) error {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next is the next scheduled run, zero before Start
func (s *Service) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// RunNow starts a task for every configured product that has not run today
func (s *Service) RunNow(ctx context.Context) domain.RunReport {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	now := s.now().In(review.Zone)
	rep := domain.RunReport{
		ExecutedAt:        now,
		ProductsProcessed: len(s.cfg.Products),
		Results:           make([]domain.ProductResult, 0, len(s.cfg.Products)),
	}
	for _, pid := range s.cfg.Products {
		res := s.runOne(ctx, pid, now)
		rep.Results = append(rep.Results, res)
		if s.met != nil {
			s.met.ScheduleRuns.WithLabelValues(string(res.Status)).Inc()
		}
	}
	logger.C(ctx).Info().Int("products", rep.ProductsProcessed).Msg("schedule: run finished")
	return rep
}

func (s *Service) runOne(ctx context.Context, pid string, now time.Time) domain.ProductResult {
	if t, ok := s.crawls.StartedOn(ctx, pid, now); ok {
		return domain.ProductResult{
			ProductID: pid,
			Status:    domain.OutcomeSkipped,
			TaskID:    t.ID,
			Message:   "already crawled today",
		}
	}
	days := s.cfg.DaysLimit
	t, err := s.crawls.Start(ctx, crawls.StartInput{
		ProductID: pid,
		MaxPages:  s.cfg.MaxPages,
		DaysLimit: &days,
	}, crawls.TriggerSchedule)
	if err != nil {
		logger.C(ctx).Error().Err(err).Str("product_id", pid).Msg("schedule: start failed")
		return domain.ProductResult{ProductID: pid, Status: domain.OutcomeFailed, Message: err.Error()}
	}
	return domain.ProductResult{ProductID: pid, Status: domain.OutcomeStarted, TaskID: t.ID, Message: "crawl started"}
}

// History returns per day task counts for the last days days
func (s *Service) History(ctx context.Context, days int) (domain.HistoryResp, error) {
	h, err := s.crawls.History(ctx, days)
	if err != nil {
		return domain.HistoryResp{}, err
	}
	return domain.HistoryResp{Days: days, History: h}, nil
}

// cronLogger routes cron's logr style calls into zerolog
type cronLogger struct{ l *logger.Logger }

func (c cronLogger) Info(msg string, kv ...any) {
	c.l.Debug().Fields(pairs(kv)).Msg("cron: " + msg)
}

func (c cronLogger) Error(err error, msg string, kv ...any) {
	c.l.Error().Err(err).Fields(pairs(kv)).Msg("cron: " + msg)
}

func pairs(kv []any) map[string]any {
	out := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return out
}

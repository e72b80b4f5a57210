// Package service runs crawl tasks in the background and keeps their state in memory
package service

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"reviewharvest/internal/core/review"
	perr "reviewharvest/internal/platform/errors"
	"reviewharvest/internal/platform/logger"
	"reviewharvest/internal/platform/metrics"
	ptime "reviewharvest/internal/platform/time"
	"reviewharvest/internal/services/api/crawls/domain"
	harvest "reviewharvest/internal/services/harvest/domain"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Config tunes the registry and admission
type Config struct {
	MaxTasks   int           // tasks kept in memory; <=0 -> 500
	StartRate  float64       // task starts per second; <=0 -> unlimited
	StartBurst int           // <=0 -> 1
	JobTimeout time.Duration // 0 = none
	ListLimit  int           // <=0 -> 20
	MaxDays    int           // history window cap; <=0 -> 90
}

func (c Config) withDefaults() Config {
	if c.MaxTasks <= 0 {
		c.MaxTasks = 500
	}
	if c.StartBurst <= 0 {
		c.StartBurst = 1
	}
	if c.ListLimit <= 0 {
		c.ListLimit = 20
	}
	if c.MaxDays <= 0 {
		c.MaxDays = 90
	}
	return c
}

// Service implements domain.ServicePort
type Service struct {
	run harvest.RunnerPort
	cfg Config
	lim *rate.Limiter
	met *metrics.Metrics

	now   func() time.Time
	newID func() string

	base   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.RWMutex
	tasks map[string]*domain.Task
	order []string // oldest first
}

var _ domain.ServicePort = (*Service)(nil)

// New constructs the crawl service; m may be nil
func New(run harvest.RunnerPort, cfg Config, m *metrics.Metrics) *Service {
	if run == nil {
		panic("crawls.Service requires a non nil runner")
	}
	cfg = cfg.withDefaults()
	lim := rate.NewLimiter(rate.Inf, cfg.StartBurst)
	if cfg.StartRate > 0 {
		lim = rate.NewLimiter(rate.Limit(cfg.StartRate), cfg.StartBurst)
	}
	base, cancel := context.WithCancel(context.Background())
	return &Service{
		run:    run,
		cfg:    cfg,
		lim:    lim,
		met:    m,
		now:    time.Now,
		newID:  uuid.NewString,
		base:   base,
		cancel: cancel,
		tasks:  make(map[string]*domain.Task),
	}
}

// Start registers a task and runs it in the background
// Conflict when the product already has a running task, TooManyRequests when admission is exhausted
func (s *Service) Start(ctx context.Context, in domain.StartInput, trig domain.Trigger) (domain.Task, error) {
	req := harvest.Request{
		ProductID: in.ProductID,
		MaxPages:  in.MaxPages,
		DaysLimit: harvest.DefaultDaysLimit,
	}
	if req.MaxPages == 0 {
		req.MaxPages = harvest.DefaultMaxPages
	}
	if in.DaysLimit != nil {
		req.DaysLimit = *in.DaysLimit
	}
	if err := req.Validate(); err != nil {
		return domain.Task{}, err
	}

	s.mu.Lock()
	for _, t := range s.tasks {
		if t.ProductID == in.ProductID && t.Status == domain.StatusRunning {
			s.mu.Unlock()
			return domain.Task{}, perr.Conflictf("product %s already has running task %s", in.ProductID, t.ID)
		}
	}
	if !s.lim.Allow() {
		s.mu.Unlock()
		return domain.Task{}, perr.TooManyf("crawl start rate exceeded, retry later")
	}

	url := in.ProductURL
	if url == "" {
		url = "https://item.jd.com/" + in.ProductID + ".html"
	}
	t := &domain.Task{
		ID:         s.newID(),
		ProductID:  in.ProductID,
		ProductURL: url,
		MaxPages:   req.MaxPages,
		DaysLimit:  req.DaysLimit,
		Trigger:    trig,
		Status:     domain.StatusRunning,
		StartedAt:  s.now(),
	}
	s.put(t)
	snap := *t
	s.mu.Unlock()

	req.TaskID = t.ID
	if s.met != nil {
		s.met.TasksStarted.WithLabelValues(string(trig)).Inc()
		s.met.TasksRunning.Inc()
	}
	logger.C(ctx).Info().
		Str("task_id", t.ID).
		Str("product_id", t.ProductID).
		Str("trigger", string(trig)).
		Msg("crawls: task started")

	s.wg.Add(1)
	go s.exec(req)
	return snap, nil
}

// put stores t and evicts the oldest finished tasks past MaxTasks; caller holds mu
func (s *Service) put(t *domain.Task) {
	s.tasks[t.ID] = t
	s.order = append(s.order, t.ID)
	for i := 0; len(s.tasks) > s.cfg.MaxTasks && i < len(s.order); {
		id := s.order[i]
		if s.tasks[id].Status == domain.StatusRunning {
			i++
			continue
		}
		delete(s.tasks, id)
		s.order = slices.Delete(s.order, i, i+1)
	}
}

func (s *Service) exec(req harvest.Request) {
	defer s.wg.Done()
	ctx := logger.WithTask(s.base, req.TaskID)
	if s.cfg.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.JobTimeout)
		defer cancel()
	}

	res := s.run.Run(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.met != nil {
		s.met.TasksRunning.Dec()
	}
	t, ok := s.tasks[req.TaskID]
	if !ok {
		return
	}
	end := s.now()
	t.FinishedAt = &end
	t.Result = &res
	t.TotalComments = res.TotalComments
	t.ProcessedComments = res.ProcessedComments
	if res.Success {
		t.Status = domain.StatusCompleted
		return
	}
	t.Status = domain.StatusFailed
	t.Error = res.Error
}

// Get returns a task snapshot
func (s *Service) Get(_ context.Context, id string) (domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, perr.NotFoundf("task %s not found", id)
	}
	return *t, nil
}

// List returns tasks newest first, optionally for one product, without result documents
func (s *Service) List(_ context.Context, productID string, limit int) ([]domain.Task, error) {
	if limit <= 0 || limit > s.cfg.ListLimit {
		limit = s.cfg.ListLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Task, 0, min(limit, len(s.order)))
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		t := s.tasks[s.order[i]]
		if productID != "" && t.ProductID != productID {
			continue
		}
		c := *t
		c.Result = nil
		out = append(out, c)
	}
	return out, nil
}

// StartedOn finds a running or completed task for productID started on day's calendar date
func (s *Service) StartedOn(_ context.Context, productID string, day time.Time) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.order) - 1; i >= 0; i-- {
		t := s.tasks[s.order[i]]
		if t.ProductID != productID || t.Status == domain.StatusFailed {
			continue
		}
		if ptime.SameDay(t.StartedAt, day, review.Zone) {
			return *t, true
		}
	}
	return domain.Task{}, false
}

// History aggregates the last days calendar days, newest first; days without tasks are omitted
func (s *Service) History(_ context.Context, days int) ([]domain.DayStats, error) {
	if days < 1 || days > s.cfg.MaxDays {
		return nil, perr.WithField(perr.InvalidArgf("days must be between 1 and %d", s.cfg.MaxDays), "days")
	}
	from := ptime.Day(s.now().In(review.Zone)).AddDate(0, 0, -(days - 1))

	s.mu.RLock()
	byDay := map[string]*domain.DayStats{}
	for _, t := range s.tasks {
		at := t.StartedAt.In(review.Zone)
		if at.Before(from) {
			continue
		}
		key := at.Format(time.DateOnly)
		d, ok := byDay[key]
		if !ok {
			d = &domain.DayStats{Date: key}
			byDay[key] = d
		}
		d.Total++
		switch t.Status {
		case domain.StatusCompleted:
			d.Completed++
			d.TotalComments += t.TotalComments
		case domain.StatusFailed:
			d.Failed++
		default:
			d.Running++
		}
	}
	s.mu.RUnlock()

	out := make([]domain.DayStats, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	slices.SortFunc(out, func(a, b domain.DayStats) int { return strings.Compare(b.Date, a.Date) })
	return out, nil
}

// Wait blocks until every background task has finished
func (s *Service) Wait() { s.wg.Wait() }

// Shutdown cancels running tasks and waits for them, or for ctx
func (s *Service) Shutdown(ctx context.Context) error {
	s.cancel()
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

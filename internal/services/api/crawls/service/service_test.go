package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"reviewharvest/internal/core/review"
	perr "reviewharvest/internal/platform/errors"
	"reviewharvest/internal/platform/metrics"
	"reviewharvest/internal/services/api/crawls/domain"
	harvest "reviewharvest/internal/services/harvest/domain"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// gatedRunner blocks every job until release is closed
type gatedRunner struct {
	release chan struct{}
	mu      sync.Mutex
	reqs    []harvest.Request
	fail    map[string]string
}

func newGated() *gatedRunner { return &gatedRunner{release: make(chan struct{}), fail: map[string]string{}} }

func (g *gatedRunner) Run(ctx context.Context, req harvest.Request) harvest.Result {
	g.mu.Lock()
	g.reqs = append(g.reqs, req)
	msg := g.fail[req.ProductID]
	g.mu.Unlock()
	select {
	case <-g.release:
	case <-ctx.Done():
		return harvest.Result{TaskID: req.TaskID, ProductID: req.ProductID, Error: ctx.Err().Error()}
	}
	if msg != "" {
		return harvest.Result{TaskID: req.TaskID, ProductID: req.ProductID, Error: msg}
	}
	return harvest.Result{Success: true, TaskID: req.TaskID, ProductID: req.ProductID, TotalComments: 7, ProcessedComments: 7}
}

var day = time.Date(2025, 9, 1, 10, 0, 0, 0, review.Zone)

func newTestService(run harvest.RunnerPort, cfg Config) *Service {
	s := New(run, cfg, nil)
	n := 0
	s.newID = func() string { n++; return fmt.Sprintf("t%d", n) }
	s.now = func() time.Time { return day }
	return s
}

func days(n int) *int { return &n }

func TestStart_DefaultsAndCompletion(t *testing.T) {
	run := newGated()
	s := newTestService(run, Config{})

	task, err := s.Start(context.Background(), domain.StartInput{ProductID: "100"}, domain.TriggerAPI)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if task.Status != domain.StatusRunning || task.MaxPages != 10 || task.DaysLimit != 30 {
		t.Fatalf("task %+v", task)
	}
	if task.ProductURL != "https://item.jd.com/100.html" {
		t.Fatalf("url %q", task.ProductURL)
	}

	close(run.release)
	s.Wait()

	got, err := s.Get(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.StatusCompleted || got.TotalComments != 7 || got.FinishedAt == nil || got.Result == nil {
		t.Fatalf("finished task %+v", got)
	}
	if run.reqs[0].TaskID != task.ID {
		t.Fatalf("runner got task id %q", run.reqs[0].TaskID)
	}
}

func TestStart_ExplicitZeroDaysLimit(t *testing.T) {
	run := newGated()
	close(run.release)
	s := newTestService(run, Config{})
	task, err := s.Start(context.Background(), domain.StartInput{ProductID: "1", MaxPages: 2, DaysLimit: days(0)}, domain.TriggerAPI)
	if err != nil {
		t.Fatal(err)
	}
	s.Wait()
	if task.DaysLimit != 0 || run.reqs[0].DaysLimit != 0 || run.reqs[0].MaxPages != 2 {
		t.Fatalf("task %+v req %+v", task, run.reqs[0])
	}
}

func TestStart_ConflictWhileRunning(t *testing.T) {
	run := newGated()
	s := newTestService(run, Config{})
	defer func() { close(run.release); s.Wait() }()

	if _, err := s.Start(context.Background(), domain.StartInput{ProductID: "1"}, domain.TriggerAPI); err != nil {
		t.Fatal(err)
	}
	_, err := s.Start(context.Background(), domain.StartInput{ProductID: "1"}, domain.TriggerAPI)
	if !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("want conflict, got %v", err)
	}
	if _, err := s.Start(context.Background(), domain.StartInput{ProductID: "2"}, domain.TriggerAPI); err != nil {
		t.Fatalf("other product should start: %v", err)
	}
}

func TestStart_RateLimited(t *testing.T) {
	run := newGated()
	close(run.release)
	s := newTestService(run, Config{StartRate: 0.001, StartBurst: 2})

	for i := range 2 {
		if _, err := s.Start(context.Background(), domain.StartInput{ProductID: fmt.Sprint(i)}, domain.TriggerAPI); err != nil {
			t.Fatalf("start %d: %v", i, err)
		}
	}
	_, err := s.Start(context.Background(), domain.StartInput{ProductID: "9"}, domain.TriggerAPI)
	if !perr.IsCode(err, perr.ErrorCodeTooManyRequests) {
		t.Fatalf("want too many requests, got %v", err)
	}
	s.Wait()
}

func TestStart_Invalid(t *testing.T) {
	s := newTestService(newGated(), Config{})
	_, err := s.Start(context.Background(), domain.StartInput{ProductID: "1", DaysLimit: days(-1)}, domain.TriggerAPI)
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid, got %v", err)
	}
}

func TestFailedTaskCarriesError(t *testing.T) {
	run := newGated()
	run.fail["5"] = "jd unexpected status 503"
	close(run.release)
	s := newTestService(run, Config{})
	task, _ := s.Start(context.Background(), domain.StartInput{ProductID: "5"}, domain.TriggerSchedule)
	s.Wait()
	got, _ := s.Get(context.Background(), task.ID)
	if got.Status != domain.StatusFailed || got.Error != "jd unexpected status 503" || got.Trigger != domain.TriggerSchedule {
		t.Fatalf("task %+v", got)
	}
}

type runnerFunc func(context.Context, harvest.Request) harvest.Result

func (f runnerFunc) Run(ctx context.Context, req harvest.Request) harvest.Result { return f(ctx, req) }

func TestFailedTaskKeepsPartialCounts(t *testing.T) {
	run := runnerFunc(func(_ context.Context, req harvest.Request) harvest.Result {
		return harvest.Result{
			TaskID: req.TaskID, ProductID: req.ProductID, Error: "context canceled",
			TotalComments: 3, ProcessedComments: 3, Comments: make([]harvest.Comment, 3),
		}
	})
	s := newTestService(run, Config{})
	task, _ := s.Start(context.Background(), domain.StartInput{ProductID: "6"}, domain.TriggerAPI)
	s.Wait()
	got, _ := s.Get(context.Background(), task.ID)
	if got.Status != domain.StatusFailed || got.TotalComments != 3 || got.ProcessedComments != 3 {
		t.Fatalf("task %+v", got)
	}
	if got.Result == nil || len(got.Result.Comments) != 3 {
		t.Fatalf("partial comments lost: %+v", got.Result)
	}
}

func TestGetUnknown(t *testing.T) {
	s := newTestService(newGated(), Config{})
	if _, err := s.Get(context.Background(), "nope"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestListNewestFirstFilteredAndLimited(t *testing.T) {
	run := newGated()
	close(run.release)
	s := newTestService(run, Config{ListLimit: 3})
	for _, pid := range []string{"1", "2", "1", "1", "1"} {
		if _, err := s.Start(context.Background(), domain.StartInput{ProductID: pid}, domain.TriggerAPI); err != nil {
			t.Fatal(err)
		}
		s.Wait()
	}

	all, _ := s.List(context.Background(), "", 0)
	if len(all) != 3 || all[0].ID != "t5" || all[2].ID != "t3" {
		t.Fatalf("list %+v", all)
	}
	if all[0].Result != nil {
		t.Fatal("list should drop result documents")
	}
	ones, _ := s.List(context.Background(), "2", 10)
	if len(ones) != 1 || ones[0].ID != "t2" {
		t.Fatalf("filtered %+v", ones)
	}
}

func TestEvictionKeepsRunning(t *testing.T) {
	run := newGated()
	s := newTestService(run, Config{MaxTasks: 2})
	_, _ = s.Start(context.Background(), domain.StartInput{ProductID: "1"}, domain.TriggerAPI)
	_, _ = s.Start(context.Background(), domain.StartInput{ProductID: "2"}, domain.TriggerAPI)
	_, _ = s.Start(context.Background(), domain.StartInput{ProductID: "3"}, domain.TriggerAPI)
	if len(s.tasks) != 3 {
		t.Fatalf("running tasks must not be evicted, have %d", len(s.tasks))
	}
	close(run.release)
	s.Wait()
	_, _ = s.Start(context.Background(), domain.StartInput{ProductID: "4"}, domain.TriggerAPI)
	s.Wait()
	if len(s.tasks) != 2 {
		t.Fatalf("want 2 after eviction, have %d", len(s.tasks))
	}
	if _, err := s.Get(context.Background(), "t1"); err == nil {
		t.Fatal("oldest task should be evicted")
	}
}

func TestStartedOn(t *testing.T) {
	run := newGated()
	run.fail["2"] = "boom"
	close(run.release)
	s := newTestService(run, Config{})
	_, _ = s.Start(context.Background(), domain.StartInput{ProductID: "1"}, domain.TriggerSchedule)
	_, _ = s.Start(context.Background(), domain.StartInput{ProductID: "2"}, domain.TriggerSchedule)
	s.Wait()

	if _, ok := s.StartedOn(context.Background(), "1", day.Add(3*time.Hour)); !ok {
		t.Fatal("completed task today should count")
	}
	if _, ok := s.StartedOn(context.Background(), "1", day.AddDate(0, 0, 1)); ok {
		t.Fatal("tomorrow should not match")
	}
	if _, ok := s.StartedOn(context.Background(), "2", day); ok {
		t.Fatal("failed tasks do not block a rerun")
	}
}

func TestHistory(t *testing.T) {
	run := newGated()
	run.fail["3"] = "boom"
	close(run.release)
	s := newTestService(run, Config{})

	at := []time.Time{day.AddDate(0, 0, -10), day.AddDate(0, 0, -1), day, day}
	for i, pid := range []string{"1", "2", "3", "4"} {
		s.now = func() time.Time { return at[i] }
		if _, err := s.Start(context.Background(), domain.StartInput{ProductID: pid}, domain.TriggerAPI); err != nil {
			t.Fatal(err)
		}
		s.Wait()
	}
	s.now = func() time.Time { return day }

	got, err := s.History(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 days, got %+v", got)
	}
	if got[0].Date != "2025-09-01" || got[0].Total != 2 || got[0].Completed != 1 || got[0].Failed != 1 || got[0].TotalComments != 7 {
		t.Fatalf("today %+v", got[0])
	}
	if got[1].Date != "2025-08-31" || got[1].Completed != 1 {
		t.Fatalf("yesterday %+v", got[1])
	}
	if _, err := s.History(context.Background(), 0); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid days, got %v", err)
	}
}

func TestShutdownCancelsRunning(t *testing.T) {
	run := newGated()
	s := newTestService(run, Config{})
	task, _ := s.Start(context.Background(), domain.StartInput{ProductID: "1"}, domain.TriggerAPI)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	got, _ := s.Get(context.Background(), task.ID)
	if got.Status != domain.StatusFailed {
		t.Fatalf("task %+v", got)
	}
}

func TestMetrics(t *testing.T) {
	run := newGated()
	m := metrics.New()
	s := New(run, Config{}, m)
	_, _ = s.Start(context.Background(), domain.StartInput{ProductID: "1"}, domain.TriggerAPI)
	if got := testutil.ToFloat64(m.TasksRunning); got != 1 {
		t.Fatalf("running gauge %v", got)
	}
	close(run.release)
	s.Wait()
	if got := testutil.ToFloat64(m.TasksRunning); got != 0 {
		t.Fatalf("running gauge after %v", got)
	}
	if got := testutil.ToFloat64(m.TasksStarted.WithLabelValues("api")); got != 1 {
		t.Fatalf("started %v", got)
	}
}

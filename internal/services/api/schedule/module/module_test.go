package module_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reviewharvest/internal/modkit"
	"reviewharvest/internal/platform/config"
	phttp "reviewharvest/internal/platform/net/http"
	"reviewharvest/internal/platform/testkit"
	crawls "reviewharvest/internal/services/api/crawls/domain"
	"reviewharvest/internal/services/api/schedule/module"

	"github.com/go-chi/chi/v5"
)

type noCrawls struct{ starts int }

func (n *noCrawls) Start(_ context.Context, in crawls.StartInput, _ crawls.Trigger) (crawls.Task, error) {
	n.starts++
	return crawls.Task{ID: "t", ProductID: in.ProductID}, nil
}
func (n *noCrawls) Get(context.Context, string) (crawls.Task, error) { return crawls.Task{}, nil }
func (n *noCrawls) List(context.Context, string, int) ([]crawls.Task, error) {
	return nil, nil
}
func (n *noCrawls) StartedOn(context.Context, string, time.Time) (crawls.Task, bool) {
	return crawls.Task{}, false
}
func (n *noCrawls) History(context.Context, int) ([]crawls.DayStats, error) { return nil, nil }

func TestRequiresCrawlPorts(t *testing.T) {
	testkit.MustPanic(t, func() { module.New(modkit.Deps{Cfg: config.New()}) })
}

func TestBadSpecPanics(t *testing.T) {
	t.Setenv("SCHED_BAD_CORE_SCHEDULE_SPEC", "not a spec")
	testkit.MustPanic(t, func() {
		module.New(modkit.Deps{Cfg: config.New().Prefix("SCHED_BAD_")},
			modkit.WithPorts(module.CrawlPorts{Crawls: &noCrawls{}}))
	})
}

func TestRunWithConfiguredToken(t *testing.T) {
	t.Setenv("SCHED_MOD_CORE_SCHEDULE_TOKEN", "tok")
	t.Setenv("SCHED_MOD_CORE_SCHEDULE_PRODUCTS", "1,2")
	t.Setenv("SCHED_MOD_CORE_SCHEDULE_ENABLED", "false")

	cs := &noCrawls{}
	m := module.New(modkit.Deps{Cfg: config.New().Prefix("SCHED_MOD_")},
		modkit.WithPorts(module.CrawlPorts{Crawls: cs}))
	if m.Name() != "schedule" || m.Ports() != nil {
		t.Fatalf("name %q ports %v", m.Name(), m.Ports())
	}

	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/schedule/run", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/schedule/run", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("with token: %d %s", rec.Code, rec.Body)
	}
	testkit.MustContain(t, rec.Body.String(), `"products_processed":2`)
	if cs.starts != 2 {
		t.Fatalf("starts %d", cs.starts)
	}

	sm := m.(*module.Module)
	sm.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := sm.Stop(ctx); err != nil {
		t.Fatal(err)
	}
}

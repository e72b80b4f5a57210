package module_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reviewharvest/internal/modkit"
	"reviewharvest/internal/platform/config"
	phttp "reviewharvest/internal/platform/net/http"
	"reviewharvest/internal/services/api/meta/module"

	"github.com/go-chi/chi/v5"
)

func get(t *testing.T, h http.Handler, path string) map[string]any {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("%s: status %d", path, rec.Code)
	}
	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	data, _ := env["data"].(map[string]any)
	return data
}

func TestMetaRoutes(t *testing.T) {
	next := time.Date(2025, 9, 4, 3, 0, 0, 0, time.FixedZone("CST", 8*3600))
	m := module.New(modkit.Deps{Cfg: config.New()},
		modkit.WithPorts(module.SchedulePorts{NextRun: func() time.Time { return next }}))
	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	if d := get(t, r.Mux(), "/meta/health"); d["ok"] != true || d["service"] != "reviewharvest-api" {
		t.Fatalf("health %v", d)
	}
	if d := get(t, r.Mux(), "/meta/version"); d["version"] == "" {
		t.Fatalf("version %v", d)
	}
	if d := get(t, r.Mux(), "/meta/service"); d["next_crawl"] != "2025-09-04T03:00:00+08:00" {
		t.Fatalf("service %v", d)
	}
}

func TestServiceWithoutSchedule(t *testing.T) {
	m := module.New(modkit.Deps{Cfg: config.New()})
	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)
	if d := get(t, r.Mux(), "/meta/service"); d["next_crawl"] != nil {
		t.Fatalf("next_crawl should be omitted, got %v", d)
	}
}

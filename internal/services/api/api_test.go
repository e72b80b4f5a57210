package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"reviewharvest/internal/modkit/module"
	"reviewharvest/internal/platform/config"
	phttp "reviewharvest/internal/platform/net/http"
	"reviewharvest/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func mountTest(t *testing.T) (http.Handler, *App) {
	t.Helper()
	testkit.Serial(t)
	module.Reset()
	t.Setenv("API_TEST_CORE_SCHEDULE_ENABLED", "false")
	t.Setenv("API_TEST_CORE_SCHEDULE_TOKEN", "tok")

	r := phttp.AdaptChi(chi.NewRouter())
	app := Mount(r, Options{Config: config.New().Prefix("API_TEST_"), EnableSwagger: true})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = app.Shutdown(ctx)
		module.Reset()
	})
	return r.Mux(), app
}

func TestMountedRoutes(t *testing.T) {
	h, _ := mountTest(t)

	cases := []struct {
		method, path string
		auth         string
		want         int
	}{
		{http.MethodGet, "/api/v1/meta/health", "", http.StatusOK},
		{http.MethodGet, "/api/v1/crawls", "", http.StatusOK},
		{http.MethodGet, "/api/v1/crawls/nope", "", http.StatusNotFound},
		{http.MethodGet, "/api/v1/schedule/history", "", http.StatusOK},
		{http.MethodPost, "/api/v1/schedule/run", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/docs/doc.json", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		if tc.auth != "" {
			req.Header.Set("Authorization", tc.auth)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s %s: got %d want %d body=%s", tc.method, tc.path, rec.Code, tc.want, rec.Body)
		}
	}
}

func TestPortsRegistered(t *testing.T) {
	mountTest(t)
	for _, name := range []string{"harvest", "crawls"} {
		if _, ok := module.PortsAs[any](name); !ok {
			t.Fatalf("%s ports not registered", name)
		}
	}
}

func TestRequestIDOnErrors(t *testing.T) {
	h, _ := mountTest(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/crawls", strings.NewReader(`{"product_id":"abc"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d body=%s", rec.Code, rec.Body)
	}
	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if id, _ := env["request_id"].(string); id == "" || env["error"] == nil {
		t.Fatalf("envelope %v", env)
	}
}

func TestMetaListsModules(t *testing.T) {
	h, _ := mountTest(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/meta/service", nil))
	var env struct {
		Data struct {
			Modules []string `json:"modules"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	want := []string{"crawls", "harvest", "meta", "schedule"}
	if strings.Join(env.Data.Modules, ",") != strings.Join(want, ",") {
		t.Fatalf("modules %v", env.Data.Modules)
	}
}

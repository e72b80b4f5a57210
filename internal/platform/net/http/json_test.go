package http_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "reviewharvest/internal/platform/errors"
	phttp "reviewharvest/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type echoIn struct {
	Name string `json:"name" validate:"required"`
}

func TestJSONHandlers(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	r.Post("/echo", phttp.JSONHandler(func(_ *http.Request, in echoIn) (any, error) {
		return phttp.Created(map[string]string{"name": in.Name}), nil
	}))
	r.Get("/fail", phttp.JSONHandlerNoBody(func(*http.Request) (any, error) {
		return nil, perr.NotFoundf("missing")
	}))
	r.Get("/plain", phttp.JSONHandlerNoBody(func(*http.Request) (any, error) {
		return "hi", nil
	}))

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"created passthrough", http.MethodPost, "/echo", `{"name":"x"}`, http.StatusCreated},
		{"bind error", http.MethodPost, "/echo", `{"name":`, http.StatusBadRequest},
		{"validation error", http.MethodPost, "/echo", `{"name":""}`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/echo", `{"name":"x","extra":1}`, http.StatusBadRequest},
		{"handler error", http.MethodGet, "/fail", "", http.StatusNotFound},
		{"plain value", http.MethodGet, "/plain", "", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			r.Mux().ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status %d want %d body=%s", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestJSONHandlerNoBody_PlainError(t *testing.T) {
	h := phttp.JSONHandlerNoBody(func(*http.Request) (any, error) { return nil, errors.New("x") })
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}

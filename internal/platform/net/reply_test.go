package net_test

import (
	"errors"
	"net/http"
	"testing"

	perr "reviewharvest/internal/platform/errors"
	pnet "reviewharvest/internal/platform/net"
)

func TestSuccessEnvelopes(t *testing.T) {
	cases := []struct {
		name   string
		build  func(any, string) (int, pnet.Wire)
		status int
	}{
		{"ok", pnet.OK, http.StatusOK},
		{"created", pnet.Created, http.StatusCreated},
		{"accepted", pnet.Accepted, http.StatusAccepted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, w := tc.build([]int{1, 2}, "req-1")
			if status != tc.status || w.StatusCode != tc.status {
				t.Fatalf("status %d/%d want %d", status, w.StatusCode, tc.status)
			}
			if w.Status != http.StatusText(tc.status) {
				t.Fatalf("status text %q", w.Status)
			}
			if w.RequestID != "req-1" {
				t.Fatalf("req id %q", w.RequestID)
			}
			if got := w.Data.([]int); len(got) != 2 {
				t.Fatalf("data mismatch: %+v", w.Data)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	if got := pnet.HTTPStatus(nil); got != http.StatusOK {
		t.Fatalf("nil got %d", got)
	}
	if got := pnet.HTTPStatus(perr.Conflictf("busy")); got != http.StatusConflict {
		t.Fatalf("conflict got %d", got)
	}
	if got := pnet.HTTPStatus(errors.New("plain")); got != http.StatusInternalServerError {
		t.Fatalf("plain got %d", got)
	}
}

func TestError_NilFallsBackToOK(t *testing.T) {
	status, w := pnet.Error(nil, "req-4")
	if status != http.StatusOK || w.Error != "" || w.Code != 0 {
		t.Fatalf("unexpected envelope %d %+v", status, w)
	}
}

func TestError_ProjectErrorMapped(t *testing.T) {
	err := perr.New(perr.ErrorCodeUnauthorized, "not allowed")

	status, w := pnet.Error(err, "req-5")

	if status != http.StatusUnauthorized || w.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status %d want 401", status)
	}
	if w.Code != perr.ErrorCodeUnauthorized {
		t.Fatalf("code %v want %v", w.Code, perr.ErrorCodeUnauthorized)
	}
	if w.Error != "not allowed" {
		t.Fatalf("message %q", w.Error)
	}
	if w.Data != nil {
		t.Fatalf("expected nil data, got %v", w.Data)
	}
}

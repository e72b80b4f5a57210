// Package http provides HTTP transport for the daily schedule
package http

import (
	stdhttp "net/http"

	"reviewharvest/internal/modkit/httpkit"
	"reviewharvest/internal/platform/net/middleware"
	"reviewharvest/internal/services/api/schedule/domain"
)

// Register mounts schedule endpoints; run is guarded by auth, history is open
func Register(r httpkit.Router, s domain.ServicePort, auth middleware.AuthPort) {
	h := &handlers{svc: s}

	httpkit.Protected(r, auth, func(pr httpkit.Router) {
		httpkit.Post(pr, "/run", h.run)
	})
	httpkit.Get(r, "/history", h.history)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /schedule/run Schedule scheduleRun
// @Summary Run the daily crawl now
// @Description Starts a task for every scheduled product not yet crawled today
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.RunReport "ok"
// @Failure 401 {object} httpkit.Envelope "missing or bad token"
// @Router /schedule/run [post]
func (h *handlers) run(r *stdhttp.Request) (any, error) {
	return h.svc.RunNow(r.Context()), nil
}

// swagger:route GET /schedule/history Schedule scheduleHistory
// @Summary Task counts per day
// @Tags Schedule
// @Produce json
// @Param days query int false "Window in days (1-90), default 7"
// @Success 200 {object} domain.HistoryResp "ok"
// @Router /schedule/history [get]
func (h *handlers) history(r *stdhttp.Request) (any, error) {
	days, err := httpkit.QueryInt(r, "days", 7, 1, 90)
	if err != nil {
		return nil, err
	}
	return h.svc.History(r.Context(), days)
}

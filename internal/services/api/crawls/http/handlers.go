// Package http provides HTTP transport for crawl tasks
package http

import (
	stdhttp "net/http"
	"strings"

	"reviewharvest/internal/modkit/httpkit"
	"reviewharvest/internal/services/api/crawls/domain"
)

// Register mounts crawl endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.StartInput](r, "/", h.start)
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{id}", h.get)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /crawls Crawls crawlsStart
// @Summary Start a review crawl for one product
// @Tags Crawls
// @Accept json
// @Produce json
// @Param payload body domain.StartInput true "Crawl request"
// @Success 202 {object} domain.StartResp "started"
// @Failure 409 {object} httpkit.Envelope "product already has a running task"
// @Failure 429 {object} httpkit.Envelope "start rate exceeded"
// @Router /crawls [post]
func (h *handlers) start(r *stdhttp.Request, in domain.StartInput) (any, error) {
	t, err := h.svc.Start(r.Context(), in, domain.TriggerAPI)
	if err != nil {
		return nil, err
	}
	return httpkit.Accepted(domain.StartResp{
		TaskID:    t.ID,
		ProductID: t.ProductID,
		Status:    t.Status,
		Message:   "crawl started, poll the task for results",
	}), nil
}

// swagger:route GET /crawls Crawls crawlsList
// @Summary Latest crawl tasks, newest first
// @Tags Crawls
// @Produce json
// @Param product_id query string false "Only tasks for this product"
// @Param limit query int false "At most this many tasks (1-20)"
// @Success 200 {object} httpkit.Envelope{data=object{items=[]domain.Task,page=httpkit.Page}} "ok"
// @Router /crawls [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	limit, err := httpkit.QueryInt(r, "limit", 20, 1, 20)
	if err != nil {
		return nil, err
	}
	pid := strings.TrimSpace(r.URL.Query().Get("product_id"))
	tasks, err := h.svc.List(r.Context(), pid, limit)
	if err != nil {
		return nil, err
	}
	return httpkit.List(tasks, len(tasks), len(tasks), limit), nil
}

// swagger:route GET /crawls/{id} Crawls crawlsGet
// @Summary One crawl task with its result document once finished
// @Tags Crawls
// @Produce json
// @Param id path string true "Task id"
// @Success 200 {object} domain.Task "ok"
// @Failure 404 {object} httpkit.Envelope "unknown task"
// @Router /crawls/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.Param(r, "id"))
}

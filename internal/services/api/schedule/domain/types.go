// Package domain holds daily schedule types
package domain

import (
	"context"
	"time"

	crawls "reviewharvest/internal/services/api/crawls/domain"
)

// Outcome of one product within a scheduled run
type Outcome string

// Outcomes
const (
	OutcomeStarted Outcome = "started"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// ProductResult reports what a run did for one product
type ProductResult struct {
	ProductID string  `json:"product_id"        example:"10032280299715"`
	Status    Outcome `json:"status"            example:"started"`
	TaskID    string  `json:"task_id,omitempty" example:"6f1c2f5e-8f9a-4c1e-9d55-0a4e3b1f2c77"`
	Message   string  `json:"message,omitempty" example:"already crawled today"`
}

// RunReport is the response of a scheduled or manual run
type RunReport struct {
	ExecutedAt        time.Time       `json:"executed_at"`
	ProductsProcessed int             `json:"products_processed" example:"1"`
	Results           []ProductResult `json:"results"`
}

// HistoryResp wraps the per day aggregation
type HistoryResp struct {
	Days    int               `json:"days"    example:"7"`
	History []crawls.DayStats `json:"history"`
}

// ServicePort is the schedule surface used by the http layer
type ServicePort interface {
	RunNow(ctx context.Context) RunReport
	History(ctx context.Context, days int) (HistoryResp, error)
}

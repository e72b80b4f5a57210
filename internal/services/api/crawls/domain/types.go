// Package domain holds crawl task types and ports
package domain

import (
	"context"
	"time"

	harvest "reviewharvest/internal/services/harvest/domain"
)

// Status is the lifecycle state of a crawl task
type Status string

// Task states
const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Trigger names who started a task
type Trigger string

// Triggers
const (
	TriggerAPI      Trigger = "api"
	TriggerSchedule Trigger = "schedule"
)

// Task is one crawl job and its outcome
type Task struct {
	ID                string          `json:"task_id"            example:"6f1c2f5e-8f9a-4c1e-9d55-0a4e3b1f2c77"`
	ProductID         string          `json:"product_id"         example:"10032280299715"`
	ProductURL        string          `json:"product_url"        example:"https://item.jd.com/10032280299715.html"`
	MaxPages          int             `json:"max_pages"          example:"10"`
	DaysLimit         int             `json:"days_limit"         example:"30"`
	Trigger           Trigger         `json:"trigger"            example:"api"`
	Status            Status          `json:"status"             example:"completed"`
	TotalComments     int             `json:"total_comments"     example:"87"`
	ProcessedComments int             `json:"processed_comments" example:"87"`
	Error             string          `json:"error,omitempty"`
	StartedAt         time.Time       `json:"started_at"`
	FinishedAt        *time.Time      `json:"finished_at,omitempty"`
	Result            *harvest.Result `json:"result,omitempty" swaggertype:"object"`
}

// StartInput is the crawl request body
// max_pages 0 means the default; days_limit is a pointer because 0 is a real window
type StartInput struct {
	ProductID  string `json:"product_id"  validate:"required,digits,max=32" example:"10032280299715"`
	ProductURL string `json:"product_url" validate:"omitempty,url"         example:"https://item.jd.com/10032280299715.html"`
	MaxPages   int    `json:"max_pages"   validate:"omitempty,min=1,max=100" example:"10"`
	DaysLimit  *int   `json:"days_limit"  validate:"omitempty,min=0,max=3650" example:"30"`
}

// StartResp is returned when a task is accepted
type StartResp struct {
	TaskID    string `json:"task_id"    example:"6f1c2f5e-8f9a-4c1e-9d55-0a4e3b1f2c77"`
	ProductID string `json:"product_id" example:"10032280299715"`
	Status    Status `json:"status"     example:"running"`
	Message   string `json:"message"    example:"crawl started, poll the task for results"`
}

// DayStats aggregates tasks started on one calendar day
type DayStats struct {
	Date          string `json:"date"           example:"2025-09-01"`
	Total         int    `json:"total"          example:"3"`
	Completed     int    `json:"completed"      example:"2"`
	Failed        int    `json:"failed"         example:"1"`
	Running       int    `json:"running"        example:"0"`
	TotalComments int    `json:"total_comments" example:"140"`
}

// ServicePort is what the schedule module and the http layer use
type ServicePort interface {
	Start(ctx context.Context, in StartInput, trig Trigger) (Task, error)
	Get(ctx context.Context, id string) (Task, error)
	List(ctx context.Context, productID string, limit int) ([]Task, error)
	StartedOn(ctx context.Context, productID string, day time.Time) (Task, bool)
	History(ctx context.Context, days int) ([]DayStats, error)
}

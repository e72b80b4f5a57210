// Package domain holds the types shared by the harvest pipeline and its callers
package domain

import (
	"encoding/json"
	"time"

	"reviewharvest/internal/adapters/ingest/jd"
	"reviewharvest/internal/core/annotate"
	"reviewharvest/internal/core/review"
	perr "reviewharvest/internal/platform/errors"
)

// Defaults used by the CLI and the crawl API when a field is left out
const (
	DefaultMaxPages  = 10
	DefaultDaysLimit = 30
)

// PageOutcome labels a single page request
type PageOutcome string

// Page outcomes
const (
	PageOK     PageOutcome = "ok"
	PageEmpty  PageOutcome = "empty"
	PageFailed PageOutcome = "error"
)

// SkipReason labels why raw records were dropped
type SkipReason string

// Skip reasons
const (
	SkipMalformed   SkipReason = "malformed"
	SkipOutOfWindow SkipReason = "out_of_window"
)

// StopReason labels why the page loop ended
type StopReason string

// Stop reasons
const (
	StopEmpty    StopReason = "empty_page"
	StopCutoff   StopReason = "cutoff"
	StopMaxPages StopReason = "max_pages"
	StopCanceled StopReason = "canceled"
)

// Request is one fetch job
type Request struct {
	ProductID   string
	MaxPages    int
	DaysLimit   int
	TaskID      string
	WithProduct bool
}

// Validate checks the job bounds
func (r Request) Validate() error {
	switch {
	case r.ProductID == "":
		return perr.WithField(perr.InvalidArgf("product id is required"), "product_id")
	case r.MaxPages < 1:
		return perr.WithField(perr.InvalidArgf("max_pages must be >= 1, got %d", r.MaxPages), "max_pages")
	case r.DaysLimit < 0:
		return perr.WithField(perr.InvalidArgf("days_limit must be >= 0, got %d", r.DaysLimit), "days_limit")
	}
	return nil
}

// Comment is a canonical record plus the annotation pass fields
type Comment struct {
	review.Record
	Sentiment annotate.Label `json:"sentiment"`
	Keywords  []string       `json:"keywords"`
}

// Result is the job result document
type Result struct {
	Success           bool
	TaskID            string
	ProductID         string
	TotalComments     int
	ProcessedComments int
	Comments          []Comment
	Product           *jd.ProductInfo
	Error             string
	CrawlTime         time.Time
}

type successDoc struct {
	Success           bool            `json:"success"`
	TaskID            string          `json:"task_id"`
	ProductID         string          `json:"product_id"`
	TotalComments     int             `json:"total_comments"`
	ProcessedComments int             `json:"processed_comments"`
	Comments          []Comment       `json:"comments"`
	Product           *jd.ProductInfo `json:"product,omitempty"`
	CrawlTime         string          `json:"crawl_time"`
}

// failureDoc carries whatever was fetched before the job failed
type failureDoc struct {
	Success           bool      `json:"success"`
	TaskID            string    `json:"task_id"`
	ProductID         string    `json:"product_id"`
	Error             string    `json:"error"`
	TotalComments     int       `json:"total_comments,omitempty"`
	ProcessedComments int       `json:"processed_comments,omitempty"`
	Comments          []Comment `json:"comments,omitempty"`
	CrawlTime         string    `json:"crawl_time"`
}

// MarshalJSON writes the success or the failure shape
func (r Result) MarshalJSON() ([]byte, error) {
	at := r.CrawlTime.Format(time.RFC3339)
	if !r.Success {
		return json.Marshal(failureDoc{
			TaskID:            r.TaskID,
			ProductID:         r.ProductID,
			Error:             r.Error,
			TotalComments:     r.TotalComments,
			ProcessedComments: r.ProcessedComments,
			Comments:          r.Comments,
			CrawlTime:         at,
		})
	}
	comments := r.Comments
	if comments == nil {
		comments = []Comment{}
	}
	return json.Marshal(successDoc{
		Success:           true,
		TaskID:            r.TaskID,
		ProductID:         r.ProductID,
		TotalComments:     r.TotalComments,
		ProcessedComments: r.ProcessedComments,
		Comments:          comments,
		Product:           r.Product,
		CrawlTime:         at,
	})
}

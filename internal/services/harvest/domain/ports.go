package domain

import (
	"context"
	"encoding/json"
	"time"

	"reviewharvest/internal/adapters/ingest/jd"
)

// RunnerPort is the public port other modules call to run one fetch job
type RunnerPort interface {
	Run(ctx context.Context, req Request) Result
}

// PageSource fetches one 1-based page of raw records in provider order
// an empty, non nil slice means the provider has no more pages
type PageSource interface {
	Comments(ctx context.Context, productID string, page int) ([]json.RawMessage, error)
}

// ProductSource is optionally implemented by a PageSource
type ProductSource interface {
	ProductInfo(ctx context.Context, productID string) jd.ProductInfo
}

// SourceFactory returns a fresh source for each job so no client identity is shared
type SourceFactory func() PageSource

// Reporter receives pipeline events; implementations must be safe for concurrent jobs
type Reporter interface {
	PageDone(ctx context.Context, page int, outcome PageOutcome, records int, err error)
	RecordsSkipped(ctx context.Context, page int, reason SkipReason, n int, err error)
	TimeUnparsed(ctx context.Context, page int, commentID, raw string)
	Stopped(ctx context.Context, page int, reason StopReason, kept int)
	JobDone(ctx context.Context, res Result, elapsed time.Duration)
}

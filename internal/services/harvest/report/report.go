// Package report turns harvest pipeline events into log lines and prometheus samples
package report

import (
	"context"
	"time"

	"reviewharvest/internal/platform/logger"
	"reviewharvest/internal/platform/metrics"
	"reviewharvest/internal/services/harvest/domain"
)

// Reporter logs through the context logger and records metrics when m is set
type Reporter struct {
	m *metrics.Metrics
}

// New returns a Reporter; m may be nil
func New(m *metrics.Metrics) *Reporter { return &Reporter{m: m} }

var _ domain.Reporter = (*Reporter)(nil)

// PageDone logs one page request
func (r *Reporter) PageDone(ctx context.Context, page int, outcome domain.PageOutcome, records int, err error) {
	l := logger.C(ctx)
	switch outcome {
	case domain.PageFailed:
		l.Error().Err(err).Int("page", page).Msg("harvest: page failed, continuing")
	case domain.PageEmpty:
		l.Info().Int("page", page).Msg("harvest: page has no comments")
	default:
		l.Debug().Int("page", page).Int("records", records).Msg("harvest: page fetched")
	}
	if r.m != nil {
		r.m.PagesFetched.WithLabelValues(string(outcome)).Inc()
	}
}

// RecordsSkipped logs records dropped from a page
func (r *Reporter) RecordsSkipped(ctx context.Context, page int, reason domain.SkipReason, n int, err error) {
	l := logger.C(ctx)
	if reason == domain.SkipMalformed {
		l.Error().Err(err).Int("page", page).Msg("harvest: record skipped")
	} else {
		l.Info().Int("page", page).Int("dropped", n).Str("reason", string(reason)).Msg("harvest: records dropped")
	}
	if r.m != nil {
		r.m.RecordsSkipped.WithLabelValues(string(reason)).Add(float64(n))
	}
}

// TimeUnparsed warns about a kept record whose timestamp could not be read
func (r *Reporter) TimeUnparsed(ctx context.Context, page int, commentID, raw string) {
	logger.C(ctx).Warn().
		Int("page", page).
		Str("comment_id", commentID).
		Str("comment_time", raw).
		Msg("harvest: unparseable comment time, keeping record")
}

// Stopped logs why the loop ended
func (r *Reporter) Stopped(ctx context.Context, page int, reason domain.StopReason, kept int) {
	logger.C(ctx).Info().
		Int("page", page).
		Str("reason", string(reason)).
		Int("kept", kept).
		Msg("harvest: stopped")
}

// JobDone logs the job summary
func (r *Reporter) JobDone(ctx context.Context, res domain.Result, elapsed time.Duration) {
	l := logger.C(ctx)
	if res.Success {
		l.Info().
			Str("product_id", res.ProductID).
			Int("comments", res.TotalComments).
			Dur("elapsed", elapsed).
			Msg("harvest: job done")
	} else {
		l.Error().
			Str("product_id", res.ProductID).
			Str("error", res.Error).
			Dur("elapsed", elapsed).
			Msg("harvest: job failed")
	}
	if r.m == nil {
		return
	}
	if res.Success {
		r.m.Jobs.WithLabelValues("success").Inc()
		r.m.RecordsKept.Add(float64(res.TotalComments))
	} else {
		r.m.Jobs.WithLabelValues("failed").Inc()
	}
	r.m.JobDuration.Observe(elapsed.Seconds())
}

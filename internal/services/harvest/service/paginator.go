// Package service runs the paged fetch loop and the annotation pass
package service

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"time"

	"reviewharvest/internal/core/review"
	perr "reviewharvest/internal/platform/errors"
	"reviewharvest/internal/services/harvest/domain"
)

// Paginator walks one product's pages until a stop condition fires
// it keeps no state between Fetch calls
type Paginator struct {
	src domain.PageSource
	rep domain.Reporter
	cfg Config

	now    func() time.Time
	sleep  func(context.Context, time.Duration) error
	jitter func(lo, hi time.Duration) time.Duration
}

// NewPaginator builds a Paginator over src; rep may be nil
func NewPaginator(src domain.PageSource, rep domain.Reporter, cfg Config) *Paginator {
	if rep == nil {
		rep = nopReporter{}
	}
	return &Paginator{
		src:    src,
		rep:    rep,
		cfg:    cfg.withDefaults(),
		now:    time.Now,
		sleep:  sleepCtx,
		jitter: uniform,
	}
}

// Fetch returns in-window records in provider order
// Page and record failures are reported and absorbed; only bad arguments and
// context cancellation come back as errors, the latter with the records seen so far
func (p *Paginator) Fetch(ctx context.Context, productID string, maxPages, daysLimit int) ([]review.Record, error) {
	if productID == "" {
		return nil, perr.WithField(perr.InvalidArgf("product id is required"), "product_id")
	}
	if maxPages < 1 {
		return nil, perr.WithField(perr.InvalidArgf("max_pages must be >= 1"), "max_pages")
	}
	if daysLimit < 0 {
		return nil, perr.WithField(perr.InvalidArgf("days_limit must be >= 0"), "days_limit")
	}

	cutoff := p.now().AddDate(0, 0, -daysLimit)
	out := []review.Record{}

	for page := 1; page <= maxPages; page++ {
		if err := ctx.Err(); err != nil {
			p.rep.Stopped(ctx, page, domain.StopCanceled, len(out))
			return out, err
		}

		raws, err := p.src.Comments(ctx, productID, page)
		switch {
		case err != nil:
			// a failed page yields nothing but does not end the job
			p.rep.PageDone(ctx, page, domain.PageFailed, 0, err)
		case len(raws) == 0:
			p.rep.PageDone(ctx, page, domain.PageEmpty, 0, nil)
			p.rep.Stopped(ctx, page, domain.StopEmpty, len(out))
			return out, nil
		default:
			p.rep.PageDone(ctx, page, domain.PageOK, len(raws), nil)
			kept, crossed := p.scan(ctx, page, raws, cutoff)
			out = append(out, kept...)
			if crossed {
				p.rep.Stopped(ctx, page, domain.StopCutoff, len(out))
				return out, nil
			}
		}

		if page == maxPages {
			break
		}
		if err := p.sleep(ctx, p.jitter(p.cfg.MinDelay, p.cfg.MaxDelay)); err != nil {
			p.rep.Stopped(ctx, page, domain.StopCanceled, len(out))
			return out, err
		}
	}

	p.rep.Stopped(ctx, maxPages, domain.StopMaxPages, len(out))
	return out, nil
}

// scan normalizes a page in order and reports whether a record older than cutoff was met
// records seen before that one are kept; the rest of the page is dropped
func (p *Paginator) scan(ctx context.Context, page int, raws []json.RawMessage, cutoff time.Time) ([]review.Record, bool) {
	kept := make([]review.Record, 0, len(raws))
	for i, raw := range raws {
		rec, err := review.Normalize(raw)
		if err != nil {
			p.rep.RecordsSkipped(ctx, page, domain.SkipMalformed, 1, err)
			continue
		}
		at, ok := review.ParseTime(rec.CommentTime)
		if !ok {
			p.rep.TimeUnparsed(ctx, page, rec.CommentID, rec.CommentTime)
			kept = append(kept, rec)
			continue
		}
		if at.Before(cutoff) {
			p.rep.RecordsSkipped(ctx, page, domain.SkipOutOfWindow, len(raws)-i, nil)
			return kept, true
		}
		kept = append(kept, rec)
	}
	return kept, false
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// uniform draws from [lo, hi]
func uniform(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + rand.N(hi-lo+1)
}

type nopReporter struct{}

func (nopReporter) PageDone(context.Context, int, domain.PageOutcome, int, error) {}
func (nopReporter) RecordsSkipped(context.Context, int, domain.SkipReason, int, error) {}
func (nopReporter) TimeUnparsed(context.Context, int, string, string) {}
func (nopReporter) Stopped(context.Context, int, domain.StopReason, int) {}
func (nopReporter) JobDone(context.Context, domain.Result, time.Duration) {}

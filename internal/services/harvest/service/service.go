package service

import (
	"context"
	"fmt"
	"time"

	"reviewharvest/internal/core/annotate"
	"reviewharvest/internal/core/review"
	perr "reviewharvest/internal/platform/errors"
	"reviewharvest/internal/platform/logger"
	"reviewharvest/internal/services/harvest/domain"
)

// Config holds the courtesy delay bounds between page requests
type Config struct {
	MinDelay time.Duration // <0 -> 0
	MaxDelay time.Duration // < MinDelay -> MinDelay
}

// DefaultConfig is the delay used when nothing is configured
func DefaultConfig() Config {
	return Config{MinDelay: time.Second, MaxDelay: 3 * time.Second}
}

func (c Config) withDefaults() Config {
	if c.MinDelay < 0 {
		c.MinDelay = 0
	}
	if c.MaxDelay < c.MinDelay {
		c.MaxDelay = c.MinDelay
	}
	return c
}

// Service runs whole jobs: fetch, annotate, build the result document
type Service struct {
	NewSource domain.SourceFactory
	Rep       domain.Reporter
	Cfg       Config

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// New constructs the harvest service
func New(newSource domain.SourceFactory, rep domain.Reporter, cfg Config) *Service {
	if newSource == nil {
		panic("harvest.Service requires a non nil SourceFactory")
	}
	if rep == nil {
		rep = nopReporter{}
	}
	return &Service{
		NewSource: newSource,
		Rep:       rep,
		Cfg:       cfg.withDefaults(),
		now:       time.Now,
		sleep:     sleepCtx,
	}
}

// Run executes one job and never panics; failures come back as success=false
func (s *Service) Run(ctx context.Context, req domain.Request) (res domain.Result) {
	ctx = logger.WithTask(ctx, req.TaskID)
	start := s.now()
	res = domain.Result{TaskID: req.TaskID, ProductID: req.ProductID}

	defer func() {
		if r := recover(); r != nil {
			logger.C(ctx).Error().Interface("panic", r).Str("product_id", req.ProductID).Msg("harvest: job panicked")
			res = failed(res, perr.PanicErrf("harvest panic: %v", r))
		}
		res.CrawlTime = s.now().In(review.Zone)
		s.Rep.JobDone(ctx, res, s.now().Sub(start))
	}()

	if err := req.Validate(); err != nil {
		return failed(res, err)
	}

	src := s.NewSource()
	if src == nil {
		return failed(res, perr.Internalf("harvest: source factory returned nil"))
	}

	p := NewPaginator(src, s.Rep, s.Cfg)
	p.now, p.sleep = s.now, s.sleep

	recs, err := p.Fetch(ctx, req.ProductID, req.MaxPages, req.DaysLimit)
	if err != nil {
		// records fetched before the failure stay in the document
		res = failed(res, err)
		return withComments(res, Annotate(recs))
	}

	res = withComments(res, Annotate(recs))
	res.Success = true

	if req.WithProduct {
		if ps, ok := src.(domain.ProductSource); ok {
			info := ps.ProductInfo(ctx, req.ProductID)
			res.Product = &info
		}
	}
	return res
}

// Annotate runs the annotation pass over the comment body of every record
func Annotate(recs []review.Record) []domain.Comment {
	out := make([]domain.Comment, 0, len(recs))
	for _, r := range recs {
		out = append(out, domain.Comment{
			Record:    r,
			Sentiment: annotate.Sentiment(r.CommentContent),
			Keywords:  annotate.Keywords(r.CommentContent),
		})
	}
	return out
}

func withComments(res domain.Result, comments []domain.Comment) domain.Result {
	res.Comments = comments
	res.TotalComments = len(comments)
	res.ProcessedComments = len(comments)
	return res
}

func failed(res domain.Result, err error) domain.Result {
	res.Success = false
	res.Comments = nil
	res.TotalComments, res.ProcessedComments = 0, 0
	res.Product = nil
	res.Error = errorText(err)
	return res
}

// errorText prefers the outermost perr message without the code prefix
func errorText(err error) string {
	if e, ok := perr.As(err); ok {
		if e.Field() != "" {
			return fmt.Sprintf("%s: %s", e.Field(), e.ToWire().Message)
		}
		return e.ToWire().Message
	}
	return err.Error()
}

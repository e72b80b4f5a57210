// Package jd talks to the JD.com product comment endpoint and product pages
package jd

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"reviewharvest/internal/platform/config"
	perr "reviewharvest/internal/platform/errors"
	"reviewharvest/internal/platform/logger"
)

const (
	commentsURLDefault = "https://club.jd.com/comment/productPageComments.action"
	itemURLDefault     = "https://item.jd.com"
	refererDefault     = "https://item.jd.com/"
	defaultTimeout     = 10 * time.Second
	defaultPageSize    = 10
	defaultSortType    = 5
	maxBodyBytes       = 8 << 20
)

// Options configures the Client
type Options struct {
	CommentsURL string
	ItemURL     string
	Referer     string
	Timeout     time.Duration

	// PageSize and SortType are sent as is on every comments request
	PageSize int
	SortType int

	// UserAgents replaces the built in pool when non empty
	UserAgents []string

	// Transport overrides the default round tripper, mostly for tests
	Transport http.RoundTripper

	// Seed fixes the random source when non zero
	Seed uint64
}

// OptionsFromConfig reads a CORE_JD_ style view
func OptionsFromConfig(c config.Conf) Options {
	return Options{
		CommentsURL: c.MayString("COMMENTS_URL", commentsURLDefault),
		ItemURL:     c.MayString("ITEM_URL", itemURLDefault),
		Referer:     c.MayString("REFERER", refererDefault),
		Timeout:     c.MayDuration("TIMEOUT", defaultTimeout),
		PageSize:    c.MayInt("PAGE_SIZE", defaultPageSize),
		SortType:    c.MayInt("SORT_TYPE", defaultSortType),
		UserAgents:  c.MayCSV("USER_AGENTS", nil),
	}
}

// Client is one crawl identity: its own http client, user agent rotation and random source
// A Client is meant for a single job at a time; build a fresh one per job
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	ua   identity

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.CommentsURL == "" {
		o.CommentsURL = commentsURLDefault
	}
	if o.ItemURL == "" {
		o.ItemURL = itemURLDefault
	}
	if o.Referer == "" {
		o.Referer = refererDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.PageSize <= 0 {
		o.PageSize = defaultPageSize
	}
	if o.SortType <= 0 {
		o.SortType = defaultSortType
	}
	seed := o.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	hc := &http.Client{Timeout: o.Timeout}
	if o.Transport != nil {
		hc.Transport = o.Transport
	}
	return &Client{
		http: hc,
		opts: o,
		log:  *logger.Named("jd"),
		ua:   newIdentity(o.UserAgents),
		rnd:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// intN draws from the client's random source
func (c *Client) intN(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rnd.IntN(n)
}

// callback returns a fresh jsonp callback name
func (c *Client) callback() string {
	return fmt.Sprintf("fetchJSON_comment98vv%d", 1000+c.intN(9000))
}

// get issues one GET with the browser ajax headers and returns the decoded utf-8 body
func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "jd new request failed")
	}
	c.setHeaders(req, accept)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "jd request failed")
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("url", url).Msg("jd close body failed")
		}
	}()

	c.log.Debug().
		Str("url", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Str("content_encoding", resp.Header.Get("Content-Encoding")).
		Msg("jd http response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return nil, perr.Upstreamf("jd unexpected status %d", resp.StatusCode)
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	return toUTF8(body, resp.Header.Get("Content-Type"))
}

func (c *Client) setHeaders(req *http.Request, accept string) {
	req.Header.Set("User-Agent", c.ua.next(c.intN))
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Referer", c.opts.Referer)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
}

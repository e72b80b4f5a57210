package httpkit

import (
	"net/http"
	"strconv"
	"strings"

	perr "reviewharvest/internal/platform/errors"
	phttp "reviewharvest/internal/platform/net/http"
)

// PostJSON mounts a JSON body handler under POST, the body is decoded and validated first
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// Get registers a no-body handler and uses the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.JSONHandlerNoBody(h))
}

// Post registers a no-body POST handler
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, phttp.JSONHandlerNoBody(h))
}

// Param returns a path parameter
func Param(r *http.Request, key string) string { return phttp.URLParam(r, key) }

// QueryInt reads an integer query parameter, def when absent, an invalid argument when outside [lo, hi]
func QueryInt(r *http.Request, key string, def, lo, hi int) (int, error) {
	s := strings.TrimSpace(r.URL.Query().Get(key))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, perr.WithField(perr.InvalidArgf("%s must be an integer", key), key)
	}
	if n < lo || n > hi {
		return 0, perr.WithField(perr.InvalidArgf("%s must be between %d and %d", key, lo, hi), key)
	}
	return n, nil
}

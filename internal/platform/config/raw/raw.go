// Package raw reads environment values during bootstrap
// it must not import the logger since the logger configures itself through it
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Env is a prefixed view over the process environment
type Env struct{ prefix string }

// New returns an unprefixed view
func New() Env { return Env{} }

// Prefix returns a child view, eg New().Prefix("LOG_")
func (e Env) Prefix(p string) Env { return Env{prefix: e.prefix + p} }

func (e Env) lookup(key string) string {
	return strings.TrimSpace(os.Getenv(e.prefix + key))
}

// String returns the trimmed value or def when unset
func (e Env) String(key, def string) string {
	if v := e.lookup(key); v != "" {
		return v
	}
	return def
}

// Bool accepts 1 true yes on (any case); anything else set is false
func (e Env) Bool(key string, def bool) bool {
	v := strings.ToLower(e.lookup(key))
	switch v {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// Int returns a non negative integer or def when unset or malformed
func (e Env) Int(key string, def int) int {
	v := e.lookup(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

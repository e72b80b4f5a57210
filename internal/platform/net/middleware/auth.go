package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "reviewharvest/internal/platform/errors"
	pnet "reviewharvest/internal/platform/net"
)

// AuthPort resolves the caller of a request
type AuthPort interface {
	// Parse returns the caller name or an error when the request is not allowed
	Parse(r *http.Request) (caller string, err error)
}

// Auth guards next with p. A nil port lets every request through
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			caller, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithCaller(r.Context(), caller)))
		})
	}
}

// BearerToken accepts requests carrying "Authorization: Bearer <Token>"
type BearerToken struct {
	Token  string
	Caller string
}

// Parse implements AuthPort. An empty Token rejects everything
func (b BearerToken) Parse(r *http.Request) (string, error) {
	if b.Token == "" {
		return "", perr.Unauthorizedf("endpoint disabled, no token configured")
	}
	h := r.Header.Get("Authorization")
	scheme, tok, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(tok)), []byte(b.Token)) != 1 {
		return "", perr.Unauthorizedf("invalid token")
	}
	if b.Caller == "" {
		return "bearer", nil
	}
	return b.Caller, nil
}

package httpkit

import (
	"reviewharvest/internal/platform/net/middleware"
)

// Protected groups routes behind p, a nil port leaves them open
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}

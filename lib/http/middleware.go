package http

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pdiomede/BurnIt/fs"
)

var onlyOnceWarningAllowOrigin sync.Once

// MiddlewareCORS instantiates middleware that adds the CORS headers to
// every response.
//
// The headers are set before the wrapped handler runs so they are in
// place whenever it writes its header, whatever the method, path or
// status. Set is used so each header carries exactly one value.
func MiddlewareCORS(allowOrigin, allowMethods, allowHeaders string) Middleware {
	if allowOrigin == "" {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	onlyOnceWarningAllowOrigin.Do(func() {
		if allowOrigin == "*" {
			fs.Infof(nil, "Allow origin set to * - any web page may read from this server")
		}
	})

	chain := chi.Chain(
		middleware.SetHeader("Access-Control-Allow-Origin", allowOrigin),
		middleware.SetHeader("Access-Control-Allow-Methods", allowMethods),
		middleware.SetHeader("Access-Control-Allow-Headers", allowHeaders),
	)
	return func(next http.Handler) http.Handler {
		return chain.Handler(next)
	}
}

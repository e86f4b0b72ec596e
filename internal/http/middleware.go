package http

import (
	"net/http"

	"github.com/charmbracelet/log"
)

// paramsMiddleware attaches a request-scoped logger to the context and
// handles the 'verbose' query parameter on that logger only.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.Default().With("method", r.Method, "path", r.URL.Path)
		if r.URL.Query().Get("verbose") == "true" {
			logger.SetLevel(log.DebugLevel)
		}
		logger.Info("incoming request", "url", r.URL.String())
		next.ServeHTTP(w, r.WithContext(log.WithContext(r.Context(), logger)))
	})
}

package middleware

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"finitefield.org/hanko-docs/internal/httpx"
	"finitefield.org/hanko-docs/internal/observability"
)

// Recover turns a panic into a 500. It logs through the request logger when
// one is present and through fallback otherwise. http.ErrAbortHandler is re-panicked.
func Recover(fallback *zap.Logger) func(http.Handler) http.Handler {
	if fallback == nil {
		fallback = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger := observability.FromContext(r.Context())
				if observability.IsNoop(logger) {
					logger = fallback
				}
				logger.Error("panic recovered",
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				if httpx.WantsJSON(r) {
					httpx.WriteError(r.Context(), w, httpx.NewError("internal_server_error", "internal server error", http.StatusInternalServerError))
					return
				}
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

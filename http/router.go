package http

import (
	"log/slog"
	"net/http"
)

// NewRouter wires every route behind the rate limiter and request logging.
func NewRouter(
	items *ItemHandler,
	page *PageHandler,
	limiter *RateLimiter,
	logger *slog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/items", RateLimitMiddleware(limiter, http.HandlerFunc(items.Items)))
	mux.Handle("/", RateLimitMiddleware(limiter, http.HandlerFunc(page.Index)))
	mux.HandleFunc("/healthz", Health)

	return LoggingMiddleware(logger, mux)
}

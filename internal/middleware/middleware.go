// Package middleware holds the global and route-specific echo middleware.
//
// It covers request ids, the request-scoped logger, New Relic tracing,
// request logging, CORS, rate limiting, panic recovery and the global error
// handler that writes every failure as a result envelope.
package middleware

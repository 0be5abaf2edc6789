package http

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RequestTimeout bounds the context of every request so store operations
// fail fast with a transient-failure error instead of hanging on a stuck
// connection. The order event stream is exempt: subscriptions stay open
// until the client disconnects.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	return middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Skipper: func(ctx echo.Context) bool {
			return strings.HasSuffix(ctx.Path(), "/stream")
		},
		Timeout: timeout,
	})
}

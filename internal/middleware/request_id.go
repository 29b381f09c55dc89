package middleware

import (
	"streamReco/business/reco"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestID attaches a trace id to every request: reuse the caller's
// X-Request-ID when present, mint a uuid otherwise. The id travels down in
// the request context and back out in the response header.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}

			ctx := reco.WithTraceID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(echo.HeaderXRequestID, id)

			return next(c)
		}
	}
}

package middleware

import (
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireJSON rejects write requests whose body is not declared as JSON.
// Requests without a body pass through; the handler reports those.
func RequireJSON() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
			default:
				return next(c)
			}
			if req.ContentLength == 0 {
				return next(c)
			}

			mt, _, err := mime.ParseMediaType(req.Header.Get(echo.HeaderContentType))
			if err != nil || mt != echo.MIMEApplicationJSON {
				return echo.NewHTTPError(http.StatusBadRequest, "Content-Type must be application/json")
			}

			return next(c)
		}
	}
}

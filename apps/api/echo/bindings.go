package echoapi

import (
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mergington/highschool/services/metrics"
)

// callerParam carries the caller identity on mutating endpoints.
const callerParam = "teacher_username"

// bindRequest populates dst from query parameters first, then from the JSON
// body when one is present; body values win. The original API accepted both
// forms on every endpoint.
func bindRequest(ctx echo.Context, dst interface{}) error {
	binder := new(echo.DefaultBinder)
	if err := binder.BindQueryParams(ctx, dst); err != nil {
		return err
	}
	if ctx.Request().ContentLength != 0 {
		if err := binder.BindBody(ctx, dst); err != nil {
			return err
		}
	}
	return nil
}

// pathParam returns the named path parameter, percent-decoded (activity names
// contain spaces).
func pathParam(ctx echo.Context, name string) string {
	val := ctx.Param(name)
	if unescaped, err := url.PathUnescape(val); err == nil {
		return unescaped
	}
	return val
}

func metricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if err := next(ctx); err != nil {
				metrics.HandlerErrors.Inc()
				ctx.Error(err) // let the error handler commit the response
			}
			metrics.Requests.WithLabelValues(
				ctx.Request().Method, strconv.Itoa(ctx.Response().Status)).Inc()
			return nil
		}
	}
}

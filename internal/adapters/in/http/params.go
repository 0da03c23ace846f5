package http

import (
	"strconv"
	"time"

	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// intQueryParam parses an optional integer query parameter. A missing
// parameter yields zero, which the query constructors treat as "use default".
func intQueryParam(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

// timeQueryParam parses a required RFC 3339 query parameter.
func timeQueryParam(ctx echo.Context, name string) (time.Time, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return time.Time{}, errs.NewValueIsRequiredError(name)
	}

	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

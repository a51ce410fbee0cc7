package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"kaasu/internal/models"

	"github.com/labstack/echo/v4"
)

// parseIDParam reads a positive integer path parameter
func parseIDParam(c echo.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s: must be a positive integer", name)
	}
	return id, nil
}

// parseOptionalIDQuery reads an optional positive integer query parameter.
// An empty value counts as absent.
func parseOptionalIDQuery(c echo.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%s: must be a positive integer", name)
	}
	return &id, nil
}

// parseOptionalDateQuery reads an optional YYYY-MM-DD query parameter
func parseOptionalDateQuery(c echo.Context, name string) (*models.Date, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	date, err := models.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &date, nil
}

// parseDateWindow reads the date_from and date_to query parameters
func parseDateWindow(c echo.Context) (from, to *models.Date, err error) {
	if from, err = parseOptionalDateQuery(c, "date_from"); err != nil {
		return nil, nil, err
	}
	if to, err = parseOptionalDateQuery(c, "date_to"); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

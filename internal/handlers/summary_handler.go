package handlers

import (
	"net/http"

	"kaasu/internal/dto"
	"kaasu/internal/errors"
	"kaasu/internal/models"
	"kaasu/internal/services"

	"github.com/labstack/echo/v4"
)

// SummaryHandler serves aggregate spending figures
type SummaryHandler struct {
	summaryService services.SummaryServiceInterface
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summaryService services.SummaryServiceInterface) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// CategorySummary returns per-category totals, largest first
// @Summary Spending by category
// @Description Categories without expenses in the window are omitted.
// @Tags Summary
// @Produce json
// @Param date_from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {array} dto.SummaryRowResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_005 - Invalid date"
// @Router /api/summary [get]
func (h *SummaryHandler) CategorySummary(c echo.Context) error {
	filters, err := summaryFilters(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails(err.Error()))
	}

	totals, err := h.summaryService.CategoryTotals(c.Request().Context(), filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewSummaryResponse(totals))
}

// Totals returns overall spending and the number of expenses
// @Summary Overall spending
// @Tags Summary
// @Produce json
// @Param date_from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} dto.TotalsResponse
// @Router /api/summary/totals [get]
func (h *SummaryHandler) Totals(c echo.Context) error {
	filters, err := summaryFilters(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails(err.Error()))
	}

	totals, err := h.summaryService.Totals(c.Request().Context(), filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewTotalsResponse(*totals))
}

func summaryFilters(c echo.Context) (models.SummaryFilters, error) {
	from, to, err := parseDateWindow(c)
	if err != nil {
		return models.SummaryFilters{}, err
	}
	return models.SummaryFilters{DateFrom: from, DateTo: to}, nil
}

package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"kaasu/internal/dto"
	"kaasu/internal/errors"
	"kaasu/internal/models"
	"kaasu/internal/services"

	"github.com/labstack/echo/v4"
)

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	expenseService services.ExpenseServiceInterface
	exportService  services.ExportServiceInterface
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService services.ExpenseServiceInterface, exportService services.ExportServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		exportService:  exportService,
	}
}

// CreateExpense records a new expense
// @Summary Create an expense
// @Description Unknown tag ids are ignored. The date defaults to today.
// @Tags Expenses
// @Accept json
// @Produce json
// @Param request body dto.CreateExpenseRequest true "Expense details"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 422 {object} errors.ErrorResponse "EXPENSE_003 - Category does not exist"
// @Router /api/expenses [post]
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	var req dto.CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	expense, err := h.expenseService.CreateExpense(c.Request().Context(), req.ToNewExpense())
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewExpenseResponse(*expense))
}

// ListExpenses returns expenses newest first, narrowed by the query filters
// @Summary List expenses
// @Tags Expenses
// @Produce json
// @Param category_id query int false "Category ID"
// @Param tag_id query int false "Tag ID"
// @Param date_from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {array} dto.ExpenseResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_005 / VALIDATION_006 - Invalid query parameter"
// @Router /api/expenses [get]
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	filters, code, err := expenseFilters(c)
	if err != nil {
		return SendError(c, code, errors.WithDetails(err.Error()))
	}

	expenses, err := h.expenseService.ListExpenses(c.Request().Context(), filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewExpenseListResponse(expenses))
}

// GetExpense returns a single expense
// @Summary Get an expense
// @Tags Expenses
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} errors.ErrorResponse "EXPENSE_001 - Expense not found"
// @Router /api/expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	expense, err := h.expenseService.GetExpense(c.Request().Context(), id)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewExpenseResponse(*expense))
}

// UpdateExpense applies a partial update. Only keys present in the body change.
// @Summary Update an expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param request body dto.UpdateExpenseRequest true "Fields to change"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} errors.ErrorResponse "EXPENSE_001 - Expense not found"
// @Failure 422 {object} errors.ErrorResponse "EXPENSE_003 - Category does not exist"
// @Router /api/expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	var req dto.UpdateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	expense, err := h.expenseService.UpdateExpense(c.Request().Context(), id, req.ToExpenseUpdate())
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewExpenseResponse(*expense))
}

// DeleteExpense deletes an expense and its tag links
// @Summary Delete an expense
// @Tags Expenses
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} dto.StatusResponse
// @Failure 404 {object} errors.ErrorResponse "EXPENSE_001 - Expense not found"
// @Router /api/expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	deleted, err := h.expenseService.DeleteExpense(c.Request().Context(), id)
	if err != nil {
		return SendServiceError(c, err)
	}
	if !deleted {
		return SendError(c, errors.ExpenseNotFound)
	}

	return c.JSON(http.StatusOK, dto.StatusResponse{Status: dto.StatusDeleted})
}

// ExportExpenses downloads the filtered expenses as a spreadsheet
// @Summary Export expenses
// @Tags Expenses
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce text/csv
// @Param format query string false "xlsx (default) or csv"
// @Param category_id query int false "Category ID"
// @Param tag_id query int false "Tag ID"
// @Param date_from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} errors.ErrorResponse "EXPENSE_004 - Unsupported export format"
// @Router /api/expenses/export [get]
func (h *ExpenseHandler) ExportExpenses(c echo.Context) error {
	format, err := models.ParseExportFormat(c.QueryParam("format"))
	if err != nil {
		return SendError(c, errors.ExpenseInvalidExport, errors.WithDetails(err.Error()))
	}

	filters, code, err := expenseFilters(c)
	if err != nil {
		return SendError(c, code, errors.WithDetails(err.Error()))
	}

	// Buffered so a failed export still gets a proper error status
	var buf bytes.Buffer
	if _, err := h.exportService.Export(c.Request().Context(), filters, format, &buf); err != nil {
		return SendServiceError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", format.Filename(time.Now())))
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

// expenseFilters parses the list filters and the error code to report when
// one of them is malformed
func expenseFilters(c echo.Context) (models.ExpenseFilters, errors.ErrorCode, error) {
	var filters models.ExpenseFilters
	var err error

	if filters.CategoryID, err = parseOptionalIDQuery(c, "category_id"); err != nil {
		return filters, errors.ValidationInvalidID, err
	}
	if filters.TagID, err = parseOptionalIDQuery(c, "tag_id"); err != nil {
		return filters, errors.ValidationInvalidID, err
	}
	if filters.DateFrom, filters.DateTo, err = parseDateWindow(c); err != nil {
		return filters, errors.ValidationInvalidDate, err
	}
	return filters, "", nil
}

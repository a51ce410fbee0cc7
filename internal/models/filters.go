package models

// ExpenseFilters contains filtering options for expense queries. Every
// non-nil field narrows the result; date bounds are inclusive.
type ExpenseFilters struct {
	CategoryID *int64
	TagID      *int64
	DateFrom   *Date
	DateTo     *Date
}

// SummaryFilters restricts aggregation to an inclusive date window.
type SummaryFilters struct {
	DateFrom *Date
	DateTo   *Date
}

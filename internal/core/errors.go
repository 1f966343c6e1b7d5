package core

import "fmt"

// InvalidCategoryError is returned when a domain that validates categories
// (customers, inventory) receives a category outside its catalog. It is
// detected before any query executes.
type InvalidCategoryError struct {
	Domain   string
	Category string
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid %s report category %q", e.Domain, e.Category)
}

// MissingParameterError is returned when a category mandates a field the
// caller omitted (item_trend without filter_name). Detected during
// resolution, before any query executes.
type MissingParameterError struct {
	Category  string
	Parameter string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s is required for %s category", e.Parameter, e.Category)
}

// DataAccessError wraps a store connectivity or query failure. It always
// originates in the Executor implementation; the core never retries it.
type DataAccessError struct {
	Err error
}

func (e *DataAccessError) Error() string { return "data access: " + e.Err.Error() }
func (e *DataAccessError) Unwrap() error { return e.Err }

// ReportError is the terminal failure for a report request: any error raised
// during execution or aggregation is wrapped here with the original cause's
// message. A failed request never returns partial data.
type ReportError struct {
	Domain string
	Err    error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("error generating %s report: %v", e.Domain, e.Err)
}

func (e *ReportError) Unwrap() error { return e.Err }

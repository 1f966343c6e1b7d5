package core

// SalesReportRequest is the inbound request for the sales report domain.
// All fields except Category are optional; dates are YYYY-MM-DD strings.
type SalesReportRequest struct {
	Category   string `json:"category"`
	FromDate   string `json:"fromdate,omitempty"`
	ToDate     string `json:"todate,omitempty"`
	FilterName string `json:"filter_name,omitempty"`
}

// CustomerReportRequest is the inbound request for the customer report domain.
type CustomerReportRequest struct {
	Category string `json:"category"`
	AsOfDate string `json:"as_of_date,omitempty"`
	FromDate string `json:"from_date,omitempty"`
	ToDate   string `json:"to_date,omitempty"`
}

// InventoryReportRequest is the inbound request for the inventory report
// domain. Both date field spellings exist on the wire: most categories read
// from_date/to_date, turnover_rate reads fromdate/todate (legacy client
// compatibility — the two pairs are not interchangeable).
type InventoryReportRequest struct {
	Category   string `json:"category"`
	LocationID int    `json:"location_id,omitempty"`
	Threshold  *int   `json:"threshold,omitempty"`
	FromDate   string `json:"from_date,omitempty"`
	ToDate     string `json:"to_date,omitempty"`
	FromDate2  string `json:"fromdate,omitempty"`
	ToDate2    string `json:"todate,omitempty"`
	Limit      *int   `json:"limit,omitempty"`
	Location   string `json:"location,omitempty"`
}

// ResolvedParams is a fully-defaulted parameter set for one query run.
// Once resolution completes, no field a category needs is left unset.
type ResolvedParams struct {
	From       string // YYYY-MM-DD
	To         string // YYYY-MM-DD
	AsOf       string // optional as-of date filter ("" = unbounded)
	Threshold  int
	Limit      int
	LocationID int    // 0 = no location filter
	Location   string // "" = no location filter
	Filter     string // free-text filter (item_trend)
}

package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ── Queries ───────────────────────────────────────────────────────────────────
//
// Sale types '10' and '14' are the two completed-sale document types; every
// revenue query filters on them.

const querySalesTodayHourly = `
	SELECT EXTRACT(HOUR FROM s.tyme)::int AS hour, SUM(s.sale_total_cost) AS total_sales, c.symbol AS currency_name
	FROM sales s
	JOIN currency c ON s.currency_id = c.currency_id
	WHERE s.date = CURRENT_DATE
	  AND s.type IN ('10', '14')
	GROUP BY EXTRACT(HOUR FROM s.tyme), c.currency_id, c.symbol
	ORDER BY hour ASC`

const querySalesByRep = `
	SELECT s.date, u.username, SUM(s.sale_total_cost) AS total_sales, c.symbol AS currency_name
	FROM sales s
	JOIN users u ON s.rep = u.id
	JOIN currency c ON s.currency_id = c.currency_id
	WHERE s.type IN ('10', '14')
	  AND s.date BETWEEN $1::date AND $2::date
	GROUP BY s.date, u.username, c.currency_id, c.symbol
	ORDER BY s.date ASC, total_sales DESC`

const querySalesByLocation = `
	SELECT s.date, SUM(s.sale_total_cost) AS total_sales, l.locationname, c.symbol AS currency_name
	FROM sales s
	JOIN locations l ON s.loccode = l.loccode
	JOIN currency c ON s.currency_id = c.currency_id
	WHERE s.type IN ('10', '14')
	  AND s.date BETWEEN $1::date AND $2::date
	GROUP BY s.date, l.locationname, c.currency_id, c.symbol`

const querySalesByRoute = `
	SELECT
	    cr.region,
	    l.locationname,
	    c.symbol AS currency_name,
	    SUM(s.sale_total_cost) AS total_sales,
	    SUM(s.paid) AS total_amount_paid,
	    SUM(s.sale_total_cost) - SUM(s.paid) AS total_balance,
	    cu.name AS customer_name,
	    SUM(s.sale_total_cost) AS customer_sales,
	    SUM(s.paid) AS customer_amount_paid,
	    SUM(s.sale_total_cost) - SUM(s.paid) AS customer_balance
	FROM sales s
	JOIN customer_regions cr ON s.region_id = cr.region_id
	JOIN locations l ON s.loccode = l.loccode
	JOIN currency c ON s.currency_id = c.currency_id
	JOIN customers cu ON s.customer_id = cu.id
	WHERE s.type IN ('10', '14')
	  AND s.date BETWEEN $1::date AND $2::date
	GROUP BY cr.region, l.locationname, c.symbol, cu.name
	ORDER BY total_sales DESC`

const querySalesByCategory = `
	SELECT c.category, si.description, SUM(si.quantity_purchased) AS qty, SUM(si.item_total_cost) AS total_sales,
	       SUM(si.item_buy_price * si.quantity_purchased) AS cost,
	       SUM(si.item_total_cost - si.item_buy_price * si.quantity_purchased) AS margin,
	       cur.symbol AS currency_name
	FROM sales s
	JOIN sales_items si ON s.id = si.sale_id
	JOIN items i ON si.item_id = i.id
	JOIN items_categoryii c ON i.category_id = c.id
	JOIN currency cur ON s.currency_id = cur.currency_id
	WHERE s.type IN ('10', '14')
	  AND s.date BETWEEN $1::date AND $2::date
	GROUP BY c.id, c.category, si.description, cur.currency_id, cur.symbol
	ORDER BY total_sales DESC`

const querySalesByItem = `
	SELECT si.description, SUM(si.quantity_purchased) AS qty, SUM(si.item_total_cost) AS total_sales,
	       SUM(si.item_buy_price * si.quantity_purchased) AS cost,
	       SUM(si.item_total_cost) - SUM(si.item_buy_price * si.quantity_purchased) AS margin,
	       c.symbol AS currency_name, si.unit, l.locationname AS location
	FROM sales s
	JOIN sales_items si ON s.id = si.sale_id
	JOIN currency c ON s.currency_id = c.currency_id
	JOIN locations l ON s.loccode = l.loccode
	WHERE s.type IN ('10', '14')
	  AND s.date BETWEEN $1::date AND $2::date
	GROUP BY si.item_id, si.description, si.unit, c.currency_id, c.symbol, l.loccode, l.locationname
	ORDER BY total_sales DESC`

const querySalesItemTrend = `
	SELECT si.description, s.date, SUM(si.quantity_purchased) AS qty,
	       SUM(si.item_total_cost) AS total_sales,
	       SUM(si.item_buy_price * si.quantity_purchased) AS cost,
	       SUM(si.item_total_cost) - SUM(si.item_buy_price * si.quantity_purchased) AS margin,
	       c.symbol AS currency_name, si.unit
	FROM sales s
	JOIN sales_items si ON s.id = si.sale_id
	JOIN currency c ON s.currency_id = c.currency_id
	WHERE s.type IN ('10', '14')
	  AND si.description = $1
	GROUP BY si.item_id, si.description, si.unit, c.currency_id, c.symbol, s.date
	ORDER BY s.date ASC`

const querySalesByCustomer = `
	SELECT
	    c.name,
	    SUM(s.sale_total_cost) AS total_sales,
	    SUM(s.paid) AS amount_paid,
	    SUM(s.balance) AS balance,
	    cur.symbol AS currency_name
	FROM sales s
	JOIN customers c ON s.customer_id = c.id
	JOIN currency cur ON s.currency_id = cur.currency_id
	WHERE s.type IN ('10', '14')
	  AND s.date BETWEEN $1::date AND $2::date
	GROUP BY s.customer_id, c.name, cur.currency_id, cur.symbol
	ORDER BY c.name`

const querySalesInventory = `
	SELECT i.id, i.itemname, l.loccode, l.locationname, st.stockid, SUM(st.qty) AS total_qty, u.unitname
	FROM stockmoves st
	JOIN items i ON st.stockid = i.id
	JOIN items_units u ON st.unit_id = u.id
	JOIN locations l ON l.loccode = st.loccode
	GROUP BY i.id, i.itemname, l.loccode, l.locationname, st.stockid, u.unitname`

const querySalesDefault = `
	SELECT s.date, SUM(s.sale_total_cost) AS total_sales, c.symbol AS currency_name
	FROM sales s
	JOIN currency c ON s.currency_id = c.currency_id
	WHERE s.type IN ('10', '14')
	  AND s.date BETWEEN $1::date AND $2::date
	GROUP BY s.date, c.currency_id, c.symbol`

// ── Service ───────────────────────────────────────────────────────────────────

// SalesReportService generates sales-domain reports.
type SalesReportService interface {
	// Report runs the report for req.Category. An unrecognized category is
	// never rejected: it routes to the default daily sales report.
	Report(ctx context.Context, req SalesReportRequest) (*Envelope, error)
}

type salesReportService struct {
	exec Executor
	now  func() time.Time
}

// NewSalesReportService constructs a SalesReportService backed by the given
// query executor.
func NewSalesReportService(exec Executor) SalesReportService {
	return &salesReportService{exec: exec, now: time.Now}
}

type salesRunner func(ctx context.Context, s *salesReportService, p ResolvedParams) ([]any, error)

// salesReport binds one category to its parameter rule and runner.
type salesReport struct {
	dates       dateRule
	needsFilter bool
	run         salesRunner
}

// salesDefaultReport handles every category string outside the catalog.
var salesDefaultReport = salesReport{dates: datesToday, run: salesFlatRange(querySalesDefault)}

var salesReports = map[string]salesReport{
	"today_hourly": {dates: datesNone, run: salesFlatNoArgs(querySalesTodayHourly)},
	"rep":          {dates: datesToday, run: salesFlatRange(querySalesByRep)},
	"location":     {dates: datesToday, run: salesFlatRange(querySalesByLocation)},
	"route":        {dates: datesToday, run: runRouteSales},
	"category":     {dates: datesToday, run: salesFlatRange(querySalesByCategory)},
	"item":         {dates: datesToday, run: salesFlatRange(querySalesByItem)},
	"item_trend":   {dates: datesNone, needsFilter: true, run: runItemTrend},
	"customer":     {dates: datesToday, run: salesFlatRange(querySalesByCustomer)},
	"inventory":    {dates: datesNone, run: salesFlatNoArgs(querySalesInventory)},
}

func (s *salesReportService) Report(ctx context.Context, req SalesReportRequest) (*Envelope, error) {
	def, ok := salesReports[req.Category]
	if !ok {
		def = salesDefaultReport
	}
	if def.needsFilter && req.FilterName == "" {
		return nil, &MissingParameterError{Category: req.Category, Parameter: "filter_name"}
	}

	from, to := resolveDates(def.dates, req.FromDate, req.ToDate, s.now())
	p := ResolvedParams{From: from, To: to, Filter: req.FilterName}

	items, err := def.run(ctx, s, p)
	if err != nil {
		return nil, &ReportError{Domain: "sales", Err: err}
	}
	return dataEnvelope(items), nil
}

// salesFlatNoArgs returns a runner for a parameterless pass-through category.
func salesFlatNoArgs(query string) salesRunner {
	return func(ctx context.Context, s *salesReportService, _ ResolvedParams) ([]any, error) {
		rows, err := s.exec.Select(ctx, query)
		if err != nil {
			return nil, err
		}
		return rowsAsAny(rows), nil
	}
}

// salesFlatRange returns a runner for a date-windowed pass-through category.
func salesFlatRange(query string) salesRunner {
	return func(ctx context.Context, s *salesReportService, p ResolvedParams) ([]any, error) {
		rows, err := s.exec.Select(ctx, query, p.From, p.To)
		if err != nil {
			return nil, err
		}
		return rowsAsAny(rows), nil
	}
}

func runItemTrend(ctx context.Context, s *salesReportService, p ResolvedParams) ([]any, error) {
	rows, err := s.exec.Select(ctx, querySalesItemTrend, p.Filter)
	if err != nil {
		return nil, err
	}
	return rowsAsAny(rows), nil
}

// ── Route sales grouping ──────────────────────────────────────────────────────

// routeSalesRow is the typed shape of one querySalesByRoute result row.
type routeSalesRow struct {
	Region          string
	LocationName    string
	CurrencyName    string
	CustomerName    string
	CustomerSales   decimal.Decimal
	CustomerPaid    decimal.Decimal
	CustomerBalance decimal.Decimal
}

func newRouteSalesRow(r Row) routeSalesRow {
	return routeSalesRow{
		Region:          rowString(r, "region"),
		LocationName:    rowString(r, "locationname"),
		CurrencyName:    rowString(r, "currency_name"),
		CustomerName:    rowString(r, "customer_name"),
		CustomerSales:   rowDecimal(r, "customer_sales"),
		CustomerPaid:    rowDecimal(r, "customer_amount_paid"),
		CustomerBalance: rowDecimal(r, "customer_balance"),
	}
}

// RouteCustomerEntry is one customer's breakdown inside a route sales group.
// The money fields are fixed 2-decimal strings while the group totals stay
// numeric — a deliberate dual representation kept from the legacy payload.
type RouteCustomerEntry struct {
	CustomerName  string `json:"customer_name"`
	CustomerSales string `json:"customer_sales"`
	AmountPaid    string `json:"amount_paid"`
	Balance       string `json:"balance"`
}

// RouteSalesGroup is one region's sales with nested customer breakdowns.
type RouteSalesGroup struct {
	Region          string               `json:"region"`
	TotalSales      decimal.Decimal      `json:"total_sales"`
	TotalAmountPaid decimal.Decimal      `json:"total_amount_paid"`
	TotalBalance    decimal.Decimal      `json:"total_balance"`
	LocationName    string               `json:"locationname"`
	CurrencyName    string               `json:"currency_name"`
	Customers       []RouteCustomerEntry `json:"customers"`
}

func runRouteSales(ctx context.Context, s *salesReportService, p ResolvedParams) ([]any, error) {
	rows, err := s.exec.Select(ctx, querySalesByRoute, p.From, p.To)
	if err != nil {
		return nil, err
	}

	typed := make([]routeSalesRow, len(rows))
	for i, r := range rows {
		typed[i] = newRouteSalesRow(r)
	}

	groups := groupRows(typed,
		func(r routeSalesRow) string { return r.Region },
		func(r routeSalesRow) *RouteSalesGroup {
			return &RouteSalesGroup{
				Region:       r.Region,
				LocationName: r.LocationName,
				CurrencyName: r.CurrencyName,
				Customers:    []RouteCustomerEntry{},
			}
		},
		func(g *RouteSalesGroup, r routeSalesRow) {
			g.TotalSales = g.TotalSales.Add(r.CustomerSales)
			g.TotalAmountPaid = g.TotalAmountPaid.Add(r.CustomerPaid)
			g.TotalBalance = g.TotalBalance.Add(r.CustomerBalance)
			g.Customers = append(g.Customers, RouteCustomerEntry{
				CustomerName:  r.CustomerName,
				CustomerSales: r.CustomerSales.StringFixed(2),
				AmountPaid:    r.CustomerPaid.StringFixed(2),
				Balance:       r.CustomerBalance.StringFixed(2),
			})
		},
	)
	return groupsAsAny(groups), nil
}

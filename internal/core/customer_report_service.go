package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ── Queries ───────────────────────────────────────────────────────────────────

const queryCustomerOverview = `
	SELECT
	    (SELECT COUNT(*) FROM customers) AS total_customers,
	    (SELECT COUNT(*) FROM customers WHERE startdate >= NOW() - INTERVAL '30 days') AS new_customers_last_30_days,
	    (SELECT COUNT(*) FROM customers WHERE lastserved >= NOW() - INTERVAL '60 days') AS active_customers,
	    (SELECT COUNT(*) FROM customers WHERE lastserved < NOW() - INTERVAL '60 days') AS inactive_customers,
	    (SELECT COUNT(*) FROM customers WHERE bal > 0) AS customers_with_outstanding_balance`

const queryCustomerBalances = `
	SELECT c.code AS customer_id,
	       c.name AS customer_name,
	       c.creditlimit,
	       c.credit,
	       c.bal AS current_balance,
	       c.lastserved AS last_transaction_date
	FROM customers c`

const queryDueInvoices = `
	SELECT
	    c.id AS customer_id,
	    c.name AS customer_name,
	    s.refno AS invoice_reference,
	    s.due_date,
	    s.sale_total_cost AS amount_due,
	    COALESCE(s.paid, 0) AS amount_paid,
	    COALESCE(s.balance, 0) AS balance_due
	FROM sales s
	JOIN customers c ON s.customer_id = c.id
	WHERE s.balance > 0
	  AND s.due_date BETWEEN $1::date AND $2::date
	ORDER BY c.name, s.due_date ASC`

const queryCustomerList = `
	SELECT
	    c.code AS customer_id,
	    c.name AS customer_name,
	    c.email,
	    c.creditlimit,
	    c.bal AS current_balance,
	    c.startdate AS joined_date,
	    c.lastserved AS last_transaction_date
	FROM customers c
	ORDER BY c.name ASC`

const queryAgingSummary = `
	SELECT
	    c.id,
	    c.companyid,
	    c.name,
	    u.symbol AS currency,
	    a.scurrent AS "current",
	    a.d1 AS sd0,
	    a.d2 AS sd1,
	    a.d3 AS sd2,
	    a.d4 AS sd3,
	    a.stotal AS "Total"
	FROM aging a
	INNER JOIN customers c ON a.customercode = c.id
	INNER JOIN cust_type t ON c.cust_type = t.type_id
	INNER JOIN currency u ON c.currency_id = u.currency_id
	ORDER BY c.name ASC`

// ── Service ───────────────────────────────────────────────────────────────────

// CustomerReportService generates customer-domain reports. Unlike sales, the
// customer domain validates categories: an unknown one fails before any query.
type CustomerReportService interface {
	Report(ctx context.Context, req CustomerReportRequest) (*Envelope, error)
}

type customerReportService struct {
	exec Executor
	now  func() time.Time
}

// NewCustomerReportService constructs a CustomerReportService backed by the
// given query executor.
func NewCustomerReportService(exec Executor) CustomerReportService {
	return &customerReportService{exec: exec, now: time.Now}
}

type customerRunner func(ctx context.Context, s *customerReportService, p ResolvedParams) ([]any, error)

type customerReport struct {
	dates dateRule
	run   customerRunner
}

var customerReports = map[string]customerReport{
	"overview":          {dates: datesNone, run: runCustomerOverview},
	"customer_balances": {dates: datesNone, run: runCustomerBalances},
	"due_invoices":      {dates: datesEpochFloor, run: runDueInvoices},
	"customer_list":     {dates: datesNone, run: customerFlat(queryCustomerList)},
	"aging_summary":     {dates: datesNone, run: customerFlat(queryAgingSummary)},
}

func (s *customerReportService) Report(ctx context.Context, req CustomerReportRequest) (*Envelope, error) {
	def, ok := customerReports[req.Category]
	if !ok {
		return nil, &InvalidCategoryError{Domain: "customer", Category: req.Category}
	}

	from, to := resolveDates(def.dates, req.FromDate, req.ToDate, s.now())
	p := ResolvedParams{From: from, To: to, AsOf: req.AsOfDate}

	items, err := def.run(ctx, s, p)
	if err != nil {
		return nil, &ReportError{Domain: "customer", Err: err}
	}
	return dataEnvelope(items), nil
}

func customerFlat(query string) customerRunner {
	return func(ctx context.Context, s *customerReportService, _ ResolvedParams) ([]any, error) {
		rows, err := s.exec.Select(ctx, query)
		if err != nil {
			return nil, err
		}
		return rowsAsAny(rows), nil
	}
}

// runCustomerOverview is a single-row summary: the sole aggregate row passes
// through unmodified.
func runCustomerOverview(ctx context.Context, s *customerReportService, _ ResolvedParams) ([]any, error) {
	row, err := s.exec.SelectOne(ctx, queryCustomerOverview)
	if err != nil {
		return nil, err
	}
	return oneRowAsAny(row), nil
}

// runCustomerBalances appends the optional as-of ceiling the same way the
// source endpoint did: no date means every customer regardless of last
// transaction.
func runCustomerBalances(ctx context.Context, s *customerReportService, p ResolvedParams) ([]any, error) {
	q := queryCustomerBalances
	var args []any
	if p.AsOf != "" {
		q += " WHERE c.lastserved <= $1::date"
		args = append(args, p.AsOf)
	}
	q += " ORDER BY c.lastserved DESC"

	rows, err := s.exec.Select(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return rowsAsAny(rows), nil
}

// ── Due-invoice grouping ──────────────────────────────────────────────────────

// dueInvoiceRow is the typed shape of one queryDueInvoices result row.
type dueInvoiceRow struct {
	CustomerID       int64
	CustomerName     string
	InvoiceReference string
	DueDate          time.Time
	AmountDue        decimal.Decimal
	AmountPaid       decimal.Decimal
	BalanceDue       decimal.Decimal
}

func newDueInvoiceRow(r Row) dueInvoiceRow {
	return dueInvoiceRow{
		CustomerID:       rowInt(r, "customer_id"),
		CustomerName:     rowString(r, "customer_name"),
		InvoiceReference: rowString(r, "invoice_reference"),
		DueDate:          rowTime(r, "due_date"),
		AmountDue:        rowDecimal(r, "amount_due"),
		AmountPaid:       rowDecimal(r, "amount_paid"),
		BalanceDue:       rowDecimal(r, "balance_due"),
	}
}

// DueInvoiceEntry is one open invoice inside a customer's group.
type DueInvoiceEntry struct {
	InvoiceReference string          `json:"invoice_reference"`
	DueDate          time.Time       `json:"due_date"`
	AmountDue        decimal.Decimal `json:"amount_due"`
	AmountPaid       decimal.Decimal `json:"amount_paid"`
	BalanceDue       decimal.Decimal `json:"balance_due"`
}

// DueInvoiceGroup is one customer's open invoices with accumulated totals.
// TotalDue always equals the sum of the entries' AmountDue, and TotalInvoices
// equals len(Invoices).
type DueInvoiceGroup struct {
	CustomerName    string            `json:"customer_name"`
	TotalInvoices   int               `json:"total_invoices"`
	TotalDue        decimal.Decimal   `json:"total_due"`
	TotalPaid       decimal.Decimal   `json:"total_paid"`
	TotalBalanceDue decimal.Decimal   `json:"total_balance_due"`
	Invoices        []DueInvoiceEntry `json:"invoices"`
}

func runDueInvoices(ctx context.Context, s *customerReportService, p ResolvedParams) ([]any, error) {
	rows, err := s.exec.Select(ctx, queryDueInvoices, p.From, p.To)
	if err != nil {
		return nil, err
	}

	typed := make([]dueInvoiceRow, len(rows))
	for i, r := range rows {
		typed[i] = newDueInvoiceRow(r)
	}

	groups := groupRows(typed,
		func(r dueInvoiceRow) int64 { return r.CustomerID },
		func(r dueInvoiceRow) *DueInvoiceGroup {
			return &DueInvoiceGroup{
				CustomerName: r.CustomerName,
				Invoices:     []DueInvoiceEntry{},
			}
		},
		func(g *DueInvoiceGroup, r dueInvoiceRow) {
			g.Invoices = append(g.Invoices, DueInvoiceEntry{
				InvoiceReference: r.InvoiceReference,
				DueDate:          r.DueDate,
				AmountDue:        r.AmountDue,
				AmountPaid:       r.AmountPaid,
				BalanceDue:       r.BalanceDue,
			})
			g.TotalInvoices++
			g.TotalDue = g.TotalDue.Add(r.AmountDue)
			g.TotalPaid = g.TotalPaid.Add(r.AmountPaid)
			g.TotalBalanceDue = g.TotalBalanceDue.Add(r.BalanceDue)
		},
	)
	return groupsAsAny(groups), nil
}

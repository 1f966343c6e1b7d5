package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)
}

func newSalesService(exec *fakeExecutor) *salesReportService {
	return &salesReportService{exec: exec, now: fixedNow}
}

func TestSalesReport_TodayHourly(t *testing.T) {
	exec := &fakeExecutor{rows: []Row{
		{"hour": int64(9), "total_sales": "1200.50", "currency_name": "$"},
		{"hour": int64(10), "total_sales": "300.00", "currency_name": "$"},
	}}
	svc := newSalesService(exec)

	env, err := svc.Report(context.Background(), SalesReportRequest{Category: "today_hourly"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Success != 1 {
		t.Errorf("success = %d, want 1", env.Success)
	}
	if len(env.Data) != 2 {
		t.Errorf("data length = %d, want 2", len(env.Data))
	}
	if len(exec.queries) != 1 || len(exec.args[0]) != 0 {
		t.Errorf("expected one parameterless query, got %d queries with %v", len(exec.queries), exec.args)
	}
}

func TestSalesReport_UnknownCategoryUsesDefault(t *testing.T) {
	exec := &fakeExecutor{}
	svc := newSalesService(exec)

	if _, err := svc.Report(context.Background(), SalesReportRequest{Category: "nonsense"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exec.queries) != 1 || exec.queries[0] != querySalesDefault {
		t.Fatalf("expected the default daily query, got %v", exec.queries)
	}
	// Both bounds default to today.
	if got := exec.args[0]; len(got) != 2 || got[0] != "2026-08-31" || got[1] != "2026-08-31" {
		t.Errorf("default date args = %v, want [2026-08-31 2026-08-31]", got)
	}
}

func TestSalesReport_ItemTrendRequiresFilter(t *testing.T) {
	exec := &fakeExecutor{}
	svc := newSalesService(exec)

	_, err := svc.Report(context.Background(), SalesReportRequest{Category: "item_trend"})
	var missing *MissingParameterError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingParameterError, got %v", err)
	}
	if missing.Parameter != "filter_name" {
		t.Errorf("parameter = %q, want filter_name", missing.Parameter)
	}
	if len(exec.queries) != 0 {
		t.Errorf("expected no query execution, got %d", len(exec.queries))
	}
}

func TestSalesReport_ItemTrendPassesFilter(t *testing.T) {
	exec := &fakeExecutor{}
	svc := newSalesService(exec)

	req := SalesReportRequest{Category: "item_trend", FilterName: "Rice 25kg"}
	if _, err := svc.Report(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := exec.args[0]; len(got) != 1 || got[0] != "Rice 25kg" {
		t.Errorf("args = %v, want [Rice 25kg]", got)
	}
}

func TestSalesReport_RouteGrouping(t *testing.T) {
	exec := &fakeExecutor{rows: []Row{
		{"region": "West Route", "locationname": "Main Depot", "currency_name": "$",
			"customer_name": "Acme Stores", "customer_sales": "100.00", "customer_amount_paid": "60.00", "customer_balance": "40.00"},
		{"region": "West Route", "locationname": "Main Depot", "currency_name": "$",
			"customer_name": "Beta Mart", "customer_sales": "50.50", "customer_amount_paid": "50.50", "customer_balance": "0.00"},
		{"region": "East Route", "locationname": "Main Depot", "currency_name": "$",
			"customer_name": "Gamma Shop", "customer_sales": "20.00", "customer_amount_paid": "0.00", "customer_balance": "20.00"},
	}}
	svc := newSalesService(exec)

	env, err := svc.Report(context.Background(), SalesReportRequest{Category: "route"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.Data) != 2 {
		t.Fatalf("expected 2 route groups, got %d", len(env.Data))
	}

	west, ok := env.Data[0].(*RouteSalesGroup)
	if !ok {
		t.Fatalf("data[0] is %T, want *RouteSalesGroup", env.Data[0])
	}
	if west.Region != "West Route" {
		t.Errorf("first group = %q, want West Route (first appearance order)", west.Region)
	}
	if got := west.TotalSales.String(); got != "150.5" {
		t.Errorf("west total sales = %s, want 150.5", got)
	}
	if got := west.TotalBalance.String(); got != "40" {
		t.Errorf("west total balance = %s, want 40", got)
	}
	if len(west.Customers) != 2 {
		t.Fatalf("west customers = %d, want 2", len(west.Customers))
	}
	if west.Customers[1].CustomerSales != "50.50" {
		t.Errorf("customer sales = %q, want fixed-point 50.50", west.Customers[1].CustomerSales)
	}
}

func TestSalesReport_ExecutorFailure(t *testing.T) {
	cause := &DataAccessError{Err: errors.New("connection reset")}
	exec := &fakeExecutor{err: cause}
	svc := newSalesService(exec)

	_, err := svc.Report(context.Background(), SalesReportRequest{Category: "rep"})
	var reportErr *ReportError
	if !errors.As(err, &reportErr) {
		t.Fatalf("expected ReportError, got %v", err)
	}
	if reportErr.Domain != "sales" {
		t.Errorf("domain = %q, want sales", reportErr.Domain)
	}
	var dataErr *DataAccessError
	if !errors.As(err, &dataErr) {
		t.Errorf("expected wrapped DataAccessError, got %v", err)
	}
}

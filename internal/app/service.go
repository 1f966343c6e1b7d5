package app

import (
	"context"

	"distro-reports/internal/core"
)

// ApplicationService is the single interface the web adapter calls.
// It decouples presentation from report logic. Implementations must contain
// no HTTP status codes and no display logic of any kind.
type ApplicationService interface {
	// SalesReport generates a sales-domain report for the requested category.
	SalesReport(ctx context.Context, req core.SalesReportRequest) (*core.Envelope, error)

	// CustomerReport generates a customer-domain report for the requested category.
	CustomerReport(ctx context.Context, req core.CustomerReportRequest) (*core.Envelope, error)

	// InventoryReport generates an inventory-domain report for the requested category.
	InventoryReport(ctx context.Context, req core.InventoryReportRequest) (*core.Envelope, error)

	// AuthenticateUser verifies legacy credentials and returns a login result
	// on success.
	AuthenticateUser(ctx context.Context, email, password string) (*core.LoginResult, error)
}

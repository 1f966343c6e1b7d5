package app

import (
	"context"

	"distro-reports/internal/core"
)

type appService struct {
	sales     core.SalesReportService
	customers core.CustomerReportService
	inventory core.InventoryReportService
	users     core.UserService
}

// NewAppService wires the domain services into one ApplicationService.
func NewAppService(
	sales core.SalesReportService,
	customers core.CustomerReportService,
	inventory core.InventoryReportService,
	users core.UserService,
) ApplicationService {
	return &appService{
		sales:     sales,
		customers: customers,
		inventory: inventory,
		users:     users,
	}
}

func (s *appService) SalesReport(ctx context.Context, req core.SalesReportRequest) (*core.Envelope, error) {
	return s.sales.Report(ctx, req)
}

func (s *appService) CustomerReport(ctx context.Context, req core.CustomerReportRequest) (*core.Envelope, error) {
	return s.customers.Report(ctx, req)
}

func (s *appService) InventoryReport(ctx context.Context, req core.InventoryReportRequest) (*core.Envelope, error) {
	return s.inventory.Report(ctx, req)
}

func (s *appService) AuthenticateUser(ctx context.Context, email, password string) (*core.LoginResult, error) {
	return s.users.Authenticate(ctx, email, password)
}

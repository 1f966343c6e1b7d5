package web

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"distro-reports/internal/core"
)

// reportSales handles POST /api/reports/sales.
func (h *Handler) reportSales(w http.ResponseWriter, r *http.Request) {
	var req core.SalesReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.writeReport(w, r, func() (*core.Envelope, error) {
		return h.svc.SalesReport(r.Context(), req)
	})
}

// reportCustomers handles POST /api/reports/customers.
func (h *Handler) reportCustomers(w http.ResponseWriter, r *http.Request) {
	var req core.CustomerReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.writeReport(w, r, func() (*core.Envelope, error) {
		return h.svc.CustomerReport(r.Context(), req)
	})
}

// reportInventory handles POST /api/reports/inventory.
func (h *Handler) reportInventory(w http.ResponseWriter, r *http.Request) {
	var req core.InventoryReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.writeReport(w, r, func() (*core.Envelope, error) {
		return h.svc.InventoryReport(r.Context(), req)
	})
}

// writeReport runs one report and maps its error taxonomy to HTTP statuses:
// caller mistakes (bad category, missing required filter) are 400, everything
// else is 500 with the detail kept server-side.
func (h *Handler) writeReport(w http.ResponseWriter, r *http.Request, run func() (*core.Envelope, error)) {
	env, err := run()
	if err == nil {
		writeJSON(w, env)
		return
	}

	var invalidCategory *core.InvalidCategoryError
	var missingParam *core.MissingParameterError
	switch {
	case errors.As(err, &invalidCategory):
		writeError(w, r, invalidCategory.Error(), http.StatusBadRequest)
	case errors.As(err, &missingParam):
		writeError(w, r, missingParam.Error(), http.StatusBadRequest)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("report failed")
		writeError(w, r, err.Error(), http.StatusInternalServerError)
	}
}

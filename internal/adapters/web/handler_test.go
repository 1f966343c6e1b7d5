package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"distro-reports/internal/adapters/web"
	"distro-reports/internal/core"
)

type fakeService struct {
	salesEnv     *core.Envelope
	salesErr     error
	customerEnv  *core.Envelope
	customerErr  error
	inventoryEnv *core.Envelope
	inventoryErr error
	loginResult  *core.LoginResult
	loginErr     error
}

func (f *fakeService) SalesReport(context.Context, core.SalesReportRequest) (*core.Envelope, error) {
	return f.salesEnv, f.salesErr
}

func (f *fakeService) CustomerReport(context.Context, core.CustomerReportRequest) (*core.Envelope, error) {
	return f.customerEnv, f.customerErr
}

func (f *fakeService) InventoryReport(context.Context, core.InventoryReportRequest) (*core.Envelope, error) {
	return f.inventoryEnv, f.inventoryErr
}

func (f *fakeService) AuthenticateUser(context.Context, string, string) (*core.LoginResult, error) {
	return f.loginResult, f.loginErr
}

func newTestHandler(svc *fakeService) http.Handler {
	logger := zerolog.Nop()
	return web.NewHandler(svc, &logger, "", "test-secret")
}

// loginCookie authenticates against the handler and returns the auth cookie.
func loginCookie(t *testing.T, handler http.Handler) *http.Cookie {
	t.Helper()
	body := bytes.NewBufferString(`{"email":"jdoe@example.com","password":"secret123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == "auth_token" {
			return c
		}
	}
	t.Fatal("auth_token cookie not set")
	return nil
}

func authedService() *fakeService {
	return &fakeService{
		loginResult: &core.LoginResult{IsSuccess: 1, Success: 1, UserID: 7, LocCode: "L01", Username: "jdoe", RoleID: 2},
	}
}

func TestHealth(t *testing.T) {
	handler := newTestHandler(&fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
}

func TestReportRequiresAuth(t *testing.T) {
	handler := newTestHandler(&fakeService{})

	req := httptest.NewRequest(http.MethodPost, "/api/reports/sales", bytes.NewBufferString(`{"category":"rep"}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := &fakeService{loginErr: &core.CredentialError{Reason: "Invalid Password!"}}
	handler := newTestHandler(svc)

	body := bytes.NewBufferString(`{"email":"jdoe@example.com","password":"nope"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rr.Code)
	}
	var resp struct {
		Success int    `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if resp.Success != 0 || resp.Message != "Invalid Password!" {
		t.Errorf("body = %+v, want success 0 with the credential message", resp)
	}
}

func TestSalesReportEndpoint(t *testing.T) {
	svc := authedService()
	svc.salesEnv = &core.Envelope{Success: 1, Data: []any{core.Row{"hour": 9}}}
	handler := newTestHandler(svc)
	cookie := loginCookie(t, handler)

	body := bytes.NewBufferString(`{"category":"today_hourly"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/reports/sales", body)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	var env core.Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if env.Success != 1 || len(env.Data) != 1 {
		t.Errorf("envelope = %+v, want success 1 with one entry", env)
	}
}

func TestReportErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid category", &core.InvalidCategoryError{Domain: "customer", Category: "bogus"}, http.StatusBadRequest},
		{"missing parameter", &core.MissingParameterError{Category: "item_trend", Parameter: "filter_name"}, http.StatusBadRequest},
		{"report failure", &core.ReportError{Domain: "customer", Err: errors.New("boom")}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := authedService()
			svc.customerErr = tt.err
			handler := newTestHandler(svc)
			cookie := loginCookie(t, handler)

			body := bytes.NewBufferString(`{"category":"bogus"}`)
			req := httptest.NewRequest(http.MethodPost, "/api/reports/customers", body)
			req.AddCookie(cookie)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", rr.Code, tt.wantStatus, rr.Body.String())
			}
		})
	}
}

func TestReportRejectsMalformedBody(t *testing.T) {
	svc := authedService()
	handler := newTestHandler(svc)
	cookie := loginCookie(t, handler)

	req := httptest.NewRequest(http.MethodPost, "/api/reports/inventory", bytes.NewBufferString(`{not json`))
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/domain"
	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/ports"
)

type stubCustomerService struct {
	listFn func(ctx context.Context, filter ports.ListCustomersFilter) ([]*domain.Customer, int64, error)
}

func (s *stubCustomerService) ListByClinic(ctx context.Context, filter ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
	return s.listFn(ctx, filter)
}

func TestClinicHandler_ListCustomers_Success(t *testing.T) {
	customers := make([]*domain.Customer, 0, 10)
	for i := 0; i < 10; i++ {
		customers = append(customers, &domain.Customer{
			ID:       fmt.Sprintf("cust_%d", i),
			ClinicID: "clinic_1",
			Username: fmt.Sprintf("user%d", i),
			Roles:    []domain.Role{{ID: "r1", Name: domain.RoleUser}},
		})
	}
	svc := &stubCustomerService{
		listFn: func(ctx context.Context, filter ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
			if filter.ClinicID != "clinic_1" || filter.Page != 2 || filter.Limit != 10 {
				t.Fatalf("unexpected filter: %+v", filter)
			}
			return customers, 25, nil
		},
	}
	handler := NewClinicHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/api/clinic/clinic_1/customers?page=2&limit=10", "")
	c.SetParamNames("clinicId")
	c.SetParamValues("clinic_1")

	if err := handler.ListCustomers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data       []map[string]any `json:"data"`
		Pagination struct {
			Total      int64 `json:"total"`
			Page       int   `json:"page"`
			Limit      int   `json:"limit"`
			TotalPages int   `json:"total_pages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(resp.Data))
	}
	if resp.Pagination.Total != 25 || resp.Pagination.TotalPages != 3 || resp.Pagination.Page != 2 {
		t.Fatalf("unexpected pagination: %+v", resp.Pagination)
	}
	for _, row := range resp.Data {
		if _, ok := row["passwordHash"]; ok {
			t.Fatalf("password hash leaked: %+v", row)
		}
		if _, ok := row["password"]; ok {
			t.Fatalf("password leaked: %+v", row)
		}
	}
}

func TestClinicHandler_ListCustomers_Defaults(t *testing.T) {
	svc := &stubCustomerService{
		listFn: func(ctx context.Context, filter ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
			if filter.Page != 1 || filter.Limit != 20 {
				t.Fatalf("expected defaults, got %+v", filter)
			}
			return nil, 0, nil
		},
	}
	handler := NewClinicHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/api/clinic/clinic_1/customers", "")
	c.SetParamNames("clinicId")
	c.SetParamValues("clinic_1")

	if err := handler.ListCustomers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestClinicHandler_ListCustomers_LimitClamped(t *testing.T) {
	svc := &stubCustomerService{
		listFn: func(ctx context.Context, filter ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
			if filter.Limit != 100 {
				t.Fatalf("expected limit clamped to 100, got %d", filter.Limit)
			}
			return nil, 0, nil
		},
	}
	handler := NewClinicHandler(svc)

	c, _ := newTestContext(t, http.MethodGet, "/api/clinic/clinic_1/customers?limit=500", "")
	c.SetParamNames("clinicId")
	c.SetParamValues("clinic_1")

	if err := handler.ListCustomers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestClinicHandler_ListCustomers_BadQueryFallsBack(t *testing.T) {
	svc := &stubCustomerService{
		listFn: func(ctx context.Context, filter ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
			if filter.Page != 1 || filter.Limit != 20 {
				t.Fatalf("expected fallbacks, got %+v", filter)
			}
			return nil, 0, nil
		},
	}
	handler := NewClinicHandler(svc)

	c, _ := newTestContext(t, http.MethodGet, "/api/clinic/clinic_1/customers?page=abc&limit=-4", "")
	c.SetParamNames("clinicId")
	c.SetParamValues("clinic_1")

	if err := handler.ListCustomers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestClinicHandler_ListCustomers_UnknownClinic(t *testing.T) {
	svc := &stubCustomerService{
		listFn: func(ctx context.Context, filter ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
			return nil, 0, domain.ErrClinicNotFound
		},
	}
	handler := NewClinicHandler(svc)

	c, _ := newTestContext(t, http.MethodGet, "/api/clinic/ghost/customers", "")
	c.SetParamNames("clinicId")
	c.SetParamValues("ghost")

	if err := handler.ListCustomers(c); !errors.Is(err, domain.ErrClinicNotFound) {
		t.Fatalf("expected ErrClinicNotFound, got %v", err)
	}
}

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/domain"
	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/ports"
)

// ClinicHandler exposes read access to a clinic's customer roster.
type ClinicHandler struct {
	customers ports.CustomerService
}

func NewClinicHandler(customers ports.CustomerService) *ClinicHandler {
	return &ClinicHandler{customers: customers}
}

// customerResponse is the transport view of a customer. The password hash is
// not representable here at all.
type customerResponse struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Address     string    `json:"address,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	Roles       []string  `json:"roles"`
	LastSeen    time.Time `json:"lastSeen"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listCustomersResponse struct {
	Data       []customerResponse `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// ListCustomers handles GET /api/clinic/:clinicId/customers.
//
// @Summary      List a clinic's customers
// @Tags         clinic
// @Produce      json
// @Security     BearerAuth
// @Param        clinicId  path      string  true   "Clinic ID"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Rows per page (max 100)"
// @Success      200       {object}  listCustomersResponse
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /api/clinic/{clinicId}/customers [get]
func (h *ClinicHandler) ListCustomers(c echo.Context) error {
	filter := ports.ListCustomersFilter{
		ClinicID: c.Param("clinicId"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 20),
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	customers, total, err := h.customers.ListByClinic(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	data := make([]customerResponse, 0, len(customers))
	for _, cust := range customers {
		data = append(data, toCustomerResponse(cust))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return c.JSON(http.StatusOK, listCustomersResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      total,
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalPages: totalPages,
		},
	})
}

func toCustomerResponse(c *domain.Customer) customerResponse {
	return customerResponse{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Username:    c.Username,
		Email:       c.Email,
		Address:     c.Address,
		PhoneNumber: c.PhoneNumber,
		Gender:      c.Gender,
		Roles:       domain.RoleNames(c.Roles),
		LastSeen:    c.LastSeen,
	}
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

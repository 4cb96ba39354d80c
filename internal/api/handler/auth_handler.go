package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/VGabriel45/VetDbAdministratorBackend/internal/api/metrics"
	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/domain"
	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/ports"
)

// AuthHandler exposes signin and the two signup workflows.
type AuthHandler struct {
	auth         ports.AuthService
	registration ports.RegistrationService
}

func NewAuthHandler(auth ports.AuthService, registration ports.RegistrationService) *AuthHandler {
	return &AuthHandler{auth: auth, registration: registration}
}

// SignIn authenticates a customer or clinic account and returns a JWT.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  signinResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.auth.SignIn(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.SigninAttemptsTotal.WithLabelValues(signinResultLabel(err)).Inc()
		return err
	}
	metrics.SigninAttemptsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, signinResponse{
		Token:    result.Token,
		ID:       result.ID,
		Username: result.Username,
		Email:    result.Email,
		Roles:    result.Roles,
	})
}

// SignupCustomer registers a customer under a clinic. The generated password
// is emailed to the customer, never returned in the response.
//
// @Summary      Register a customer under a clinic
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        clinicId  path      string                 true  "Clinic ID"
// @Param        body      body      signupCustomerRequest  true  "Customer details"
// @Success      200       {object}  messageResponse
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Failure      502       {object}  errorResponse
// @Router       /api/auth/clinic/{clinicId}/signupCustomer [post]
func (h *AuthHandler) SignupCustomer(c echo.Context) error {
	var req signupCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	_, err := h.registration.SignupCustomer(c.Request().Context(), ports.SignupCustomerInput{
		ClinicID:    c.Param("clinicId"),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Username:    req.Username,
		Email:       req.Email,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
		Roles:       req.Roles,
	})
	if err != nil {
		observeSignupError(err)
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("customer").Inc()
	metrics.RegistrationDuration.WithLabelValues("customer").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, messageResponse{
		Message: "customer registered successfully, a generated password has been sent to the customer email address",
	})
}

// SignupClinic registers a new clinic tenant.
//
// @Summary      Register a clinic
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupClinicRequest  true  "Clinic details"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/clinic/signup [post]
func (h *AuthHandler) SignupClinic(c echo.Context) error {
	var req signupClinicRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	_, err := h.registration.SignupClinic(c.Request().Context(), ports.SignupClinicInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Roles:    req.Roles,
	})
	if err != nil {
		observeSignupError(err)
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("clinic").Inc()
	metrics.RegistrationDuration.WithLabelValues("clinic").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, messageResponse{Message: "clinic registered successfully"})
}

// Me echoes the identity asserted by the presented token.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{
		ID:       id.ID,
		Username: id.Username,
		Email:    id.Email,
		Roles:    id.Roles,
	})
}

func signinResultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	default:
		return "error"
	}
}

func observeSignupError(err error) {
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		metrics.RegistrationConflictsTotal.WithLabelValues("username").Inc()
	case errors.Is(err, domain.ErrEmailTaken):
		metrics.RegistrationConflictsTotal.WithLabelValues("email").Inc()
	case errors.Is(err, domain.ErrClinicNameTaken):
		metrics.RegistrationConflictsTotal.WithLabelValues("clinic_name").Inc()
	case errors.Is(err, domain.ErrClinicEmailTaken):
		metrics.RegistrationConflictsTotal.WithLabelValues("clinic_email").Inc()
	case errors.Is(err, domain.ErrNotificationFailed):
		metrics.NotificationFailuresTotal.Inc()
	}
}

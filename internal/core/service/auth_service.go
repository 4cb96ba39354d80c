package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/domain"
	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/ports"
)

// AuthService implements signin over both account kinds: customers (looked up
// by username) and clinics (looked up by name). Failures are deliberately
// indistinguishable to the caller so usernames cannot be enumerated.
type AuthService struct {
	customers ports.CustomerRepository
	clinics   ports.ClinicRepository
	throttle  ports.SigninThrottle
	log       zerolog.Logger
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(
	customers ports.CustomerRepository,
	clinics ports.ClinicRepository,
	throttle ports.SigninThrottle,
	log zerolog.Logger,
	jwtSecret string,
	tokenTTL time.Duration,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		customers: customers,
		clinics:   clinics,
		throttle:  throttle,
		log:       log,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func (s *AuthService) SignIn(ctx context.Context, username, password string) (*ports.SignInResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	// 1. Throttle check — a throttle store outage never blocks signin.
	if s.throttle != nil {
		allowed, err := s.throttle.Allowed(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("throttle check failed, allowing attempt")
		} else if !allowed {
			return nil, domain.ErrTooManyAttempts
		}
	}

	// 2. Resolve the principal. Lookup order: customers, then clinics.
	principal, customer, err := s.findPrincipal(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) || errors.Is(err, domain.ErrClinicNotFound) {
			s.recordFailure(ctx, username)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 3. Verify the password hash.
	if bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}

	// 4. Issue the session token.
	roles := domain.RoleNames(principal.Roles)
	token, err := s.generateToken(principal, roles)
	if err != nil {
		return nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to reset signin throttle")
		}
	}

	// 5. Customers get their last_seen bumped; non-fatal on failure.
	if customer != nil {
		if err := s.customers.TouchLastSeen(ctx, customer.ID, time.Now().UTC()); err != nil {
			s.log.Warn().Err(err).Str("customer_id", customer.ID).Msg("failed to update last_seen")
		}
	}

	s.log.Info().Str("username", username).Strs("roles", roles).Msg("signin succeeded")

	return &ports.SignInResult{
		Token:    token,
		ID:       principal.ID,
		Username: principal.Username,
		Email:    principal.Email,
		Roles:    roles,
	}, nil
}

// findPrincipal resolves username to an authenticated identity. The second
// return value is non-nil only when the principal is a customer.
func (s *AuthService) findPrincipal(ctx context.Context, username string) (*domain.Principal, *domain.Customer, error) {
	customer, err := s.customers.FindByUsername(ctx, username)
	if err == nil {
		return &domain.Principal{
			ID:           customer.ID,
			Username:     customer.Username,
			Email:        customer.Email,
			PasswordHash: customer.PasswordHash,
			Roles:        customer.Roles,
		}, customer, nil
	}
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		return nil, nil, err
	}

	clinic, err := s.clinics.FindByName(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	return &domain.Principal{
		ID:           clinic.ID,
		Username:     clinic.Name,
		Email:        clinic.Email,
		PasswordHash: clinic.PasswordHash,
		Roles:        clinic.Roles,
	}, nil, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to record signin failure")
	}
}

func (s *AuthService) generateToken(p *domain.Principal, roles []string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      p.ID,
		"username": p.Username,
		"email":    p.Email,
		"roles":    roles,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/domain"
	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/ports"
)

// RegistrationService implements the customer and clinic signup workflows.
// Both are linear: uniqueness checks, role resolution, persistence, and for
// customers a generated password delivered by the notifier. There is no
// compensation — a notification failure after persistence is surfaced to the
// caller with the entity already stored.
type RegistrationService struct {
	customers ports.CustomerRepository
	clinics   ports.ClinicRepository
	roles     ports.RoleRepository
	notifier  ports.Notifier
	log       zerolog.Logger
	policy    PasswordPolicy
}

func NewRegistrationService(
	customers ports.CustomerRepository,
	clinics ports.ClinicRepository,
	roles ports.RoleRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		customers: customers,
		clinics:   clinics,
		roles:     roles,
		notifier:  notifier,
		log:       log,
		policy:    DefaultPasswordPolicy(),
	}
}

func (s *RegistrationService) SignupCustomer(ctx context.Context, input ports.SignupCustomerInput) (*domain.Customer, error) {
	// 1. The target clinic must exist before anything else happens.
	clinic, err := s.clinics.FindByID(ctx, input.ClinicID)
	if err != nil {
		return nil, err
	}

	// 2. Uniqueness is scoped to the clinic: the same username may exist
	// under a different tenant.
	taken, err := s.customers.ExistsByUsername(ctx, clinic.ID, input.Username)
	if err != nil {
		return nil, fmt.Errorf("signup customer: check username: %w", err)
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	taken, err = s.customers.ExistsByEmail(ctx, clinic.ID, input.Email)
	if err != nil {
		return nil, fmt.Errorf("signup customer: check email: %w", err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	// 3. Absent roles default to the basic user role.
	roles, err := resolveRoles(ctx, s.roles, input.Roles, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	// 4. Generate a fresh password for this call only; the customer never
	// chooses one and only the hash is persisted.
	password, err := GeneratePassword(s.policy)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("signup customer: hash password: %w", err)
	}

	now := time.Now().UTC()
	customer := &domain.Customer{
		ID:           uuid.NewString(),
		ClinicID:     clinic.ID,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Address:      input.Address,
		PhoneNumber:  input.PhoneNumber,
		Gender:       input.Gender,
		Roles:        roles,
		LastSeen:     now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("customer_id", customer.ID).
		Str("clinic_id", clinic.ID).
		Str("username", customer.Username).
		Strs("roles", domain.RoleNames(roles)).
		Msg("customer registered")

	// 5. Deliver the plaintext password out-of-band. The customer is already
	// persisted at this point; a delivery failure is reported, not rolled back.
	if err := s.notifier.SendGeneratedPassword(ctx, customer, password); err != nil {
		s.log.Error().Err(err).
			Str("customer_id", customer.ID).
			Msg("customer persisted but password notification failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrNotificationFailed, err)
	}

	return customer, nil
}

func (s *RegistrationService) SignupClinic(ctx context.Context, input ports.SignupClinicInput) (*domain.Clinic, error) {
	// 1. Clinic name and email are unique across all tenants.
	taken, err := s.clinics.ExistsByName(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("signup clinic: check name: %w", err)
	}
	if taken {
		return nil, domain.ErrClinicNameTaken
	}

	taken, err = s.clinics.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("signup clinic: check email: %w", err)
	}
	if taken {
		return nil, domain.ErrClinicEmailTaken
	}

	// 2. A clinic account administers its tenant, so the default role is admin.
	roles, err := resolveRoles(ctx, s.roles, input.Roles, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	// 3. Clinics choose their own password; only the hash is stored.
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("signup clinic: hash password: %w", err)
	}

	now := time.Now().UTC()
	clinic := &domain.Clinic{
		ID:           uuid.NewString(),
		Name:         input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.clinics.Create(ctx, clinic); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("clinic_id", clinic.ID).
		Str("name", clinic.Name).
		Strs("roles", domain.RoleNames(roles)).
		Msg("clinic registered")

	return clinic, nil
}

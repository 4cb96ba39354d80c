package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/domain"
	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/ports"
)

func testClinic() *domain.Clinic {
	return &domain.Clinic{
		ID:        "clinic_1",
		Name:      "Acme",
		Email:     "acme@example.com",
		CreatedAt: time.Now().UTC(),
	}
}

func newRegistrationService(customers *stubCustomerRepo, clinics *stubClinicRepo, notifier *stubNotifier) *RegistrationService {
	return NewRegistrationService(customers, clinics, newStubRoleRepo(), notifier, zerolog.Nop())
}

func customerInput(clinicID string) ports.SignupCustomerInput {
	return ports.SignupCustomerInput{
		ClinicID:    clinicID,
		FirstName:   "Alice",
		LastName:    "Smith",
		Username:    "alice",
		Email:       "alice@example.com",
		Address:     "1 Main St",
		PhoneNumber: "555-0100",
		Gender:      "female",
	}
}

func TestSignupCustomer_DefaultRoleIsUser(t *testing.T) {
	customers := newStubCustomerRepo()
	notifier := &stubNotifier{}
	svc := newRegistrationService(customers, newStubClinicRepo(testClinic()), notifier)

	customer, err := svc.SignupCustomer(context.Background(), customerInput("clinic_1"))
	if err != nil {
		t.Fatalf("SignupCustomer returned error: %v", err)
	}
	if len(customer.Roles) != 1 || customer.Roles[0].Name != domain.RoleUser {
		t.Fatalf("expected exactly [ROLE_USER], got %v", domain.RoleNames(customer.Roles))
	}
	if customer.ClinicID != "clinic_1" {
		t.Fatalf("customer not bound to clinic: %s", customer.ClinicID)
	}
}

func TestSignupCustomer_RoleTokenUnion(t *testing.T) {
	cases := []struct {
		name   string
		tokens []string
		want   []domain.RoleName
	}{
		{"admin only", []string{"admin"}, []domain.RoleName{domain.RoleAdmin}},
		{"mod only", []string{"mod"}, []domain.RoleName{domain.RoleModerator}},
		{"unknown falls back to user", []string{"superuser"}, []domain.RoleName{domain.RoleUser}},
		{"union", []string{"admin", "mod", "other"}, []domain.RoleName{domain.RoleAdmin, domain.RoleModerator, domain.RoleUser}},
		{"duplicates collapse", []string{"admin", "admin", "weird", "stranger"}, []domain.RoleName{domain.RoleAdmin, domain.RoleUser}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newRegistrationService(newStubCustomerRepo(), newStubClinicRepo(testClinic()), &stubNotifier{})
			input := customerInput("clinic_1")
			input.Roles = tc.tokens

			customer, err := svc.SignupCustomer(context.Background(), input)
			if err != nil {
				t.Fatalf("SignupCustomer returned error: %v", err)
			}
			if len(customer.Roles) != len(tc.want) {
				t.Fatalf("expected %d roles, got %v", len(tc.want), domain.RoleNames(customer.Roles))
			}
			for i, want := range tc.want {
				if customer.Roles[i].Name != want {
					t.Fatalf("role %d: expected %s, got %s", i, want, customer.Roles[i].Name)
				}
			}
		})
	}
}

func TestSignupCustomer_DuplicateUsernameSameClinic(t *testing.T) {
	customers := newStubCustomerRepo()
	notifier := &stubNotifier{}
	svc := newRegistrationService(customers, newStubClinicRepo(testClinic()), notifier)

	if _, err := svc.SignupCustomer(context.Background(), customerInput("clinic_1")); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	input := customerInput("clinic_1")
	input.Email = "alice2@example.com" // different email, same username
	if _, err := svc.SignupCustomer(context.Background(), input); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if len(customers.customers) != 1 {
		t.Fatalf("conflicting signup must not persist, have %d customers", len(customers.customers))
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("conflicting signup must not notify, have %d notifications", len(notifier.sent))
	}
}

func TestSignupCustomer_SameUsernameDifferentClinic(t *testing.T) {
	other := &domain.Clinic{ID: "clinic_2", Name: "Beta", Email: "beta@example.com"}
	svc := newRegistrationService(newStubCustomerRepo(), newStubClinicRepo(testClinic(), other), &stubNotifier{})

	if _, err := svc.SignupCustomer(context.Background(), customerInput("clinic_1")); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	// Uniqueness is tenant-scoped: "alice" is free under clinic_2.
	if _, err := svc.SignupCustomer(context.Background(), customerInput("clinic_2")); err != nil {
		t.Fatalf("signup under second clinic failed: %v", err)
	}
}

func TestSignupCustomer_DuplicateEmail(t *testing.T) {
	svc := newRegistrationService(newStubCustomerRepo(), newStubClinicRepo(testClinic()), &stubNotifier{})

	if _, err := svc.SignupCustomer(context.Background(), customerInput("clinic_1")); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	input := customerInput("clinic_1")
	input.Username = "alice2"
	if _, err := svc.SignupCustomer(context.Background(), input); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignupCustomer_ClinicNotFound(t *testing.T) {
	customers := newStubCustomerRepo()
	notifier := &stubNotifier{}
	svc := newRegistrationService(customers, newStubClinicRepo(), notifier)

	if _, err := svc.SignupCustomer(context.Background(), customerInput("missing")); !errors.Is(err, domain.ErrClinicNotFound) {
		t.Fatalf("expected ErrClinicNotFound, got %v", err)
	}
	if len(customers.customers) != 0 {
		t.Fatalf("no customer should be persisted")
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("no notification should be sent")
	}
}

func TestSignupCustomer_PasswordHashedAndNotified(t *testing.T) {
	customers := newStubCustomerRepo()
	notifier := &stubNotifier{}
	svc := newRegistrationService(customers, newStubClinicRepo(testClinic()), notifier)

	customer, err := svc.SignupCustomer(context.Background(), customerInput("clinic_1"))
	if err != nil {
		t.Fatalf("SignupCustomer returned error: %v", err)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.sent))
	}
	plaintext := notifier.sent[0].password
	if plaintext == "" {
		t.Fatalf("notification carries no password")
	}
	if customer.PasswordHash == plaintext {
		t.Fatalf("plaintext password must never be persisted")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(plaintext)); err != nil {
		t.Fatalf("stored hash does not verify against notified password: %v", err)
	}
	if len(customers.customers) != 1 || customers.customers[0].PasswordHash != customer.PasswordHash {
		t.Fatalf("persisted hash mismatch")
	}
}

func TestSignupCustomer_FreshPasswordPerCall(t *testing.T) {
	notifier := &stubNotifier{}
	other := &domain.Clinic{ID: "clinic_2", Name: "Beta", Email: "beta@example.com"}
	svc := newRegistrationService(newStubCustomerRepo(), newStubClinicRepo(testClinic(), other), notifier)

	if _, err := svc.SignupCustomer(context.Background(), customerInput("clinic_1")); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.SignupCustomer(context.Background(), customerInput("clinic_2")); err != nil {
		t.Fatalf("second signup failed: %v", err)
	}
	if notifier.sent[0].password == notifier.sent[1].password {
		t.Fatalf("two registrations received the same generated password")
	}
}

func TestSignupCustomer_NotificationFailureAfterPersist(t *testing.T) {
	customers := newStubCustomerRepo()
	notifier := &stubNotifier{sendErr: errors.New("smtp is down")}
	svc := newRegistrationService(customers, newStubClinicRepo(testClinic()), notifier)

	_, err := svc.SignupCustomer(context.Background(), customerInput("clinic_1"))
	if !errors.Is(err, domain.ErrNotificationFailed) {
		t.Fatalf("expected ErrNotificationFailed, got %v", err)
	}
	// No compensation: the customer stays persisted.
	if len(customers.customers) != 1 {
		t.Fatalf("customer should remain persisted after notification failure")
	}
}

func TestSignupClinic_DefaultRoleIsAdmin(t *testing.T) {
	clinics := newStubClinicRepo()
	svc := newRegistrationService(newStubCustomerRepo(), clinics, &stubNotifier{})

	clinic, err := svc.SignupClinic(context.Background(), ports.SignupClinicInput{
		Username: "Acme",
		Password: "s3cret-pass",
		Email:    "acme@example.com",
	})
	if err != nil {
		t.Fatalf("SignupClinic returned error: %v", err)
	}
	if len(clinic.Roles) != 1 || clinic.Roles[0].Name != domain.RoleAdmin {
		t.Fatalf("expected exactly [ROLE_ADMIN], got %v", domain.RoleNames(clinic.Roles))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(clinic.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Fatalf("stored hash does not verify against supplied password: %v", err)
	}
}

func TestSignupClinic_NameConflict(t *testing.T) {
	svc := newRegistrationService(newStubCustomerRepo(), newStubClinicRepo(testClinic()), &stubNotifier{})

	_, err := svc.SignupClinic(context.Background(), ports.SignupClinicInput{
		Username: "Acme",
		Password: "pass",
		Email:    "fresh@example.com",
	})
	if !errors.Is(err, domain.ErrClinicNameTaken) {
		t.Fatalf("expected ErrClinicNameTaken, got %v", err)
	}
}

func TestSignupClinic_EmailConflict(t *testing.T) {
	svc := newRegistrationService(newStubCustomerRepo(), newStubClinicRepo(testClinic()), &stubNotifier{})

	_, err := svc.SignupClinic(context.Background(), ports.SignupClinicInput{
		Username: "Fresh",
		Password: "pass",
		Email:    "acme@example.com",
	})
	if !errors.Is(err, domain.ErrClinicEmailTaken) {
		t.Fatalf("expected ErrClinicEmailTaken, got %v", err)
	}
}

func TestSignupClinic_ExplicitRoles(t *testing.T) {
	svc := newRegistrationService(newStubCustomerRepo(), newStubClinicRepo(), &stubNotifier{})

	clinic, err := svc.SignupClinic(context.Background(), ports.SignupClinicInput{
		Username: "Acme",
		Password: "pass",
		Email:    "acme@example.com",
		Roles:    []string{"mod"},
	})
	if err != nil {
		t.Fatalf("SignupClinic returned error: %v", err)
	}
	if len(clinic.Roles) != 1 || clinic.Roles[0].Name != domain.RoleModerator {
		t.Fatalf("expected [ROLE_MODERATOR], got %v", domain.RoleNames(clinic.Roles))
	}
}

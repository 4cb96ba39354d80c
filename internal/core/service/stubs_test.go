package service

import (
	"context"
	"fmt"
	"time"

	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/domain"
	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/ports"
)

// In-memory stand-ins for the mongo repositories, shared by the service tests.

type stubCustomerRepo struct {
	customers []*domain.Customer
	createErr error
	touched   map[string]time.Time
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{touched: make(map[string]time.Time)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *domain.Customer) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *c
	r.customers = append(r.customers, &clone)
	return nil
}

func (r *stubCustomerRepo) ExistsByUsername(_ context.Context, clinicID, username string) (bool, error) {
	for _, c := range r.customers {
		if c.ClinicID == clinicID && c.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCustomerRepo) ExistsByEmail(_ context.Context, clinicID, email string) (bool, error) {
	for _, c := range r.customers {
		if c.ClinicID == clinicID && c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCustomerRepo) FindByUsername(_ context.Context, username string) (*domain.Customer, error) {
	for _, c := range r.customers {
		if c.Username == username {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

func (r *stubCustomerRepo) TouchLastSeen(_ context.Context, id string, at time.Time) error {
	r.touched[id] = at
	return nil
}

func (r *stubCustomerRepo) List(_ context.Context, filter ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
	var matched []*domain.Customer
	for _, c := range r.customers {
		if c.ClinicID == filter.ClinicID {
			clone := *c
			matched = append(matched, &clone)
		}
	}
	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

type stubClinicRepo struct {
	clinics map[string]*domain.Clinic // by ID
}

func newStubClinicRepo(clinics ...*domain.Clinic) *stubClinicRepo {
	r := &stubClinicRepo{clinics: make(map[string]*domain.Clinic)}
	for _, c := range clinics {
		r.clinics[c.ID] = c
	}
	return r
}

func (r *stubClinicRepo) Create(_ context.Context, c *domain.Clinic) error {
	clone := *c
	r.clinics[c.ID] = &clone
	return nil
}

func (r *stubClinicRepo) FindByID(_ context.Context, id string) (*domain.Clinic, error) {
	c, ok := r.clinics[id]
	if !ok {
		return nil, domain.ErrClinicNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubClinicRepo) FindByName(_ context.Context, name string) (*domain.Clinic, error) {
	for _, c := range r.clinics {
		if c.Name == name {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrClinicNotFound
}

func (r *stubClinicRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	_, err := r.FindByName(context.Background(), name)
	return err == nil, nil
}

func (r *stubClinicRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, c := range r.clinics {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type stubRoleRepo struct {
	roles map[domain.RoleName]*domain.Role
}

func newStubRoleRepo() *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[domain.RoleName]*domain.Role)}
	for i, name := range domain.CanonicalRoles {
		r.roles[name] = &domain.Role{ID: fmt.Sprintf("role_%d", i+1), Name: name}
	}
	return r
}

func (r *stubRoleRepo) FindByName(_ context.Context, name domain.RoleName) (*domain.Role, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	clone := *role
	return &clone, nil
}

func (r *stubRoleRepo) EnsureCanonicalRoles(_ context.Context) error { return nil }

type stubNotifier struct {
	sent    []sentNotification
	sendErr error
}

type sentNotification struct {
	customer *domain.Customer
	password string
}

func (n *stubNotifier) SendGeneratedPassword(_ context.Context, customer *domain.Customer, password string) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.sent = append(n.sent, sentNotification{customer: customer, password: password})
	return nil
}

type stubThrottle struct {
	blocked  bool
	failures map[string]int
	resets   map[string]int
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), resets: make(map[string]int)}
}

func (t *stubThrottle) Allowed(_ context.Context, _ string) (bool, error) {
	return !t.blocked, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, username string) error {
	t.failures[username]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, username string) error {
	t.resets[username]++
	return nil
}

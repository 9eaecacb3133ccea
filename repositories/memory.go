// repositories/memory.go
package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/serenemind/portal_backend/models"
)

// MemoryStore is the default in-process backend. A single RWMutex serializes
// all map access; there are no long-held critical sections.
type MemoryStore struct {
	mu           sync.RWMutex
	accounts     map[string]models.Account
	otps         map[string]models.PendingOTP
	appointments map[string]models.Appointment
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts:     make(map[string]models.Account),
		otps:         make(map[string]models.PendingOTP),
		appointments: make(map[string]models.Appointment),
	}
}

func key(kind models.AccountKind, email string) string {
	return string(kind) + "/" + email
}

// MemoryAccountRepository implements AccountRepository over a MemoryStore
type MemoryAccountRepository struct {
	store *MemoryStore
}

func NewMemoryAccountRepository(store *MemoryStore) *MemoryAccountRepository {
	return &MemoryAccountRepository{store: store}
}

func (r *MemoryAccountRepository) Get(_ context.Context, kind models.AccountKind, email string) (*models.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	account, ok := r.store.accounts[key(kind, email)]
	if !ok {
		return nil, ErrNotFound
	}
	return &account, nil
}

func (r *MemoryAccountRepository) Put(_ context.Context, account *models.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.accounts[key(account.Kind, account.Email)] = *account
	return nil
}

func (r *MemoryAccountRepository) Delete(_ context.Context, kind models.AccountKind, email string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[key(kind, email)]; !ok {
		return ErrNotFound
	}
	delete(r.store.accounts, key(kind, email))
	return nil
}

func (r *MemoryAccountRepository) List(_ context.Context, kind models.AccountKind) ([]models.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var accounts []models.Account
	for _, account := range r.store.accounts {
		if account.Kind == kind {
			accounts = append(accounts, account)
		}
	}

	// Map iteration order is random; sort by creation time so listings are stable
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	return accounts, nil
}

func (r *MemoryAccountRepository) Count(_ context.Context, kind models.AccountKind) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, account := range r.store.accounts {
		if account.Kind == kind {
			count++
		}
	}
	return count, nil
}

// MemoryOTPRepository implements OTPRepository over a MemoryStore
type MemoryOTPRepository struct {
	store *MemoryStore
}

func NewMemoryOTPRepository(store *MemoryStore) *MemoryOTPRepository {
	return &MemoryOTPRepository{store: store}
}

func (r *MemoryOTPRepository) Get(_ context.Context, kind models.AccountKind, email string) (*models.PendingOTP, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	otp, ok := r.store.otps[key(kind, email)]
	if !ok {
		return nil, ErrNotFound
	}
	return &otp, nil
}

func (r *MemoryOTPRepository) Put(_ context.Context, otp *models.PendingOTP) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.otps[key(otp.Kind, otp.Email)] = *otp
	return nil
}

func (r *MemoryOTPRepository) Delete(_ context.Context, kind models.AccountKind, email string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.otps, key(kind, email))
	return nil
}

// MemoryAppointmentRepository implements AppointmentRepository over a MemoryStore
type MemoryAppointmentRepository struct {
	store *MemoryStore
}

func NewMemoryAppointmentRepository(store *MemoryStore) *MemoryAppointmentRepository {
	return &MemoryAppointmentRepository{store: store}
}

func (r *MemoryAppointmentRepository) Put(_ context.Context, appointment *models.Appointment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.appointments[appointment.ID] = *appointment
	return nil
}

func (r *MemoryAppointmentRepository) ListByEmail(_ context.Context, email string) ([]models.Appointment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var appointments []models.Appointment
	for _, appointment := range r.store.appointments {
		if email == "" || appointment.PatientEmail == email || appointment.DoctorEmail == email {
			appointments = append(appointments, appointment)
		}
	}

	sort.Slice(appointments, func(i, j int) bool {
		return appointments[i].CreatedAt.Before(appointments[j].CreatedAt)
	})
	return appointments, nil
}

func (r *MemoryAppointmentRepository) Count(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return len(r.store.appointments), nil
}

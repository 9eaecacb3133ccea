// repositories/repository.go
package repositories

import (
	"context"
	"errors"

	"github.com/serenemind/portal_backend/models"
)

// ErrNotFound is returned when no record exists for the given key
var ErrNotFound = errors.New("record not found")

// AccountRepository stores portal accounts keyed by (kind, email)
type AccountRepository interface {
	Get(ctx context.Context, kind models.AccountKind, email string) (*models.Account, error)
	Put(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, kind models.AccountKind, email string) error
	List(ctx context.Context, kind models.AccountKind) ([]models.Account, error)
	Count(ctx context.Context, kind models.AccountKind) (int, error)
}

// OTPRepository stores the single pending code per (kind, email)
type OTPRepository interface {
	Get(ctx context.Context, kind models.AccountKind, email string) (*models.PendingOTP, error)
	Put(ctx context.Context, otp *models.PendingOTP) error
	Delete(ctx context.Context, kind models.AccountKind, email string) error
}

// AppointmentRepository stores booked appointments
type AppointmentRepository interface {
	Put(ctx context.Context, appointment *models.Appointment) error
	ListByEmail(ctx context.Context, email string) ([]models.Appointment, error)
	Count(ctx context.Context) (int, error)
}

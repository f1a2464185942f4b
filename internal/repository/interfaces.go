package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/quickmed-api/internal/model"
)

// Store level sentinel errors. Services translate them into API errors.
var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrSlotUnavailable = errors.New("slot is not available")
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		GetByID(ctx context.Context, id int64) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
	}

	ClinicRepository interface {
		List(ctx context.Context) ([]*model.Clinic, error)
		Get(ctx context.Context, id int64) (*model.Clinic, error)
	}

	ServiceRepository interface {
		List(ctx context.Context) ([]*model.Service, error)
		ListByCategory(ctx context.Context, category string) ([]*model.Service, error)
		ListUrgent(ctx context.Context) ([]*model.Service, error)
	}

	SlotRepository interface {
		ListAvailable(ctx context.Context, filter model.SlotFilter) ([]*model.Slot, error)
	}

	// AppointmentRepository owns the slot/appointment consistency rules:
	// every write that changes whether an appointment holds its slot also
	// flips the slot flags in the same transaction.
	AppointmentRepository interface {
		Book(ctx context.Context, apt *model.Appointment) error
		ListByUser(ctx context.Context, userID int64) ([]*model.Appointment, error)
		UpdateStatus(ctx context.Context, id, userID int64, status model.AppointmentStatus) (*model.Appointment, error)
		Delete(ctx context.Context, id, userID int64) error
	}

	SettingsRepository interface {
		Get(ctx context.Context, userID int64) (*model.UserSettings, error)
		Upsert(ctx context.Context, settings *model.UserSettings) (created bool, err error)
	}

	CatalogRepository interface {
		ListTreatmentTypes(ctx context.Context, filter model.TreatmentFilter) ([]*model.TreatmentType, error)
		ListServicePrices(ctx context.Context, nameFilter string) ([]*model.ServicePrice, error)
		GetServicePrice(ctx context.Context, name string) (*model.ServicePrice, error)
		ListSupportQuestions(ctx context.Context, topic string) ([]*model.SupportQuestion, error)
	}

	StatsRepository interface {
		CountUsers(ctx context.Context) (int64, error)
		CountClinics(ctx context.Context) (int64, error)
		CountAppointments(ctx context.Context) (int64, error)
		CountAppointmentsOn(ctx context.Context, date string) (int64, error)
	}

	OutboxRepository interface {
		CreateTx(ctx context.Context, tx *sqlx.Tx, event *model.OutboxEvent) error
		GetPendingEventsWithLock(ctx context.Context, tx *sqlx.Tx, limit int) ([]*model.OutboxEvent, error)
		UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status model.OutboxStatus, errorMessage *string, retryAt *time.Time) error
		WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)

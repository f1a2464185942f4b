package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/repository"
)

func TestUserCreate_DuplicateEmail(t *testing.T) {
	base, mock := newMock(t)
	repo := NewUserRepository(base)

	mock.ExpectQuery(q("INSERT INTO users")).
		WithArgs("t", "a@b.co", "hash").
		WillReturnError(&pq.Error{Code: "23505", Constraint: userEmailIndex})

	err := repo.Create(context.Background(), &model.User{Username: "t", Email: "a@b.co", PasswordHash: "hash"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByEmail(t *testing.T) {
	base, mock := newMock(t)
	repo := NewUserRepository(base)
	cols := []string{"id", "username", "email", "password_hash", "created_at"}

	mock.ExpectQuery(q("WHERE lower(email) = lower($1)")).
		WithArgs("A@B.co").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(3, "t", "a@b.co", "hash", time.Now()))
	mock.ExpectQuery(q("WHERE lower(email) = lower($1)")).
		WithArgs("nobody@b.co").
		WillReturnRows(sqlmock.NewRows(cols))

	user, err := repo.GetByEmail(context.Background(), "A@B.co")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)

	_, err = repo.GetByEmail(context.Background(), "nobody@b.co")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotListAvailable_BuildsFilter(t *testing.T) {
	base, mock := newMock(t)
	repo := NewSlotRepository(base)
	cols := []string{
		"id", "clinic_id", "service_id", "date", "time", "is_available",
		"clinic_name", "service_name", "price_range",
	}

	mock.ExpectQuery(q("WHERE sl.is_available AND sl.clinic_id = $1 AND sl.date = $2 ORDER BY sl.date, sl.time, sl.id")).
		WithArgs(1, "2026-10-16").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(10, 1, 1, "2026-10-16", "09:00", true, "Heart Health Clinic", "General checkup", "150-250"))

	slots, err := repo.ListAvailable(context.Background(), model.SlotFilter{ClinicID: 1, Date: "2026-10-16"})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsUpsert_ReportsCreated(t *testing.T) {
	base, mock := newMock(t)
	repo := NewSettingsRepository(base)
	settings := model.DefaultUserSettings(7)

	mock.ExpectQuery(q("INSERT INTO user_settings")).
		WillReturnRows(sqlmock.NewRows([]string{"created"}).AddRow(true))
	mock.ExpectQuery(q("ON CONFLICT (user_id) DO UPDATE")).
		WillReturnRows(sqlmock.NewRows([]string{"created"}).AddRow(false))

	created, err := repo.Upsert(context.Background(), settings)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Upsert(context.Background(), settings)
	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsGet_NotFound(t *testing.T) {
	base, mock := newMock(t)
	repo := NewSettingsRepository(base)

	mock.ExpectQuery(q("FROM user_settings")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	_, err := repo.Get(context.Background(), 7)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxUpdateStatusTx(t *testing.T) {
	base, mock := newMock(t)
	repo := NewOutboxRepository(base)
	ev, err := model.NewOutboxEvent(model.EventBooked, model.BookedEvent{AppointmentID: 1})
	require.NoError(t, err)
	msg := "redis down"
	retryAt := time.Now().Add(time.Second)

	mock.ExpectBegin()
	mock.ExpectExec(q("UPDATE outbox_events")).
		WithArgs(model.OutboxStatusRetry, &msg, ev.ID, &retryAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.WithTx(context.Background(), func(tx *sqlx.Tx) error {
		return repo.UpdateStatusTx(context.Background(), tx, ev.ID, model.OutboxStatusRetry, &msg, &retryAt)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxDeleteProcessedBefore(t *testing.T) {
	base, mock := newMock(t)
	repo := NewOutboxRepository(base)
	cutoff := time.Now().Add(-time.Hour)

	mock.ExpectExec(q("DELETE FROM outbox_events")).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.DeleteProcessedBefore(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeed_RunsInOneTransaction(t *testing.T) {
	base, mock := newMock(t)
	seeder := NewSeeder(base)

	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO users")).
		WithArgs("admin", "admin@quickmed.com", "hash").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(q("INSERT INTO clinics")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(q("INSERT INTO services")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(q("INSERT INTO available_slots")).
		WithArgs("Heart Health Clinic", "Checkup", "2026-10-16", "09:00").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := seeder.Seed(context.Background(), Fixtures{
		Users:    []*model.User{{Username: "admin", Email: "admin@quickmed.com", PasswordHash: "hash"}},
		Clinics:  []*model.Clinic{{Name: "Heart Health Clinic", Features: model.StringList{"parking"}}},
		Services: []*model.Service{{Name: "Checkup"}},
		Slots:    []SeedSlot{{Clinic: "Heart Health Clinic", Service: "Checkup", Date: "2026-10-16", Time: "09:00"}},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

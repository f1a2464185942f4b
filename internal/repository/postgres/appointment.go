package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/repository"
)

const appointmentColumns = `
	a.id, a.user_id, a.clinic_id, a.service_id, a.appointment_date, a.appointment_time,
	a.notes, a.status, a.created_at, a.updated_at
`

type appointmentRepository struct {
	BaseRepository
	outbox repository.OutboxRepository
}

func NewAppointmentRepository(base BaseRepository, outbox repository.OutboxRepository) repository.AppointmentRepository {
	return &appointmentRepository{BaseRepository: base, outbox: outbox}
}

type lockedSlot struct {
	ID          int64 `db:"id"`
	ServiceID   int64 `db:"service_id"`
	IsAvailable bool  `db:"is_available"`
}

// lockSlots row-locks every slot of a clinic at one date and time. Locking
// in id order keeps two bookers of different services at the same time
// from deadlocking on each other; the loser waits and then sees the
// committed flags.
func lockSlots(ctx context.Context, tx *sqlx.Tx, clinicID int64, date, time string) ([]lockedSlot, error) {
	query := `
		SELECT id, service_id, is_available
		FROM available_slots
		WHERE clinic_id = $1 AND date = $2 AND time = $3
		ORDER BY id
		FOR UPDATE
	`
	var slots []lockedSlot
	if err := tx.SelectContext(ctx, &slots, query, clinicID, date, time); err != nil {
		return nil, fmt.Errorf("failed to lock slots: %w", err)
	}
	return slots, nil
}

func setSlotsAvailable(ctx context.Context, tx *sqlx.Tx, clinicID int64, date, time string, available bool) error {
	query := `
		UPDATE available_slots
		SET is_available = $4
		WHERE clinic_id = $1 AND date = $2 AND time = $3
	`
	if _, err := tx.ExecContext(ctx, query, clinicID, date, time, available); err != nil {
		return fmt.Errorf("failed to update slot availability: %w", err)
	}
	return nil
}

// Book reserves the requested slot and records the appointment in one
// transaction. It returns repository.ErrSlotUnavailable when the slot does
// not exist, is already taken, or another live appointment holds the same
// clinic, date and time.
func (r *appointmentRepository) Book(ctx context.Context, apt *model.Appointment) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		slots, err := lockSlots(ctx, tx, apt.ClinicID, apt.Date, apt.Time)
		if err != nil {
			return err
		}

		requested := false
		for _, s := range slots {
			if s.ServiceID == apt.ServiceID {
				requested = s.IsAvailable
				break
			}
		}
		if !requested {
			return repository.ErrSlotUnavailable
		}

		if err := setSlotsAvailable(ctx, tx, apt.ClinicID, apt.Date, apt.Time, false); err != nil {
			return err
		}

		query := `
			INSERT INTO appointments (
				user_id, clinic_id, service_id, appointment_date, appointment_time, notes, status
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`
		apt.Status = model.AppointmentStatusScheduled
		err = tx.QueryRowxContext(ctx, query,
			apt.UserID,
			apt.ClinicID,
			apt.ServiceID,
			apt.Date,
			apt.Time,
			apt.Notes,
			apt.Status,
		).Scan(&apt.ID, &apt.CreatedAt, &apt.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err, activeSlotIndex) {
				return repository.ErrSlotUnavailable
			}
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		event, err := model.NewOutboxEvent(model.EventBooked, model.BookedEvent{
			AppointmentID: apt.ID,
			UserID:        apt.UserID,
			ClinicID:      apt.ClinicID,
			ServiceID:     apt.ServiceID,
			Date:          apt.Date,
			Time:          apt.Time,
		})
		if err != nil {
			return fmt.Errorf("failed to build booking event: %w", err)
		}
		return r.outbox.CreateTx(ctx, tx, event)
	})
}

func (r *appointmentRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `,
			c.name AS clinic_name, c.address AS clinic_address,
			s.name AS service_name, s.price_range
		FROM appointments a
		JOIN clinics c ON c.id = a.clinic_id
		JOIN services s ON s.id = a.service_id
		WHERE a.user_id = $1
		ORDER BY a.appointment_date DESC, a.appointment_time DESC, a.id DESC
	`
	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func getOwnedForUpdate(ctx context.Context, tx *sqlx.Tx, id, userID int64) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments a
		WHERE a.id = $1 AND a.user_id = $2
		FOR UPDATE
	`
	var apt model.Appointment
	if err := tx.GetContext(ctx, &apt, query, id, userID); err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

// UpdateStatus changes the status of an appointment owned by userID.
// Cancelling releases the clinic's slots at that time; moving a cancelled
// appointment back to a live status reclaims them or fails with
// repository.ErrSlotUnavailable.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, id, userID int64, status model.AppointmentStatus) (*model.Appointment, error) {
	var updated *model.Appointment
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		apt, err := getOwnedForUpdate(ctx, tx, id, userID)
		if err != nil {
			return err
		}

		switch {
		case apt.Status.Holds() && !status.Holds():
			if err := setSlotsAvailable(ctx, tx, apt.ClinicID, apt.Date, apt.Time, true); err != nil {
				return err
			}
		case !apt.Status.Holds() && status.Holds():
			slots, err := lockSlots(ctx, tx, apt.ClinicID, apt.Date, apt.Time)
			if err != nil {
				return err
			}
			for _, s := range slots {
				if !s.IsAvailable {
					return repository.ErrSlotUnavailable
				}
			}
			if err := setSlotsAvailable(ctx, tx, apt.ClinicID, apt.Date, apt.Time, false); err != nil {
				return err
			}
		}

		query := `
			UPDATE appointments
			SET status = $1, updated_at = NOW()
			WHERE id = $2
			RETURNING updated_at
		`
		if err := tx.QueryRowxContext(ctx, query, status, apt.ID).Scan(&apt.UpdatedAt); err != nil {
			if isUniqueViolation(err, activeSlotIndex) {
				return repository.ErrSlotUnavailable
			}
			return fmt.Errorf("failed to update appointment: %w", err)
		}

		apt.Status = status
		updated = apt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an appointment owned by userID and frees its slots when
// the appointment was still holding them.
func (r *appointmentRepository) Delete(ctx context.Context, id, userID int64) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			DELETE FROM appointments
			WHERE id = $1 AND user_id = $2
			RETURNING clinic_id, appointment_date, appointment_time, status
		`
		var apt model.Appointment
		if err := tx.QueryRowxContext(ctx, query, id, userID).
			Scan(&apt.ClinicID, &apt.Date, &apt.Time, &apt.Status); err != nil {
			if isNoRows(err) {
				return repository.ErrNotFound
			}
			return fmt.Errorf("failed to delete appointment: %w", err)
		}

		if !apt.Status.Holds() {
			return nil
		}
		return setSlotsAvailable(ctx, tx, apt.ClinicID, apt.Date, apt.Time, true)
	})
}

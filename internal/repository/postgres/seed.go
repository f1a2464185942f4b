package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/quickmed-api/internal/model"
)

// SeedSlot names its clinic and service so fixtures do not depend on
// generated ids.
type SeedSlot struct {
	Clinic  string
	Service string
	Date    string
	Time    string
}

type Fixtures struct {
	Users          []*model.User
	Clinics        []*model.Clinic
	Services       []*model.Service
	Slots          []SeedSlot
	TreatmentTypes []*model.TreatmentType
	ServicePrices  []*model.ServicePrice
	Questions      []*model.SupportQuestion
}

// Seeder inserts fixture rows. Existing rows are left untouched so seeding
// can be repeated.
type Seeder struct {
	BaseRepository
}

func NewSeeder(base BaseRepository) *Seeder {
	return &Seeder{base}
}

func (s *Seeder) Seed(ctx context.Context, f Fixtures) error {
	return s.WithTx(ctx, func(tx *sqlx.Tx) error {
		steps := []struct {
			name string
			fn   func(context.Context, *sqlx.Tx, Fixtures) error
		}{
			{"users", seedUsers},
			{"clinics", seedClinics},
			{"services", seedServices},
			{"slots", seedSlots},
			{"catalog", seedCatalog},
		}
		for _, step := range steps {
			if err := step.fn(ctx, tx, f); err != nil {
				return fmt.Errorf("failed to seed %s: %w", step.name, err)
			}
		}
		return nil
	})
}

func seedUsers(ctx context.Context, tx *sqlx.Tx, f Fixtures) error {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, lower($2), $3)
		ON CONFLICT DO NOTHING
	`
	for _, u := range f.Users {
		if _, err := tx.ExecContext(ctx, query, u.Username, u.Email, u.PasswordHash); err != nil {
			return err
		}
	}
	return nil
}

func seedClinics(ctx context.Context, tx *sqlx.Tx, f Fixtures) error {
	query := `
		INSERT INTO clinics (
			name, image_url, rating, distance, price_range, features,
			address, phone, email, website
		) VALUES (
			:name, :image_url, :rating, :distance, :price_range, :features,
			:address, :phone, :email, :website
		)
		ON CONFLICT (name) DO NOTHING
	`
	for _, c := range f.Clinics {
		if _, err := tx.NamedExecContext(ctx, query, c); err != nil {
			return err
		}
	}
	return nil
}

func seedServices(ctx context.Context, tx *sqlx.Tx, f Fixtures) error {
	query := `
		INSERT INTO services (
			name, description, price_range, duration_minutes, is_urgent, category, icon
		) VALUES (
			:name, :description, :price_range, :duration_minutes, :is_urgent, :category, :icon
		)
		ON CONFLICT (name) DO NOTHING
	`
	for _, svc := range f.Services {
		if _, err := tx.NamedExecContext(ctx, query, svc); err != nil {
			return err
		}
	}
	return nil
}

func seedSlots(ctx context.Context, tx *sqlx.Tx, f Fixtures) error {
	query := `
		INSERT INTO available_slots (clinic_id, service_id, date, time, is_available)
		SELECT c.id, s.id, $3, $4, TRUE
		FROM clinics c, services s
		WHERE c.name = $1 AND s.name = $2
		ON CONFLICT (clinic_id, service_id, date, time) DO NOTHING
	`
	for _, sl := range f.Slots {
		if _, err := tx.ExecContext(ctx, query, sl.Clinic, sl.Service, sl.Date, sl.Time); err != nil {
			return err
		}
	}
	return nil
}

func seedCatalog(ctx context.Context, tx *sqlx.Tx, f Fixtures) error {
	for _, t := range f.TreatmentTypes {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO treatment_types (name, category, description, is_popular)
			VALUES (:name, :category, :description, :is_popular)
			ON CONFLICT (name) DO NOTHING
		`, t)
		if err != nil {
			return err
		}
	}

	for _, p := range f.ServicePrices {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO service_prices (service_name, price_range, min_price, max_price, currency)
			VALUES (:service_name, :price_range, :min_price, :max_price, :currency)
			ON CONFLICT (service_name) DO NOTHING
		`, p)
		if err != nil {
			return err
		}
	}

	for _, q := range f.Questions {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO support_questions (topic, question, answer, options, order_index)
			VALUES (:topic, :question, :answer, :options, :order_index)
			ON CONFLICT (topic, question) DO NOTHING
		`, q)
		if err != nil {
			return err
		}
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/quickmed-api/internal/repository"
)

type statsRepository struct {
	BaseRepository
}

func NewStatsRepository(base BaseRepository) repository.StatsRepository {
	return &statsRepository{base}
}

func (r *statsRepository) count(ctx context.Context, what, query string, args ...interface{}) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", what, err)
	}
	return n, nil
}

func (r *statsRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, "users", `SELECT COUNT(*) FROM users`)
}

func (r *statsRepository) CountClinics(ctx context.Context) (int64, error) {
	return r.count(ctx, "clinics", `SELECT COUNT(*) FROM clinics`)
}

func (r *statsRepository) CountAppointments(ctx context.Context) (int64, error) {
	return r.count(ctx, "appointments", `SELECT COUNT(*) FROM appointments`)
}

func (r *statsRepository) CountAppointmentsOn(ctx context.Context, date string) (int64, error) {
	return r.count(ctx, "appointments", `SELECT COUNT(*) FROM appointments WHERE appointment_date = $1`, date)
}

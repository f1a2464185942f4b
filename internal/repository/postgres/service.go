package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/repository"
)

const serviceColumns = `id, name, description, price_range, duration_minutes, is_urgent, category, icon`

type serviceRepository struct {
	BaseRepository
}

func NewServiceRepository(base BaseRepository) repository.ServiceRepository {
	return &serviceRepository{base}
}

func (r *serviceRepository) List(ctx context.Context) ([]*model.Service, error) {
	return r.list(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY name`)
}

func (r *serviceRepository) ListByCategory(ctx context.Context, category string) ([]*model.Service, error) {
	return r.list(ctx, `SELECT `+serviceColumns+` FROM services WHERE category = $1 ORDER BY name`, category)
}

func (r *serviceRepository) ListUrgent(ctx context.Context) ([]*model.Service, error) {
	return r.list(ctx, `SELECT `+serviceColumns+` FROM services WHERE is_urgent ORDER BY name`)
}

func (r *serviceRepository) list(ctx context.Context, query string, args ...interface{}) ([]*model.Service, error) {
	services := []*model.Service{}
	if err := r.db.SelectContext(ctx, &services, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

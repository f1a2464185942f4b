package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/repository"
)

// clinicColumns aggregates the distinct names of services a clinic offers
// through its slots.
const clinicColumns = `
	c.id, c.name, c.image_url, c.rating, c.distance, c.price_range, c.features,
	c.address, c.phone, c.email, c.website,
	COALESCE(
		array_agg(DISTINCT s.name ORDER BY s.name) FILTER (WHERE s.name IS NOT NULL),
		'{}'
	) AS services
`

type clinicRepository struct {
	BaseRepository
}

func NewClinicRepository(base BaseRepository) repository.ClinicRepository {
	return &clinicRepository{base}
}

func (r *clinicRepository) List(ctx context.Context) ([]*model.Clinic, error) {
	query := `SELECT ` + clinicColumns + `
		FROM clinics c
		LEFT JOIN available_slots sl ON sl.clinic_id = c.id
		LEFT JOIN services s ON s.id = sl.service_id
		GROUP BY c.id
		ORDER BY c.name, c.id
	`
	clinics := []*model.Clinic{}
	if err := r.db.SelectContext(ctx, &clinics, query); err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}

func (r *clinicRepository) Get(ctx context.Context, id int64) (*model.Clinic, error) {
	query := `SELECT ` + clinicColumns + `
		FROM clinics c
		LEFT JOIN available_slots sl ON sl.clinic_id = c.id
		LEFT JOIN services s ON s.id = sl.service_id
		WHERE c.id = $1
		GROUP BY c.id
	`
	var clinic model.Clinic
	if err := r.db.GetContext(ctx, &clinic, query, id); err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	return &clinic, nil
}

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/repository"
)

type slotRepository struct {
	BaseRepository
}

func NewSlotRepository(base BaseRepository) repository.SlotRepository {
	return &slotRepository{base}
}

func (r *slotRepository) ListAvailable(ctx context.Context, filter model.SlotFilter) ([]*model.Slot, error) {
	var (
		conds = []string{"sl.is_available"}
		args  []interface{}
	)
	add := func(cond string, v interface{}) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.ClinicID > 0 {
		add("sl.clinic_id = $%d", filter.ClinicID)
	}
	if filter.ServiceID > 0 {
		add("sl.service_id = $%d", filter.ServiceID)
	}
	if filter.Date != "" {
		add("sl.date = $%d", filter.Date)
	}

	query := `
		SELECT sl.id, sl.clinic_id, sl.service_id, sl.date, sl.time, sl.is_available,
			c.name AS clinic_name, s.name AS service_name, s.price_range
		FROM available_slots sl
		JOIN clinics c ON c.id = sl.clinic_id
		JOIN services s ON s.id = sl.service_id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY sl.date, sl.time, sl.id
	`

	slots := []*model.Slot{}
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list available slots: %w", err)
	}
	return slots, nil
}

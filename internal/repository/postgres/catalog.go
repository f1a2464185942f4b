package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/repository"
)

type catalogRepository struct {
	BaseRepository
}

func NewCatalogRepository(base BaseRepository) repository.CatalogRepository {
	return &catalogRepository{base}
}

func (r *catalogRepository) ListTreatmentTypes(ctx context.Context, filter model.TreatmentFilter) ([]*model.TreatmentType, error) {
	query := `
		SELECT id, name, category, description, is_popular
		FROM treatment_types
		WHERE ($1::text = '' OR category = $1)
		AND (NOT $2::boolean OR is_popular)
		ORDER BY is_popular DESC, name ASC
	`
	types := []*model.TreatmentType{}
	if err := r.db.SelectContext(ctx, &types, query, filter.Category, filter.PopularOnly); err != nil {
		return nil, fmt.Errorf("failed to list treatment types: %w", err)
	}
	return types, nil
}

func (r *catalogRepository) ListServicePrices(ctx context.Context, nameFilter string) ([]*model.ServicePrice, error) {
	query := `
		SELECT id, service_name, price_range, min_price, max_price, currency
		FROM service_prices
		WHERE ($1::text = '' OR service_name ILIKE '%' || $1::text || '%')
		ORDER BY service_name
	`
	prices := []*model.ServicePrice{}
	if err := r.db.SelectContext(ctx, &prices, query, nameFilter); err != nil {
		return nil, fmt.Errorf("failed to list service prices: %w", err)
	}
	return prices, nil
}

// GetServicePrice prefers an exact (case-insensitive) name match and falls
// back to the first substring match.
func (r *catalogRepository) GetServicePrice(ctx context.Context, name string) (*model.ServicePrice, error) {
	query := `
		SELECT id, service_name, price_range, min_price, max_price, currency
		FROM service_prices
		WHERE service_name ILIKE '%' || $1::text || '%'
		ORDER BY lower(service_name) = lower($1) DESC, service_name
		LIMIT 1
	`
	var price model.ServicePrice
	if err := r.db.GetContext(ctx, &price, query, name); err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get service price: %w", err)
	}
	return &price, nil
}

func (r *catalogRepository) ListSupportQuestions(ctx context.Context, topic string) ([]*model.SupportQuestion, error) {
	query := `
		SELECT id, topic, question, answer, options, order_index
		FROM support_questions
		WHERE ($1::text = '' OR topic = $1)
		ORDER BY topic, order_index, id
	`
	questions := []*model.SupportQuestion{}
	if err := r.db.SelectContext(ctx, &questions, query, topic); err != nil {
		return nil, fmt.Errorf("failed to list support questions: %w", err)
	}
	return questions, nil
}

package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/repository"
	apperrors "github.com/jwalitptl/quickmed-api/pkg/errors"
)

type Servicer interface {
	ListTreatmentTypes(ctx context.Context, filter model.TreatmentFilter) ([]*model.TreatmentType, error)
	ListServicePrices(ctx context.Context, nameFilter string) ([]*model.ServicePrice, error)
	GetServicePrice(ctx context.Context, name string) (*model.ServicePrice, error)
	ListSupportQuestions(ctx context.Context, topic string) ([]*model.SupportQuestion, error)
}

// Service serves the read-only reference tables shown by the app
type Service struct {
	repo repository.CatalogRepository
}

func NewService(repo repository.CatalogRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListTreatmentTypes(ctx context.Context, filter model.TreatmentFilter) ([]*model.TreatmentType, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	types, err := s.repo.ListTreatmentTypes(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return types, nil
}

func (s *Service) ListServicePrices(ctx context.Context, nameFilter string) ([]*model.ServicePrice, error) {
	prices, err := s.repo.ListServicePrices(ctx, strings.TrimSpace(nameFilter))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return prices, nil
}

func (s *Service) GetServicePrice(ctx context.Context, name string) (*model.ServicePrice, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.BadRequest("service name is required", nil)
	}

	price, err := s.repo.GetServicePrice(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Service price", err)
		}
		return nil, apperrors.Internal(err)
	}
	return price, nil
}

func (s *Service) ListSupportQuestions(ctx context.Context, topic string) ([]*model.SupportQuestion, error) {
	questions, err := s.repo.ListSupportQuestions(ctx, strings.TrimSpace(topic))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return questions, nil
}

package clinic

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/repository"
	apperrors "github.com/jwalitptl/quickmed-api/pkg/errors"
)

const clinicListKey = "clinics:all"

type ClinicServicer interface {
	ListClinics(ctx context.Context) ([]*model.Clinic, error)
	GetClinic(ctx context.Context, id int64) (*model.Clinic, error)
	ListServices(ctx context.Context) ([]*model.Service, error)
	ListServicesByCategory(ctx context.Context, category string) ([]*model.Service, error)
	ListUrgentServices(ctx context.Context) ([]*model.Service, error)
	ListAvailableSlots(ctx context.Context, filter model.SlotFilter) ([]*model.Slot, error)
}

type Service struct {
	clinics  repository.ClinicRepository
	services repository.ServiceRepository
	slots    repository.SlotRepository
	cache    *cache.Cache
}

// NewService caches the clinic list for ttl. A zero ttl disables caching.
func NewService(clinics repository.ClinicRepository, services repository.ServiceRepository,
	slots repository.SlotRepository, ttl, cleanup time.Duration) *Service {
	s := &Service{
		clinics:  clinics,
		services: services,
		slots:    slots,
	}
	if ttl > 0 {
		s.cache = cache.New(ttl, cleanup)
	}
	return s
}

func (s *Service) ListClinics(ctx context.Context) ([]*model.Clinic, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(clinicListKey); ok {
			return cached.([]*model.Clinic), nil
		}
	}

	clinics, err := s.clinics.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if s.cache != nil {
		s.cache.SetDefault(clinicListKey, clinics)
	}
	return clinics, nil
}

func (s *Service) GetClinic(ctx context.Context, id int64) (*model.Clinic, error) {
	clinic, err := s.clinics.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Clinic", err)
		}
		return nil, apperrors.Internal(err)
	}
	return clinic, nil
}

func (s *Service) ListServices(ctx context.Context) ([]*model.Service, error) {
	services, err := s.services.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return services, nil
}

func (s *Service) ListServicesByCategory(ctx context.Context, category string) ([]*model.Service, error) {
	services, err := s.services.ListByCategory(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return services, nil
}

func (s *Service) ListUrgentServices(ctx context.Context) ([]*model.Service, error) {
	services, err := s.services.ListUrgent(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return services, nil
}

func (s *Service) ListAvailableSlots(ctx context.Context, filter model.SlotFilter) ([]*model.Slot, error) {
	filter.Date = strings.TrimSpace(filter.Date)
	slots, err := s.slots.ListAvailable(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return slots, nil
}

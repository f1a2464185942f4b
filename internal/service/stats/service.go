package stats

import (
	"context"
	"time"

	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/repository"
	apperrors "github.com/jwalitptl/quickmed-api/pkg/errors"
)

type Servicer interface {
	Users(ctx context.Context) (*model.Count, error)
	Clinics(ctx context.Context) (*model.Count, error)
	Appointments(ctx context.Context) (*model.Count, error)
	AppointmentsToday(ctx context.Context) (*model.Count, error)
}

type Service struct {
	repo repository.StatsRepository
	now  func() time.Time
}

func NewService(repo repository.StatsRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Users(ctx context.Context) (*model.Count, error) {
	return wrap(s.repo.CountUsers(ctx))
}

func (s *Service) Clinics(ctx context.Context) (*model.Count, error) {
	return wrap(s.repo.CountClinics(ctx))
}

func (s *Service) Appointments(ctx context.Context) (*model.Count, error) {
	return wrap(s.repo.CountAppointments(ctx))
}

// AppointmentsToday counts appointments on the server's local date.
func (s *Service) AppointmentsToday(ctx context.Context) (*model.Count, error) {
	return wrap(s.repo.CountAppointmentsOn(ctx, s.now().Format(model.DateLayout)))
}

func wrap(n int64, err error) (*model.Count, error) {
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &model.Count{Count: n}, nil
}

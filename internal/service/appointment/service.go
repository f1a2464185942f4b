package appointment

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/repository"
	apperrors "github.com/jwalitptl/quickmed-api/pkg/errors"
	"github.com/jwalitptl/quickmed-api/pkg/metrics"
)

type Servicer interface {
	Book(ctx context.Context, req *model.BookingRequest) (*model.Appointment, error)
	ListForUser(ctx context.Context, userID int64) ([]*model.Appointment, error)
	UpdateStatus(ctx context.Context, id, userID int64, status model.AppointmentStatus) (*model.Appointment, error)
	Delete(ctx context.Context, id, userID int64) error
}

type Service struct {
	repo    repository.AppointmentRepository
	metrics *metrics.Metrics
}

func NewService(repo repository.AppointmentRepository, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		metrics: m,
	}
}

// Book reserves a slot for req.UserID. A taken, missing or concurrently
// claimed slot yields errors.ErrSlotNotAvailable.
func (s *Service) Book(ctx context.Context, req *model.BookingRequest) (*model.Appointment, error) {
	if err := req.Normalize(); err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	apt := &model.Appointment{
		UserID:    req.UserID,
		ClinicID:  req.ClinicID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	}

	if err := s.repo.Book(ctx, apt); err != nil {
		if errors.Is(err, repository.ErrSlotUnavailable) {
			s.record(metrics.OutcomeUnavailable)
			return nil, apperrors.ErrSlotNotAvailable
		}
		s.record(metrics.OutcomeError)
		return nil, apperrors.Internal(err)
	}

	s.record(metrics.OutcomeBooked)
	log.Info().
		Int64("appointment_id", apt.ID).
		Int64("user_id", apt.UserID).
		Int64("clinic_id", apt.ClinicID).
		Str("date", apt.Date).
		Str("time", apt.Time).
		Msg("appointment booked")
	return apt, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]*model.Appointment, error) {
	apts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return apts, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id, userID int64, status model.AppointmentStatus) (*model.Appointment, error) {
	if !status.Valid() {
		return nil, apperrors.Validation(apperrors.FieldError{Field: "status", Message: "status is invalid"})
	}

	apt, err := s.repo.UpdateStatus(ctx, id, userID, status)
	if err != nil {
		return nil, translate(err)
	}
	return apt, nil
}

func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return translate(err)
	}
	return nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound("Appointment", err)
	case errors.Is(err, repository.ErrSlotUnavailable):
		return apperrors.ErrSlotNotAvailable
	default:
		return apperrors.Internal(err)
	}
}

func (s *Service) record(outcome string) {
	if s.metrics != nil {
		s.metrics.Bookings.WithLabelValues(outcome).Inc()
	}
}

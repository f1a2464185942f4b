package email

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/repository"
	"github.com/jwalitptl/quickmed-api/pkg/messaging"
)

// Notifier turns booking events from the broker into confirmation mails
type Notifier struct {
	users    repository.UserRepository
	clinics  repository.ClinicRepository
	services repository.ServiceRepository
	mailer   Service
	logger   zerolog.Logger
}

func NewNotifier(users repository.UserRepository, clinics repository.ClinicRepository,
	services repository.ServiceRepository, mailer Service, logger zerolog.Logger) *Notifier {
	return &Notifier{
		users:    users,
		clinics:  clinics,
		services: services,
		mailer:   mailer,
		logger:   logger,
	}
}

// Handle is a messaging handler. Events other than appointment.booked are
// ignored.
func (n *Notifier) Handle(ctx context.Context, msg messaging.Message) error {
	if msg.Type != model.EventBooked {
		return nil
	}

	var ev model.BookedEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		return fmt.Errorf("invalid booking event %s: %w", msg.ID, err)
	}

	user, err := n.users.GetByID(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("failed to load user %d: %w", ev.UserID, err)
	}
	clinic, err := n.clinics.Get(ctx, ev.ClinicID)
	if err != nil {
		return fmt.Errorf("failed to load clinic %d: %w", ev.ClinicID, err)
	}
	serviceName, err := n.serviceName(ctx, ev.ServiceID)
	if err != nil {
		return err
	}

	booking := Booking{
		AppointmentID: ev.AppointmentID,
		Username:      user.Username,
		ClinicName:    clinic.Name,
		ClinicAddress: clinic.Address,
		ServiceName:   serviceName,
		Date:          ev.Date,
		Time:          ev.Time,
	}
	if err := n.mailer.SendBookingConfirmation(ctx, user.Email, booking); err != nil {
		return err
	}

	n.logger.Info().
		Int64("appointment_id", ev.AppointmentID).
		Msg("booking confirmation sent")
	return nil
}

func (n *Notifier) serviceName(ctx context.Context, id int64) (string, error) {
	services, err := n.services.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load services: %w", err)
	}
	for _, s := range services {
		if s.ID == id {
			return s.Name, nil
		}
	}
	return "", fmt.Errorf("service %d: %w", id, repository.ErrNotFound)
}

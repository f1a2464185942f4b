package email

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/quickmed-api/internal/config"
	"github.com/jwalitptl/quickmed-api/pkg/metrics"
)

// Booking is what a confirmation mail tells the patient
type Booking struct {
	AppointmentID int64
	Username      string
	ClinicName    string
	ClinicAddress string
	ServiceName   string
	Date          string
	Time          string
}

type Service interface {
	SendBookingConfirmation(ctx context.Context, to string, b Booking) error
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type smtpService struct {
	from    string
	dialer  sender
	metrics *metrics.Metrics
}

// NewService returns an SMTP backed mailer, or one that only logs when
// SMTP is disabled.
func NewService(cfg config.SMTPConfig, m *metrics.Metrics) Service {
	if !cfg.Enabled {
		return logOnly{}
	}
	return &smtpService{
		from:    cfg.From,
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		metrics: m,
	}
}

func (s *smtpService) SendBookingConfirmation(ctx context.Context, to string, b Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Appointment confirmed: %s on %s", b.ServiceName, b.Date))
	msg.SetBody("text/plain", confirmationBody(b))

	if err := s.dialer.DialAndSend(msg); err != nil {
		s.count("error")
		return fmt.Errorf("failed to send confirmation: %w", err)
	}
	s.count("success")
	return nil
}

func (s *smtpService) count(status string) {
	if s.metrics != nil {
		s.metrics.MailsSent.WithLabelValues(status).Inc()
	}
}

func confirmationBody(b Booking) string {
	return fmt.Sprintf(`Hello %s,

Your appointment #%d is booked.

Service: %s
Clinic:  %s
Address: %s
When:    %s at %s

To cancel, open My Appointments in the QuickMed app.
`, b.Username, b.AppointmentID, b.ServiceName, b.ClinicName, b.ClinicAddress, b.Date, b.Time)
}

type logOnly struct{}

func (logOnly) SendBookingConfirmation(_ context.Context, to string, b Booking) error {
	log.Info().
		Str("to", to).
		Int64("appointment_id", b.AppointmentID).
		Msg("smtp disabled, skipping booking confirmation")
	return nil
}

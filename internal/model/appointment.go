package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled   AppointmentStatus = "scheduled"
	AppointmentStatusCompleted   AppointmentStatus = "completed"
	AppointmentStatusCancelled   AppointmentStatus = "cancelled"
	AppointmentStatusRescheduled AppointmentStatus = "rescheduled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted,
		AppointmentStatusCancelled, AppointmentStatusRescheduled:
		return true
	}
	return false
}

// Holds reports whether an appointment in this status occupies its slot.
func (s AppointmentStatus) Holds() bool {
	return s != AppointmentStatusCancelled
}

const (
	DateLayout  = "2006-01-02"
	MaxNotesLen = 1000
	EventBooked = "appointment.booked"
)

var timePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

type Appointment struct {
	ID        int64             `db:"id" json:"id"`
	UserID    int64             `db:"user_id" json:"user_id"`
	ClinicID  int64             `db:"clinic_id" json:"clinic_id"`
	ServiceID int64             `db:"service_id" json:"service_id"`
	Date      string            `db:"appointment_date" json:"appointment_date"`
	Time      string            `db:"appointment_time" json:"appointment_time"`
	Notes     string            `db:"notes" json:"notes"`
	Status    AppointmentStatus `db:"status" json:"status"`
	Timestamps

	// populated by listing joins
	ClinicName    string `db:"clinic_name" json:"clinic_name,omitempty"`
	ClinicAddress string `db:"clinic_address" json:"clinic_address,omitempty"`
	ServiceName   string `db:"service_name" json:"service_name,omitempty"`
	PriceRange    string `db:"price_range" json:"price_range,omitempty"`
}

type BookingRequest struct {
	ClinicID  int64  `json:"clinic_id" binding:"required,gt=0"`
	ServiceID int64  `json:"service_id" binding:"required,gt=0"`
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	Time      string `json:"time" binding:"required,hhmm"`
	Notes     string `json:"notes" binding:"max=1000"`
	UserID    int64  `json:"-"`
}

// Normalize trims input and zero-pads the time so "9:00" and "09:00"
// address the same slot.
func (r *BookingRequest) Normalize() error {
	r.Date = strings.TrimSpace(r.Date)
	r.Notes = strings.TrimSpace(r.Notes)

	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return fmt.Errorf("invalid date %q", r.Date)
	}

	t, err := NormalizeTime(r.Time)
	if err != nil {
		return err
	}
	r.Time = t

	if len([]rune(r.Notes)) > MaxNotesLen {
		return fmt.Errorf("notes exceed %d characters", MaxNotesLen)
	}
	return nil
}

// NormalizeTime validates an hour:minute value and renders it as HH:MM.
func NormalizeTime(v string) (string, error) {
	m := timePattern.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return "", fmt.Errorf("invalid time %q", v)
	}
	h, _ := strconv.Atoi(m[1])
	return fmt.Sprintf("%02d:%s", h, m[2]), nil
}

// ValidTime reports whether v is a valid hour:minute value.
func ValidTime(v string) bool {
	return timePattern.MatchString(strings.TrimSpace(v))
}

type UpdateStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required,oneof=scheduled completed cancelled rescheduled"`
}

// BookedEvent is the outbox payload written when a slot is booked
type BookedEvent struct {
	AppointmentID int64  `json:"appointment_id"`
	UserID        int64  `json:"user_id"`
	ClinicID      int64  `json:"clinic_id"`
	ServiceID     int64  `json:"service_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}
